package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseStart(t *testing.T) {
	got, err := parseStart(" gold=100, oak = 5.5 ")
	if err != nil {
		t.Fatalf("parseStart: %v", err)
	}
	if len(got) != 2 || got["gold"] != 100 || got["oak"] != 5.5 {
		t.Fatalf("parseStart=%v", got)
	}

	if got, err := parseStart(""); err != nil || got != nil {
		t.Fatalf("expected nil map for empty input, got %v %v", got, err)
	}
	for _, bad := range []string{"gold", "=5", "gold=lots"} {
		if _, err := parseStart(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestCatalogDumpThenRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	dump := newRootCmd()
	dump.SetArgs([]string{"catalog", "dump", path})
	if err := dump.Execute(); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected dumped file: %v", err)
	}

	run := newRootCmd()
	run.SetArgs([]string{"--catalog", path, "run", "--node", "tree.oak", "--for", "9s", "--frame", "1500ms"})
	if err := run.Execute(); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunRejectsUnknownNode(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--node", "tree.teak", "--for", "1s"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected unknown node error")
	}
}
