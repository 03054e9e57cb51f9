package gormrepo

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"
	"time"

	"idleodyssey/internal/domain/idle"

	"gorm.io/gorm"
)

func TestGetDBFromCtx(t *testing.T) {
	base, tx := &gorm.DB{}, &gorm.DB{}
	if got := getDBFromCtx(context.Background(), base); got != base {
		t.Fatalf("expected base db without a tx in ctx")
	}
	if got := getDBFromCtx(withTx(context.Background(), tx), base); got != tx {
		t.Fatalf("expected tx db from ctx")
	}
	if got := getDBFromCtx(withTx(context.Background(), nil), base); got != base {
		t.Fatalf("nil tx should fall back to base")
	}
}

func TestNodeRowMapping(t *testing.T) {
	for i, n := range idle.DefaultCatalog().Nodes {
		row, fish := fromDomainNode(n, i)
		if row.Position != int32(i) {
			t.Fatalf("%s: position mismatch: got=%d want=%d", row.NodeID, row.Position, i)
		}
		entries := make([]idle.FishEntry, 0, len(fish))
		for _, f := range fish {
			entries = append(entries, idle.FishEntry{ResourceID: f.ResourceID, Chance: f.Chance, Label: f.Label})
		}
		if len(entries) == 0 {
			entries = nil
		}
		got, err := toDomainNode(row, entries)
		if err != nil {
			t.Fatalf("%s: %v", row.NodeID, err)
		}
		if !reflect.DeepEqual(got, n) {
			t.Fatalf("%s: node mismatch:\n got=%+v\nwant=%+v", row.NodeID, got, n)
		}
	}
}

func TestNodeRowMapping_DurationMilliseconds(t *testing.T) {
	n := idle.StandardNode{
		NodeBase:   idle.NodeBase{ID: "n", Duration: 2500 * time.Millisecond},
		ResourceID: "oak",
	}
	row, _ := fromDomainNode(n, 0)
	if row.DurationMs != 2500 {
		t.Fatalf("duration_ms mismatch: got=%d", row.DurationMs)
	}
}

func TestToDomainNode_UnknownKind(t *testing.T) {
	row, _ := fromDomainNode(idle.DefaultCatalog().Nodes[0], 0)
	row.Kind = "portal"
	if _, err := toDomainNode(row, nil); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_more.sql":    {Data: []byte("SELECT 1;")},
		"0001_catalog.sql": {Data: []byte("SELECT 1;")},
		"README.md":        {Data: []byte("notes")},
		"archive/0000.sql": {Data: []byte("SELECT 1;")},
	}
	got, err := migrationFiles(fsys)
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	want := []string{"0001_catalog.sql", "0002_more.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("files mismatch: got=%v want=%v", got, want)
	}
}

func TestMigrationFiles_ShippedDir(t *testing.T) {
	got, err := migrationFiles(os.DirFS(filepath.Join("..", "..", "..", "..", "migrations")))
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	if len(got) == 0 || got[0] != "0001_catalog.sql" {
		t.Fatalf("expected 0001_catalog.sql first, got %v", got)
	}
}
