package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
}

func TestResolveCatalogPath_UsesEnv(t *testing.T) {
	t.Setenv("IDLE_CATALOG_PATH", "/tmp/custom.yaml")
	if got := resolveCatalogPath(); got != "/tmp/custom.yaml" {
		t.Fatalf("resolveCatalogPath()=%q want %q", got, "/tmp/custom.yaml")
	}
}

func TestResolveCatalogPath_UsesConfigsWhenPresent(t *testing.T) {
	t.Setenv("IDLE_CATALOG_PATH", "")
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatalf("mkdir configs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", "catalog.yaml"), []byte("resources: []\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	chdir(t, dir)

	if got := resolveCatalogPath(); got != defaultCatalogFile {
		t.Fatalf("resolveCatalogPath()=%q want %q", got, defaultCatalogFile)
	}
}

func TestResolveCatalogPath_FallsBackToBuiltin(t *testing.T) {
	t.Setenv("IDLE_CATALOG_PATH", "")
	chdir(t, t.TempDir())

	if got := resolveCatalogPath(); got != "" {
		t.Fatalf("resolveCatalogPath()=%q want empty", got)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"IDLE_HTTP_ADDR", "IDLE_TICK_INTERVAL_MS", "IDLE_MAX_FRAME_MS", "IDLE_LOG_LEVEL", "IDLE_START_RESOURCES"} {
		t.Setenv(k, "")
	}
	cfg := loadConfig()
	if cfg.Addr != ":8080" {
		t.Fatalf("addr=%q", cfg.Addr)
	}
	if cfg.TickInterval != 100*time.Millisecond || cfg.MaxFrame != 250*time.Millisecond {
		t.Fatalf("unexpected frame config: interval=%v max=%v", cfg.TickInterval, cfg.MaxFrame)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("log level=%v", cfg.LogLevel)
	}
	if cfg.StartResources != nil {
		t.Fatalf("expected no start resources, got %v", cfg.StartResources)
	}
}

func TestIntEnv(t *testing.T) {
	t.Setenv("IDLE_TEST_INT", " 42 ")
	if got := intEnv("IDLE_TEST_INT", 7); got != 42 {
		t.Fatalf("intEnv=%d want 42", got)
	}
	t.Setenv("IDLE_TEST_INT", "forty")
	if got := intEnv("IDLE_TEST_INT", 7); got != 7 {
		t.Fatalf("intEnv=%d want fallback 7", got)
	}
}

func TestLevelEnv(t *testing.T) {
	t.Setenv("IDLE_TEST_LEVEL", "debug")
	if got := levelEnv("IDLE_TEST_LEVEL", slog.LevelInfo); got != slog.LevelDebug {
		t.Fatalf("levelEnv=%v want debug", got)
	}
	t.Setenv("IDLE_TEST_LEVEL", "loud")
	if got := levelEnv("IDLE_TEST_LEVEL", slog.LevelWarn); got != slog.LevelWarn {
		t.Fatalf("levelEnv=%v want fallback warn", got)
	}
}

func TestResourcesEnv(t *testing.T) {
	t.Setenv("IDLE_TEST_RES", "gold=100, oak = 2.5,broken,=3,tin=x")
	got := resourcesEnv("IDLE_TEST_RES")
	if len(got) != 2 || got["gold"] != 100 || got["oak"] != 2.5 {
		t.Fatalf("resourcesEnv=%v", got)
	}
}

func TestNewRand_SeedIsDeterministic(t *testing.T) {
	a, b := newRand(42), newRand(42)
	for i := 0; i < 5; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func loadFrom(t *testing.T, cfg config) idle.Catalog {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	src, err := catalogSource(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("catalog source: %v", err)
	}
	cat, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return cat
}

func TestCatalogSource_WithoutDSN(t *testing.T) {
	cat := loadFrom(t, config{})
	if len(cat.Nodes) != len(idle.DefaultCatalog().Nodes) {
		t.Fatalf("expected builtin nodes, got %d", len(cat.Nodes))
	}

	cat = loadFrom(t, config{CatalogPath: filepath.Join("..", "..", "configs", "catalog.yaml")})
	if len(cat.Upgrades) != len(idle.DefaultCatalog().Upgrades) {
		t.Fatalf("expected shipped upgrades, got %d", len(cat.Upgrades))
	}
}

type memCatalogRepo struct {
	cat   *idle.Catalog
	saves int
}

func (r *memCatalogRepo) Load(context.Context) (idle.Catalog, error) {
	if r.cat == nil {
		return idle.Catalog{}, ports.ErrNotFound
	}
	return *r.cat, nil
}

func (r *memCatalogRepo) Save(_ context.Context, cat idle.Catalog) error {
	r.cat = &cat
	r.saves++
	return nil
}

func TestSeedingSource_SeedsEmptyRepoOnce(t *testing.T) {
	repo := &memCatalogRepo{}
	src := seedingSource{
		repo:     repo,
		fallback: builtinSource{},
		name:     "builtin",
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for i := 0; i < 2; i++ {
		cat, err := src.Load(context.Background())
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if len(cat.Nodes) != len(idle.DefaultCatalog().Nodes) {
			t.Fatalf("load %d: unexpected nodes %d", i, len(cat.Nodes))
		}
	}
	if repo.saves != 1 {
		t.Fatalf("expected one seed save, got %d", repo.saves)
	}
}

func TestEngineBuilder_AppliesStartResources(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	build := engineBuilder(config{Seed: 7, StartResources: map[string]float64{"gold": 40, "unobtainium": 1}}, logger)

	for i := 0; i < 2; i++ {
		e, err := build(idle.DefaultCatalog())
		if err != nil {
			t.Fatalf("build %d: %v", i, err)
		}
		if got := e.Resource("gold"); got != 40 {
			t.Fatalf("build %d: gold=%v want 40", i, got)
		}
		if e.HasResource("unobtainium") {
			t.Fatalf("build %d: unknown start resource must be skipped", i)
		}
	}

	bad := idle.DefaultCatalog()
	bad.Resources = nil
	if _, err := build(bad); err == nil {
		t.Fatal("expected invalid catalog to fail")
	}
}

func TestListEnv(t *testing.T) {
	t.Setenv("IDLE_TEST_LIST", " https://a.example , ,https://b.example")
	got := listEnv("IDLE_TEST_LIST")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("listEnv=%v", got)
	}
	t.Setenv("IDLE_TEST_LIST", "")
	if got := listEnv("IDLE_TEST_LIST"); got != nil {
		t.Fatalf("expected nil for empty list, got %v", got)
	}
}
