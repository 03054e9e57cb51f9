package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"idleodyssey/internal/adapter/catalog/yamlfile"
	httpadapter "idleodyssey/internal/adapter/http"
	metricsinmem "idleodyssey/internal/adapter/metrics/inmemory"
	gormrepo "idleodyssey/internal/adapter/repo/gorm"
	"idleodyssey/internal/adapter/repo/memory"
	"idleodyssey/internal/app/catalog"
	"idleodyssey/internal/app/command"
	"idleodyssey/internal/app/observe"
	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/app/ticker"
	"idleodyssey/internal/domain/idle"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const defaultCatalogFile = "./configs/catalog.yaml"

type config struct {
	Addr           string
	CatalogPath    string
	DSN            string
	MigrationsDir  string
	TickInterval   time.Duration
	MaxFrame       time.Duration
	Seed           uint64
	LogLevel       slog.Level
	LogFormat      string
	StartResources map[string]float64
	CORSOrigins    []string
}

func loadConfig() config {
	return config{
		Addr:           stringEnv("IDLE_HTTP_ADDR", ":8080"),
		CatalogPath:    resolveCatalogPath(),
		DSN:            strings.TrimSpace(os.Getenv("IDLE_DB_DSN")),
		MigrationsDir:  stringEnv("IDLE_MIGRATIONS_DIR", "./migrations"),
		TickInterval:   time.Duration(intEnv("IDLE_TICK_INTERVAL_MS", int(ticker.DefaultInterval.Milliseconds()))) * time.Millisecond,
		MaxFrame:       time.Duration(intEnv("IDLE_MAX_FRAME_MS", int(ticker.DefaultMaxFrame.Milliseconds()))) * time.Millisecond,
		Seed:           uint64(intEnv("IDLE_RNG_SEED", 0)),
		LogLevel:       levelEnv("IDLE_LOG_LEVEL", slog.LevelInfo),
		LogFormat:      stringEnv("IDLE_LOG_FORMAT", "text"),
		StartResources: resourcesEnv("IDLE_START_RESOURCES"),
		CORSOrigins:    listEnv("IDLE_CORS_ORIGINS"),
	}
}

func main() {
	cfg := loadConfig()
	logger := newLogger(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := catalogSource(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("catalog source: %v", err)
	}
	cat, err := src.Load(ctx)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	build := engineBuilder(cfg, logger)
	engine, err := build(cat)
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}

	store := memory.NewStore(engine)
	session := memory.NewEngineSession(store)
	kpiRecorder := metricsinmem.NewRecorder()

	runner := ticker.Runner{
		Session:  session,
		Metrics:  kpiRecorder,
		Logger:   logger.With("component", "ticker"),
		Interval: cfg.TickInterval,
		MaxFrame: cfg.MaxFrame,
	}
	go func() {
		if err := runner.Run(ctx); err != nil {
			logger.Error("ticker exited", "err", err)
		}
	}()

	h := httpadapter.Handler{
		ObserveUC: observe.UseCase{Session: session},
		StatUC:    observe.StatUseCase{Session: session},
		CommandUC: command.UseCase{
			Session: session,
			Metrics: kpiRecorder,
			Logger:  logger.With("component", "command"),
		},
		ReloadUC: catalog.ReloadUseCase{
			Source:  src,
			Session: session,
			Build:   build,
			Logger:  logger.With("component", "catalog"),
		},
		CatalogUC:   catalog.UseCase{Live: memory.NewCatalogRepo(store)},
		KPI:         kpiRecorder,
		CORSOrigins: cfg.CORSOrigins,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	logger.Info("idle odyssey server listening", "addr", cfg.Addr, "nodes", len(cat.Nodes), "upgrades", len(cat.Upgrades))
	s.Spin()
}

// engineBuilder returns the constructor used at boot and on catalog reload.
// Start resources are applied to every fresh engine.
func engineBuilder(cfg config, logger *slog.Logger) func(idle.Catalog) (*idle.Engine, error) {
	return func(cat idle.Catalog) (*idle.Engine, error) {
		engine, err := idle.New(cat,
			idle.WithRand(newRand(cfg.Seed)),
			idle.WithLogger(logger.With("component", "engine")),
		)
		if err != nil {
			return nil, err
		}
		for id, amount := range cfg.StartResources {
			if !engine.SetResource(id, amount) {
				logger.Warn("ignoring unknown start resource", "resource_id", id)
			}
		}
		return engine, nil
	}
}

// catalogSource prefers postgres when a DSN is set. The file or built-in
// catalog is the fallback otherwise.
func catalogSource(ctx context.Context, cfg config, logger *slog.Logger) (ports.CatalogSource, error) {
	var fallback ports.CatalogSource = builtinSource{}
	if cfg.CatalogPath != "" {
		fallback = yamlfile.Source{Path: cfg.CatalogPath}
	}
	if cfg.DSN == "" {
		logger.Info("catalog source", "source", sourceName(cfg))
		return fallback, nil
	}

	db, err := gormrepo.OpenPostgres(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	applied, err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%w (check IDLE_MIGRATIONS_DIR)", err)
	}
	if len(applied) > 0 {
		logger.Info("applied migrations", "versions", applied)
	}
	logger.Info("catalog source", "source", "postgres")
	return seedingSource{repo: gormrepo.NewCatalogRepo(db), fallback: fallback, name: sourceName(cfg), logger: logger}, nil
}

// seedingSource loads from the repository and seeds an empty database from
// the fallback so the first boot works.
type seedingSource struct {
	repo     ports.CatalogRepository
	fallback ports.CatalogSource
	name     string
	logger   *slog.Logger
}

func (s seedingSource) Load(ctx context.Context) (idle.Catalog, error) {
	cat, err := s.repo.Load(ctx)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return idle.Catalog{}, err
	}

	cat, err = s.fallback.Load(ctx)
	if err != nil {
		return idle.Catalog{}, err
	}
	if err := s.repo.Save(ctx, cat); err != nil {
		return idle.Catalog{}, fmt.Errorf("seed catalog: %w", err)
	}
	s.logger.Info("seeded catalog", "source", s.name)
	return cat, nil
}

type builtinSource struct{}

func (builtinSource) Load(context.Context) (idle.Catalog, error) {
	return idle.DefaultCatalog(), nil
}

func sourceName(cfg config) string {
	if cfg.CatalogPath != "" {
		return cfg.CatalogPath
	}
	return "builtin"
}

func resolveCatalogPath() string {
	if v := strings.TrimSpace(os.Getenv("IDLE_CATALOG_PATH")); v != "" {
		return v
	}
	if st, err := os.Stat(defaultCatalogFile); err == nil && !st.IsDir() {
		return defaultCatalogFile
	}
	return ""
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newLogger(format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func levelEnv(key string, fallback slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return level
}

func listEnv(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// resourcesEnv parses "gold=100,oak=5". Malformed pairs are skipped.
func resourcesEnv(key string) map[string]float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	out := map[string]float64{}
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 {
			continue
		}
		name := strings.TrimSpace(kv[0])
		if name == "" {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			continue
		}
		out[name] = n
	}
	return out
}
