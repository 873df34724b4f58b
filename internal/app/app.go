package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/metrics"
	"github.com/MrSnakeDoc/bookmarks/internal/sources/seed"
	"github.com/MrSnakeDoc/bookmarks/internal/store/memory"
	"github.com/MrSnakeDoc/bookmarks/internal/version"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	server *httpserver.Server
	store  *memory.Store
}

func New() (*App, error) {
	return NewWithConfig(config.Load())
}

// NewWithConfig builds the application from an already loaded configuration.
func NewWithConfig(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	store := memory.NewStore()

	seedSource, err := seedStore(cfg, store, loggerClient.Named("seed"))
	if err != nil {
		return nil, err
	}

	metricsManager := metrics.NewManager(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithStoreSize(store.Count),
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:                loggerClient.Named("http"),
		StartTime:             time.Now(),
		Version:               version.Version,
		Commit:                version.Commit,
		BuildDate:             version.BuildDate,
		GoVersion:             version.GoVersion,
		TimeNow:               time.Now,
		AllowedHosts:          cfg.AllowedHosts,
		AllowedCIDRS:          cfg.AllowedCIDRS,
		TrustProxy:            cfg.TrustProxy,
		Bookmarks:             store,
		SeedSource:            seedSource,
		Metrics:               metricsManager,
		RateLimitBurst:        cfg.RateLimitBurst,
		RateLimitRefillPerMin: cfg.RateLimitRefillPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:    cfg,
		logger: loggerClient,
		server: server,
		store:  store,
	}, nil
}

// seedStore fills a fresh store from the seed file or the built-in default.
// It returns a short description of where the bookmarks came from.
func seedStore(cfg *config.Config, repo domain.Repository, log logger.Logger) (string, error) {
	var (
		file   seed.File
		source string
	)

	switch {
	case cfg.SeedFile != "":
		loaded, err := seed.NewLoader(cfg.SeedFile).Load()
		if err != nil {
			return "", fmt.Errorf("failed to load seed bookmarks: %w", err)
		}
		file = loaded
		source = "file:" + cfg.SeedFile
	case cfg.SeedDefault:
		file = seed.Default()
		source = "default"
	default:
		log.Info("seeding disabled, starting with an empty store")
		return "none", nil
	}

	created := seed.Apply(repo, file, log)
	log.Info("store seeded",
		logger.String("source", source),
		logger.Int("count", created))

	return source, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting bookmarks v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("bookmarks %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.logger.Error("server exited unexpectedly", logger.Err(err))
		_ = a.logger.Sync()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// In-memory records are dropped with the process.
	a.logger.Info("✅ bookmarks stopped cleanly",
		logger.Int("bookmarks_discarded", a.store.Count()))
	_ = a.logger.Sync()
	return nil
}
