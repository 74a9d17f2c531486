package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/cache"
	"github.com/aaravmahajanofficial/storefront-client/internal/cli"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/health"
	"github.com/aaravmahajanofficial/storefront-client/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-client/internal/session"
	"github.com/aaravmahajanofficial/storefront-client/internal/storage"
	"github.com/aaravmahajanofficial/storefront-client/internal/telemetry"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {

	// Logger setup. Stdout belongs to command output.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg := config.MustLoad()
	if cfg.Env == "local" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, &cfg.Otel, version)
	if err != nil {
		slog.Error("Failed to initialize tracing", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracer(flushCtx); err != nil {
			slog.Warn("Tracer shutdown failed", slog.String("error", err.Error()))
		}
	}()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open session store", slog.String("store", cfg.Session.Store), slog.String("error", err.Error()))
		return 1
	}
	defer store.Close()

	catalogCache, err := newCache(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open cache", slog.String("error", err.Error()))
		return 1
	}
	defer catalogCache.Close()

	client, err := api.New(&cfg.API, store, nil)
	if err != nil {
		slog.Error("Failed to create API client", slog.String("error", err.Error()))
		return 1
	}

	app := cli.NewApp(cfg, client, session.NewManager(client, store), catalogCache)

	app.Health, err = health.NewHealthChecker(cfg, version)
	if err != nil {
		slog.Error("Failed to create health checker", slog.String("error", err.Error()))
		return 1
	}

	if cfg.Metrics.Addr != "" {
		server := serveMetrics(cfg.Metrics.Addr, app)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	if err := cli.Execute(ctx, app, os.Args[1:]); err != nil {
		return 1
	}

	return 0
}

// newCache shares Redis with the session store when it is configured, and
// keeps catalog lookups in process otherwise.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.Session.Store != "redis" {
		return cache.NewMemoryCache(&cfg.Cache), nil
	}

	client, err := storage.NewRedisClient(ctx, &cfg.RedisConnect)
	if err != nil {
		return nil, err
	}

	return cache.NewRedisCache(client, &cfg.Cache), nil
}

func serveMetrics(addr string, app *cli.App) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /health", app.Health.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics server listening", slog.String("address", addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}
