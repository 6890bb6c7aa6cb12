package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"asset-dashboard/internal/api"
	"asset-dashboard/internal/api/handlers"
	"asset-dashboard/internal/config"
	"asset-dashboard/internal/data"
	"asset-dashboard/internal/logging"
	"asset-dashboard/internal/summary"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("DASH_CONFIG"))
	if err != nil {
		return err
	}
	if err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if wd, err := os.Getwd(); err == nil {
		slog.Info("starting", "working_directory", wd, "dataset", cfg.Dataset.Path)
	}

	// The dataset is read once here; later reads only happen on reload.
	store, err := data.Open(cfg.Dataset.Path, cfg.Dataset.Sheet)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	if cfg.Dataset.Watch {
		w, err := data.NewWatcher(store)
		if err != nil {
			return fmt.Errorf("watch dataset: %w", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				slog.Error("dataset watcher stopped", "err", err)
			}
		}()
		slog.Info("watching dataset for changes", "path", store.Path())
	}

	peaks, err := cfg.PeakWindow()
	if err != nil {
		return err
	}
	cache, closeCache, err := newCache(ctx, cfg, store)
	if err != nil {
		return err
	}
	defer closeCache()

	svc := summary.NewService(store, summary.New(peaks), cache)

	// Set up Gin router
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := api.NewRouter(api.Options{
		Service: svc,
		Page: handlers.PageConfig{
			Title:    cfg.Server.Title,
			Footer:   cfg.Server.Footer,
			PageSize: cfg.Server.PageSize,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", srv.Addr, "peak_hours", peaks.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCache picks Redis when configured, otherwise an in-process cache that is
// flushed on every dataset reload.
func newCache(ctx context.Context, cfg *config.Config, store *data.Store) (summary.Cache, func(), error) {
	noop := func() {}
	if cfg.Cache.Disabled {
		return nil, noop, nil
	}
	if cfg.Cache.RedisAddr != "" {
		rc, err := summary.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL)
		if err != nil {
			return nil, noop, err
		}
		slog.Info("using redis summary cache", "addr", cfg.Cache.RedisAddr, "db", cfg.Cache.RedisDB)
		return rc, func() { _ = rc.Close() }, nil
	}

	mc := summary.NewMemoryCache(cfg.Cache.TTL)
	store.OnReload(mc.Invalidate)
	if cfg.Cache.TTL > 0 {
		go mc.Cleanup(ctx, cfg.Cache.TTL)
	}
	return mc, noop, nil
}
