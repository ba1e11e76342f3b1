package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/yieldland/minehub/internal/backend"
	"github.com/yieldland/minehub/internal/config"
	"github.com/yieldland/minehub/internal/event"
	"github.com/yieldland/minehub/internal/poller"
	"github.com/yieldland/minehub/internal/prefs"
	"github.com/yieldland/minehub/internal/server"
	"github.com/yieldland/minehub/internal/storage"
	"github.com/yieldland/minehub/internal/view"
	"github.com/yieldland/minehub/internal/worker"
)

const (
	serviceName     = "minehub"
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	initLogger(cfg)

	// Local persistence: sqlite under the shim. A failed open is not fatal,
	// the shim degrades to memory-only for the session.
	var sqlite *storage.SQLiteBackend
	var shimBackend storage.Backend
	if sqlite, err = storage.OpenSQLite(cfg.StoragePath); err != nil {
		slog.Default().Warn(storage.LogMsgBackendOpenFailed, "error", err)
	} else {
		shimBackend = sqlite
		defer sqlite.Close()
	}
	shim := storage.NewShim(shimBackend)
	prefStore := prefs.NewStore(shim)

	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendToken, backend.Options{
		Timeout: cfg.RequestTimeout,
	})

	viewStore := view.NewStore(shim)
	bus := event.NewMemoryBus()
	event.SubscribeLogging(bus)
	clock := poller.NewClock()

	sources := poller.BuildSources(client, viewStore, clock, poller.Intervals{
		Wallet:    cfg.WalletInterval,
		Resources: cfg.ResourcesInterval,
		Inventory: cfg.InventoryInterval,
		Sessions:  cfg.SessionsInterval,
		Tools:     cfg.ToolsInterval,
	})

	pool := worker.NewPool(worker.DefaultWorkers, worker.DefaultQueueSize)
	pool.Start()

	controller := poller.NewController(sources, pool, bus, clock)

	srv := server.NewServer(cfg.Port, cfg.APIKey, server.Deps{
		ViewStore:  viewStore,
		Controller: controller,
		Commander:  client,
		Refresher:  controller,
		Prefs:      prefStore,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	controller.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Default().Info("Shutdown signal received")
	case err := <-errCh:
		slog.Default().Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Default().Warn("HTTP shutdown incomplete", "error", err)
	}
	if err := controller.Shutdown(shutdownCtx); err != nil {
		slog.Default().Warn("Poller shutdown incomplete", "error", err)
	}
	pool.Stop()

	slog.Default().Info("Shutdown complete")
}
