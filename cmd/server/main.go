// Savedrive Server
//
// Features:
// - In-memory drive catalog: folders, search, starring, sharing, rename,
//   duplication, bulk delete
// - Filter/sort/navigation state served over a small JSON API
// - SSE real-time change events
// - Standalone upload directory endpoints with a polling watcher
// - Prometheus metrics & structured logging (zap)
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/savedrive/savedrive/internal/api"
	"github.com/savedrive/savedrive/internal/catalog"
	"github.com/savedrive/savedrive/internal/config"
	"github.com/savedrive/savedrive/internal/events"
	"github.com/savedrive/savedrive/internal/logging"
	"github.com/savedrive/savedrive/internal/metrics"
	"github.com/savedrive/savedrive/internal/seed"
	"github.com/savedrive/savedrive/internal/storage/local"
	"github.com/savedrive/savedrive/internal/watcher"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Can't use structured logging yet
		panic("configuration error: " + err.Error())
	}

	// Initialize structured logging
	if err := logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}); err != nil {
		panic("logging init error: " + err.Error())
	}
	defer logging.Sync()

	logging.Info("Savedrive Server starting...",
		zap.String("listen", cfg.ListenAddr),
		zap.String("metrics", cfg.MetricsAddr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize SSE broadcaster
	broadcaster := events.NewBroadcaster()
	logging.Info("SSE broadcaster initialized")

	// Load the seed catalog. A failed load yields an empty catalog and is
	// only visible in the logs.
	records := seed.Load(cfg.SeedPath)
	ctrl := catalog.New(records, broadcaster)
	logging.Info("catalog initialized", zap.Int("records", ctrl.Len()))

	// Initialize the upload directory backend
	uploads, err := local.New(local.Config{
		RootPath:   cfg.UploadDir,
		CreateDirs: true,
	})
	if err != nil {
		logging.Fatal("upload storage init failed", zap.Error(err))
	}
	defer uploads.Close()

	// Watch the upload directory for out-of-band changes
	uploadWatcher := watcher.New(cfg.UploadDir, cfg.WatchInterval, broadcaster)
	if err := uploadWatcher.Start(ctx); err != nil {
		logging.Fatal("upload watcher start failed", zap.Error(err))
	}
	defer uploadWatcher.Stop()

	// Create API server
	srv := api.NewServer(ctrl, uploads, broadcaster, cfg.MaxUploadSize, cfg.UploadDelay)

	// Start metrics server
	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metrics.Handler(),
	}
	go func() {
		logging.Info("metrics server listening", zap.String("addr", cfg.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logging.Error("metrics server error", zap.Error(err))
		}
	}()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logging.Info("shutting down...")
		cancel()
		httpServer.Close()
		metricsServer.Close()
	}()

	logging.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("server error", zap.Error(err))
	}
	logging.Info("server stopped")
}
