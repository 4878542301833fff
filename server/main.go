package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/albertogalvisvml/labelpdfapp/internal/config"
	"github.com/albertogalvisvml/labelpdfapp/internal/http/handlers"
	"github.com/albertogalvisvml/labelpdfapp/internal/http/routes"
	"github.com/albertogalvisvml/labelpdfapp/internal/services/labels"
	"github.com/albertogalvisvml/labelpdfapp/internal/services/queue"
	"github.com/albertogalvisvml/labelpdfapp/internal/services/renderer"
	"github.com/albertogalvisvml/labelpdfapp/internal/services/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg.Server.Debug)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	storageService, err := storage.NewStorageService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage service", zap.Error(err))
	}
	defer storageService.Close()

	storageService.StartSweeper(ctx, cfg.Retention.SweepInterval, cfg.Retention.MaxAge)

	labelRenderer, err := renderer.New(renderer.Options{
		AssetDir:     cfg.Render.AssetDir,
		FontPath:     cfg.Render.FontPath,
		ImageDir:     cfg.Render.ImageDir,
		PublicDir:    cfg.Render.PublicDir,
		PublicPrefix: cfg.Server.PublicPrefix,
		DPI:          cfg.Render.DPI,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("Failed to initialize renderer", zap.Error(err))
	}
	logger.Info("Renderer ready", zap.String("font", labelRenderer.FontName()))
	if err := labelRenderer.CheckAssets(); err != nil {
		logger.Warn("Label assets are not usable", zap.Error(err))
	}

	var (
		genOpts     []labels.Option
		jobStore    handlers.JobStore
		workerStore queue.JobStore
		jobQueue    handlers.JobQueue
	)
	if storageService.CacheEnabled() {
		genOpts = append(genOpts, labels.WithCache(storageService))
		jobStore = storageService
		workerStore = storageService
	}
	if storageService.MirrorEnabled() {
		genOpts = append(genOpts, labels.WithMirror(storageService))
	}

	generator := labels.NewGenerator(labelRenderer, logger, genOpts...)

	if cfg.QueueEnabled() {
		queueService, err := queue.NewQueueService(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, generator, workerStore, logger)
		if err != nil {
			logger.Warn("Failed to initialize queue service", zap.Error(err))
			// Continue without async generation
		} else {
			defer queueService.Close()
			if err := queueService.StartWorkers(ctx, cfg.RabbitMQ.Workers); err != nil {
				logger.Warn("Failed to start queue workers", zap.Error(err))
			}
			jobQueue = queueService
		}
	}

	// Initialize handlers
	labelHandler := handlers.NewLabelHandler(generator, jobQueue, jobStore, storageService, logger).
		WithAssetCheck(labelRenderer).
		WithTrustedProxies(cfg.Server.TrustedProxies)

	router := routes.NewRouter(labelHandler, routes.Options{
		CORSOrigins:    cfg.Server.CORSOrigins,
		PublicPrefix:   cfg.Server.PublicPrefix,
		PublicDir:      cfg.Render.PublicDir,
		TrustedProxies: cfg.Server.TrustedProxies,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
