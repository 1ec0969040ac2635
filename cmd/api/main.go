package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/photodex/internal/api"
	"github.com/saturnino-fabrica-de-software/photodex/internal/config"
	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
	"github.com/saturnino-fabrica-de-software/photodex/internal/face"
	"github.com/saturnino-fabrica-de-software/photodex/internal/index"
	"github.com/saturnino-fabrica-de-software/photodex/internal/service"
	"github.com/saturnino-fabrica-de-software/photodex/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return domain.ErrConfig.WithError(err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Photodex API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Blob store with startup connectivity check: an unreachable or
	// misconfigured store is fatal here, unlike per-request failures.
	store, err := s3.NewClient(ctx, s3.Config{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
	})
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		return domain.ErrStorageUnavailable.WithError(err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return domain.ErrStorageUnavailable.WithError(err)
	}
	logger.Info("storage connection validated", slog.String("bucket", cfg.StorageBucket))

	faceProvider, err := face.NewFaceProvider(cfg)
	if err != nil {
		return domain.ErrConfig.WithError(err)
	}

	indexStore := index.NewStore(cfg.IndexPath)

	deps := &api.Dependencies{
		Search:  service.NewSearch(store, faceProvider, indexStore, logger),
		Indexer: service.NewIndexer(store, faceProvider, indexStore, logger),
		Store:   store,
		Config:  cfg,
	}

	router := api.NewRouter(logger, deps)
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
