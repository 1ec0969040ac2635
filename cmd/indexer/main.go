// Command indexer runs a standalone indexing pass over a photo directory:
// every supported image is uploaded to the blob store, its faces encoded,
// and the face index snapshot rewritten.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"

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
	var (
		photoDir  = flag.String("dir", "", "photo directory to index (default: PHOTO_DIR)")
		indexPath = flag.String("index", "", "face index file to write (default: INDEX_PATH)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return domain.ErrConfig.WithError(err)
	}
	if *photoDir != "" {
		cfg.PhotoDir = *photoDir
	}
	if *indexPath != "" {
		cfg.IndexPath = *indexPath
	}

	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	faceProvider, err := face.NewFaceProvider(cfg)
	if err != nil {
		return domain.ErrConfig.WithError(err)
	}

	indexer := service.NewIndexer(store, faceProvider, index.NewStore(cfg.IndexPath), logger)

	var bar *progressbar.ProgressBar
	indexer.WithProgress(func(processed, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "indexing photos")
		}
		_ = bar.Set(processed)
	})

	report, err := indexer.Run(ctx, cfg.PhotoDir)
	if err != nil {
		return err
	}

	fmt.Printf("\nIndexed %d faces from %d images (%d uploaded, %d upload errors, %d extract errors)\n",
		report.FacesIndexed, report.Processed, report.Uploaded, report.UploadErrors, report.ExtractErrors)
	fmt.Printf("Index written to %s\n", cfg.IndexPath)

	return nil
}
