package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
	"github.com/saturnino-fabrica-de-software/photodex/internal/imaging"
	"github.com/saturnino-fabrica-de-software/photodex/internal/index"
	"github.com/saturnino-fabrica-de-software/photodex/internal/provider"
	"github.com/saturnino-fabrica-de-software/photodex/internal/storage"
)

// supportedExtensions are the source image formats picked up by an indexing
// run, matched case-insensitively.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Report summarizes one indexing run.
type Report struct {
	RunID         string `json:"run_id"`
	ImagesFound   int    `json:"images_found"`
	Processed     int    `json:"processed"`
	Uploaded      int    `json:"uploaded"`
	FacesIndexed  int    `json:"faces_indexed"`
	UploadErrors  int    `json:"upload_errors"`
	ExtractErrors int    `json:"extract_errors"`
}

// ProgressFunc is called after each processed file with (processed, total).
type ProgressFunc func(processed, total int)

// Indexer is the indexing pipeline: it walks a photo directory, uploads each
// image to the blob store, extracts face embeddings, and writes the full
// face index snapshot at the end of the run.
type Indexer struct {
	store      storage.BlobStore
	provider   provider.FaceProvider
	indexStore *index.Store
	logger     *slog.Logger
	onProgress ProgressFunc
}

func NewIndexer(store storage.BlobStore, faceProvider provider.FaceProvider, indexStore *index.Store, logger *slog.Logger) *Indexer {
	return &Indexer{
		store:      store,
		provider:   faceProvider,
		indexStore: indexStore,
		logger:     logger,
	}
}

// WithProgress registers a per-file progress callback (used by the CLI).
func (ix *Indexer) WithProgress(fn ProgressFunc) *Indexer {
	ix.onProgress = fn
	return ix
}

// Run indexes every supported image under photoDir. A missing directory is
// fatal before any upload; per-file upload and extraction failures are
// logged, counted, and isolated so one bad image never aborts the batch.
// The accumulated index replaces the previous snapshot only after every
// file has been processed.
func (ix *Indexer) Run(ctx context.Context, photoDir string) (*Report, error) {
	files, err := listImageFiles(photoDir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       uuid.New().String(),
		ImagesFound: len(files),
	}
	records := make([]domain.FaceRecord, 0)

	ix.logger.Info("starting indexing run",
		slog.String("run_id", report.RunID),
		slog.String("dir", photoDir),
		slog.Int("images", len(files)),
	)

	for _, filename := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(photoDir, filename)
		data, err := os.ReadFile(path)
		if err != nil {
			ix.logger.Warn("skipping unreadable file",
				slog.String("file", filename), slog.Any("error", err))
			report.ExtractErrors++
			ix.step(report)
			continue
		}

		// Upload is best-effort: extraction still runs on upload failure.
		if err := ix.store.Put(ctx, filename, data, imaging.ContentType(filename)); err != nil {
			ix.logger.Warn("upload failed",
				slog.String("file", filename), slog.Any("error", err))
			report.UploadErrors++
		} else {
			report.Uploaded++
		}

		faces, err := ix.provider.DetectAndEncode(ctx, data)
		if err != nil {
			ix.logger.Warn("face extraction failed",
				slog.String("file", filename), slog.Any("error", err))
			report.ExtractErrors++
			ix.step(report)
			continue
		}

		for i, f := range faces {
			if len(f.Embedding) == 0 {
				ix.logger.Warn("face without embedding, skipping detection",
					slog.String("file", filename), slog.Int("ordinal", i))
				continue
			}
			records = append(records, domain.FaceRecord{
				Photo:       filename,
				FaceID:      fmt.Sprintf("%s_face%d", filename, i),
				Embedding:   f.Embedding,
				BoundingBox: f.BoundingBox,
			})
		}

		ix.logger.Debug("processed image",
			slog.String("file", filename), slog.Int("faces", len(faces)))
		ix.step(report)
	}

	if err := ix.indexStore.Save(records); err != nil {
		return nil, fmt.Errorf("save face index: %w", err)
	}

	report.FacesIndexed = len(records)
	ix.logger.Info("indexing run finished",
		slog.String("run_id", report.RunID),
		slog.Int("faces_indexed", report.FacesIndexed),
		slog.Int("uploaded", report.Uploaded),
		slog.Int("upload_errors", report.UploadErrors),
		slog.Int("extract_errors", report.ExtractErrors),
	)

	return report, nil
}

func (ix *Indexer) step(report *Report) {
	report.Processed++
	if ix.onProgress != nil {
		ix.onProgress(report.Processed, report.ImagesFound)
	}
}

// listImageFiles returns supported image filenames in photoDir, sorted for a
// deterministic processing order.
func listImageFiles(photoDir string) ([]string, error) {
	entries, err := os.ReadDir(photoDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrSourceDirNotFound.WithError(fmt.Errorf("directory %q", photoDir))
	}
	if err != nil {
		return nil, fmt.Errorf("read photo directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if supportedExtensions[ext] {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
