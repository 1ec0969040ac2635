package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/photodex/internal/service"
)

// IndexService interface for the indexing pipeline
type IndexService interface {
	Run(ctx context.Context, photoDir string) (*service.Report, error)
}

// IndexHandler triggers indexing runs over the configured photo directory
type IndexHandler struct {
	service  IndexService
	photoDir string
	logger   *slog.Logger
}

func NewIndexHandler(svc IndexService, photoDir string, logger *slog.Logger) *IndexHandler {
	return &IndexHandler{
		service:  svc,
		photoDir: photoDir,
		logger:   logger,
	}
}

// IndexPhotosResponse response for the indexing trigger
type IndexPhotosResponse struct {
	Status       string `json:"status"`
	FacesIndexed int    `json:"facesIndexed"`
	RunID        string `json:"runId"`
}

// IndexPhotos POST /index-photos - run the indexing pipeline synchronously.
// The run rewrites the index snapshot, so requests in flight keep matching
// against the previous one.
func (h *IndexHandler) IndexPhotos(c *fiber.Ctx) error {
	report, err := h.service.Run(c.Context(), h.photoDir)
	if err != nil {
		return err
	}

	return c.JSON(IndexPhotosResponse{
		Status:       "success",
		FacesIndexed: report.FacesIndexed,
		RunID:        report.RunID,
	})
}
