package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/photodex/internal/storage"
)

// DebugHandler exposes storage connectivity diagnostics
type DebugHandler struct {
	store  storage.BlobStore
	logger *slog.Logger
}

func NewDebugHandler(store storage.BlobStore, logger *slog.Logger) *DebugHandler {
	return &DebugHandler{store: store, logger: logger}
}

// StorageDebugResponse response for GET /debug/storage
type StorageDebugResponse struct {
	Status        string               `json:"status"`
	ObjectCount   int                  `json:"objects_in_bucket"`
	SampleObjects []storage.ObjectInfo `json:"sample_objects"`
}

// Storage GET /debug/storage - connectivity check plus a sample listing
func (h *DebugHandler) Storage(c *fiber.Ctx) error {
	if err := h.store.Ping(c.Context()); err != nil {
		h.logger.Warn("storage ping failed", slog.Any("error", err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	objects, err := h.store.List(c.Context(), 10)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	sample := objects
	if len(sample) > 5 {
		sample = sample[:5]
	}

	return c.JSON(StorageDebugResponse{
		Status:        "success",
		ObjectCount:   len(objects),
		SampleObjects: sample,
	})
}
