package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
	"github.com/saturnino-fabrica-de-software/photodex/internal/imaging"
	"github.com/saturnino-fabrica-de-software/photodex/internal/service"
)

// SearchService interface for the query service
type SearchService interface {
	FindMatches(ctx context.Context, image []byte, threshold float64) (*service.FindMatchesResult, error)
	SelfieSearch(ctx context.Context, image []byte, threshold float64) (*service.SelfieSearchResult, error)
}

// SearchHandler handles face matching requests
type SearchHandler struct {
	service         SearchService
	matchThreshold  float64
	selfieThreshold float64
	logger          *slog.Logger
}

func NewSearchHandler(svc SearchService, matchThreshold, selfieThreshold float64, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service:         svc,
		matchThreshold:  matchThreshold,
		selfieThreshold: selfieThreshold,
		logger:          logger,
	}
}

// FindMatchesRequest body for POST /api/find-matches
type FindMatchesRequest struct {
	Image     string   `json:"image"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// SelfieSearchRequest body for POST /api/selfie-search
type SelfieSearchRequest struct {
	Image string `json:"image"`
}

// FindMatches POST /api/find-matches - confidence-ranked face matching
func (h *SearchHandler) FindMatches(c *fiber.Ctx) error {
	var req FindMatchesRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	image, err := imaging.DecodeBase64(req.Image)
	if err != nil {
		return err
	}

	threshold := h.matchThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	result, err := h.service.FindMatches(c.Context(), image, threshold)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// SelfieSearch POST /api/selfie-search - strict single-face photo search
func (h *SearchHandler) SelfieSearch(c *fiber.Ctx) error {
	var req SelfieSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	image, err := imaging.DecodeBase64(req.Image)
	if err != nil {
		return err
	}

	result, err := h.service.SelfieSearch(c.Context(), image, h.selfieThreshold)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
