package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
	"github.com/saturnino-fabrica-de-software/photodex/internal/index"
	"github.com/saturnino-fabrica-de-software/photodex/internal/match"
	"github.com/saturnino-fabrica-de-software/photodex/internal/provider"
	"github.com/saturnino-fabrica-de-software/photodex/internal/storage"
)

// signedURLTTL is deliberately long: indexed photos are immutable and the
// returned URLs are meant to stay shareable.
const signedURLTTL = 10 * 365 * 24 * time.Hour

// FindMatchesResult is the response of the confidence-scored matching path.
type FindMatchesResult struct {
	Matches []domain.MatchResult `json:"matches"`
	Summary domain.MatchSummary  `json:"summary"`
}

// SelfieSearchResult is the response of the strict photo-level search path.
type SelfieSearchResult struct {
	Photos  []domain.MatchedPhoto `json:"photos"`
	Summary domain.MatchSummary   `json:"summary"`
}

// Search answers query-image requests against the persisted face index.
// The index is loaded per request and treated as an immutable snapshot; a
// re-indexing run in flight is observed as either the old or the new file.
type Search struct {
	store    storage.BlobStore
	provider provider.FaceProvider
	index    *index.Store
	matcher  *match.Matcher
	logger   *slog.Logger
}

func NewSearch(store storage.BlobStore, faceProvider provider.FaceProvider, indexStore *index.Store, logger *slog.Logger) *Search {
	return &Search{
		store:    store,
		provider: faceProvider,
		index:    indexStore,
		matcher:  match.New(),
		logger:   logger,
	}
}

// FindMatches extracts one face from the query image and returns every index
// record within threshold, ranked by confidence. When the image contains
// several faces only the first detection is used.
func (s *Search) FindMatches(ctx context.Context, image []byte, threshold float64) (*FindMatchesResult, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, domain.ErrInvalidThreshold
	}

	records, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	query, err := s.queryEmbedding(ctx, image, false)
	if err != nil {
		return nil, err
	}

	matches, err := s.matcher.FindMatches(query, records, threshold)
	if err != nil {
		return nil, err
	}

	results := make([]domain.MatchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, domain.MatchResult{
			PhotoURL:    s.resolveURL(ctx, m.Record.Photo),
			FaceID:      m.Record.FaceID,
			BoundingBox: m.Record.BoundingBox,
			Confidence:  round2(m.Confidence),
		})
	}

	return &FindMatchesResult{
		Matches: results,
		Summary: domain.MatchSummary{
			TotalMatchedPhotos:   len(results),
			TotalFacesConsidered: len(records),
			MatchingThreshold:    threshold,
		},
	}, nil
}

// SelfieSearch is the strict policy: the query image must contain exactly
// one face, and a photo matches when any of its indexed faces is within
// threshold. Matched photos are returned once each.
func (s *Search) SelfieSearch(ctx context.Context, image []byte, threshold float64) (*SelfieSearchResult, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, domain.ErrInvalidThreshold
	}

	records, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	query, err := s.queryEmbedding(ctx, image, true)
	if err != nil {
		return nil, err
	}

	photos, err := s.matcher.MatchPhotos(query, records, threshold)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.MatchedPhoto, 0, len(photos))
	for _, photo := range photos {
		matched = append(matched, domain.MatchedPhoto{
			Photo:    photo,
			PhotoURL: s.resolveURL(ctx, photo),
		})
	}

	return &SelfieSearchResult{
		Photos: matched,
		Summary: domain.MatchSummary{
			TotalMatchedPhotos:   len(matched),
			TotalFacesConsidered: len(records),
			MatchingThreshold:    threshold,
		},
	}, nil
}

// loadIndex reads the snapshot and enforces the non-empty precondition.
// An empty index is a distinct error from zero matches.
func (s *Search) loadIndex() ([]domain.FaceRecord, error) {
	records, err := s.index.Load()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrIndexNotFound
	}
	return records, nil
}

// queryEmbedding runs detection on the query image. With strict set, more
// than one face is rejected; otherwise the first detection wins.
func (s *Search) queryEmbedding(ctx context.Context, image []byte, strict bool) ([]float64, error) {
	faces, err := s.provider.DetectAndEncode(ctx, image)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, domain.ErrNoFaceDetected
	}
	if strict && len(faces) > 1 {
		return nil, domain.ErrMultipleFaces
	}
	return faces[0].Embedding, nil
}

// resolveURL turns a photo key into a retrievable URL: existence check, then
// a signed URL, then the unsigned fallback. Storage failures here never fail
// the request.
func (s *Search) resolveURL(ctx context.Context, photo string) string {
	exists, err := s.store.Exists(ctx, photo)
	if err != nil || !exists {
		if err != nil {
			s.logger.Warn("existence check failed, using fallback URL",
				slog.String("photo", photo), slog.Any("error", err))
		} else {
			s.logger.Warn("indexed photo missing from storage, using fallback URL",
				slog.String("photo", photo))
		}
		return s.store.ObjectURL(photo)
	}

	url, err := s.store.SignedURL(ctx, photo, signedURLTTL)
	if err != nil {
		s.logger.Warn("signed URL generation failed, using fallback URL",
			slog.String("photo", photo), slog.Any("error", err))
		return s.store.ObjectURL(photo)
	}
	return url
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
