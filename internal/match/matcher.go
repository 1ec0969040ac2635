// Package match implements face matching over an in-memory face index.
//
// The scan is a flat O(n) pass over every record; there is no approximate
// or indexed lookup. That is a documented performance ceiling, acceptable at
// the target index sizes (thousands of faces).
package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
)

// MinConfidence is the score assigned to a match exactly at the threshold.
// A boundary match is still a valid match, so it maps to 0.15 rather than 0.
const MinConfidence = 0.15

// Match is one accepted index record with its distance and derived score.
type Match struct {
	Record     domain.FaceRecord
	Distance   float64
	Confidence float64
}

// Matcher compares a query embedding against index records. Two policies are
// exposed: FindMatches (confidence-ranked, per face) and MatchPhotos (strict,
// per photo). Both accept a record iff distance <= threshold.
type Matcher struct{}

func New() *Matcher {
	return &Matcher{}
}

// Distance returns the Euclidean (L2) distance between two embeddings.
// Mismatched dimensionality is an input error, never a silent skip.
func Distance(a, b []float64) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, domain.ErrDimensionMismatch.WithError(
			fmt.Errorf("got dimensions %d and %d", len(a), len(b)))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Confidence maps a distance in [0, threshold] to a score in
// [MinConfidence, 1]. The curve is concave ((d/t)^1.5) so near-perfect
// matches score disproportionately high: 1.0 at d=0, MinConfidence at d=t.
func Confidence(distance, threshold float64) float64 {
	if threshold <= 0 || distance > threshold {
		return 0
	}
	normalized := distance / threshold
	confidence := 1.0 - (1.0-MinConfidence)*math.Pow(normalized, 1.5)
	return math.Max(MinConfidence, math.Min(1.0, confidence))
}

// FindMatches scans every record and returns those within threshold, ordered
// by descending confidence. Equal confidences keep index insertion order
// (stable sort), which makes result order deterministic.
func (m *Matcher) FindMatches(query []float64, records []domain.FaceRecord, threshold float64) ([]Match, error) {
	matches := make([]Match, 0)
	for _, r := range records {
		distance, err := Distance(query, r.Embedding)
		if err != nil {
			return nil, err
		}
		if distance > threshold {
			continue
		}
		matches = append(matches, Match{
			Record:     r,
			Distance:   distance,
			Confidence: Confidence(distance, threshold),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	return matches, nil
}

// MatchPhotos is the strict photo-level policy: a photo matches when any of
// its faces is within threshold. Photos are returned once each, in order of
// first appearance in the index.
func (m *Matcher) MatchPhotos(query []float64, records []domain.FaceRecord, threshold float64) ([]string, error) {
	seen := make(map[string]bool)
	photos := make([]string, 0)
	for _, r := range records {
		distance, err := Distance(query, r.Embedding)
		if err != nil {
			return nil, err
		}
		if distance > threshold || seen[r.Photo] {
			continue
		}
		seen[r.Photo] = true
		photos = append(photos, r.Photo)
	}
	return photos, nil
}
