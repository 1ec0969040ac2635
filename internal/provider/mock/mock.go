package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
	"github.com/saturnino-fabrica-de-software/photodex/internal/provider"
)

const embeddingDimension = 128

// Provider implements provider.FaceProvider for tests and development.
// Embeddings are derived from the image hash, so the same bytes always
// produce the same face.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

// DetectAndEncode simulates detection: any plausible image yields exactly
// one face spanning most of a nominal 100x100 frame.
func (p *Provider) DetectAndEncode(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	if len(image) < 1000 {
		return nil, domain.ErrInvalidImage
	}

	return []provider.DetectedFace{
		{
			BoundingBox: domain.BoundingBox{
				Top:    10,
				Right:  90,
				Bottom: 90,
				Left:   10,
			},
			Embedding: generateEmbedding(image),
		},
	}, nil
}

// generateEmbedding derives a unit-norm embedding from the image hash
func generateEmbedding(image []byte) []float64 {
	hash := sha256.Sum256(image)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}

var _ provider.FaceProvider = (*Provider)(nil)
