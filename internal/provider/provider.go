package provider

import (
	"context"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
)

// FaceProvider is the embedding-extractor collaborator: given raw image
// bytes it returns the detected faces, each with a bounding box and a
// fixed-dimension embedding. Dimensionality is constant per deployment.
type FaceProvider interface {
	// DetectAndEncode returns zero or more faces in detection order.
	// An image with no faces yields an empty slice, not an error.
	DetectAndEncode(ctx context.Context, image []byte) ([]DetectedFace, error)
}

// DetectedFace is one face found by the provider.
type DetectedFace struct {
	BoundingBox domain.BoundingBox `json:"bounding_box"`
	Embedding   []float64          `json:"embedding"`
}
