package facebox

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
	"github.com/saturnino-fabrica-de-software/photodex/internal/provider"
)

// Provider implements provider.FaceProvider against a facebox sidecar, an
// HTTP wrapper around the face_recognition library (128-dim embeddings).
type Provider struct {
	client *Client
}

// NewProvider creates a new facebox provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// DetectAndEncode detects faces in the image and extracts their embeddings.
// Faces are returned in the sidecar's detection order; a detection the
// sidecar could not encode is skipped rather than failing the call.
func (p *Provider) DetectAndEncode(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Encodings(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("detect and encode: %w", err)
	}

	faces := make([]provider.DetectedFace, 0, len(resp.Faces))
	for _, result := range resp.Faces {
		if len(result.Box) != 4 {
			return nil, fmt.Errorf("%w: box has %d coordinates", ErrInvalidResponse, len(result.Box))
		}
		if len(result.Embedding) == 0 {
			continue
		}
		faces = append(faces, provider.DetectedFace{
			BoundingBox: domain.BoundingBox{
				Top:    result.Box[0],
				Right:  result.Box[1],
				Bottom: result.Box[2],
				Left:   result.Box[3],
			},
			Embedding: result.Embedding,
		})
	}

	return faces, nil
}

var _ provider.FaceProvider = (*Provider)(nil)
