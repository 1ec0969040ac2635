package face

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/photodex/internal/config"
	"github.com/saturnino-fabrica-de-software/photodex/internal/provider"
	"github.com/saturnino-fabrica-de-software/photodex/internal/provider/facebox"
	"github.com/saturnino-fabrica-de-software/photodex/internal/provider/mock"
)

// ProviderType defines supported face-encoding provider types
type ProviderType string

const (
	// ProviderTypeFacebox is the face_recognition HTTP sidecar
	ProviderTypeFacebox ProviderType = "facebox"
	// ProviderTypeMock is the deterministic in-process provider for dev/test
	ProviderTypeMock ProviderType = "mock"
)

// NewFaceProvider creates a FaceProvider instance based on configuration.
//
// Environment variables:
//   - PROVIDER_TYPE: "facebox" or "mock" (default: "facebox")
//   - FACEBOX_URL: facebox sidecar URL (default: "http://localhost:8000")
func NewFaceProvider(cfg *config.Config) (provider.FaceProvider, error) {
	providerType := ProviderType(cfg.ProviderType)

	switch providerType {
	case ProviderTypeMock:
		return mock.New(), nil

	case ProviderTypeFacebox, "":
		return createFaceboxProvider(cfg), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.ProviderType, ProviderTypeFacebox, ProviderTypeMock)
	}
}

func createFaceboxProvider(cfg *config.Config) provider.FaceProvider {
	faceboxConfig := facebox.DefaultConfig()
	if cfg.FaceboxURL != "" {
		faceboxConfig.BaseURL = cfg.FaceboxURL
	}
	return facebox.NewProvider(faceboxConfig)
}
