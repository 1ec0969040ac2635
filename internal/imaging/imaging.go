// Package imaging decodes query images sent over the API.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
)

// maxImageSize bounds decoded query images at 10MB
const maxImageSize = 10 * 1024 * 1024

// DecodeBase64 decodes a base64 image payload into raw bytes. A data-URL
// prefix ("data:image/...;base64,") is tolerated and stripped. The bytes are
// sniffed to confirm they are a decodable jpeg, png or webp image.
func DecodeBase64(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("empty image payload"))
	}

	if strings.HasPrefix(payload, "data:image") {
		_, after, found := strings.Cut(payload, ",")
		if !found {
			return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("malformed data URL"))
		}
		payload = after
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("decode base64: %w", err))
	}

	if len(data) > maxImageSize {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("image exceeds %d bytes", maxImageSize))
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("sniff image: %w", err))
	}

	return data, nil
}

// ContentType returns the MIME type for a photo filename extension, falling
// back to octet-stream for anything unrecognized.
func ContentType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
