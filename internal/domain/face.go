package domain

import (
	"encoding/json"
	"fmt"
)

// BoundingBox locates a detected face within an image, in pixel coordinates
// with a top-left origin. It is serialized as a 4-element array in the order
// [top, right, bottom, left], which is the on-disk format of the face index.
type BoundingBox struct {
	Top    int `json:"-"`
	Right  int `json:"-"`
	Bottom int `json:"-"`
	Left   int `json:"-"`
}

func (b BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{b.Top, b.Right, b.Bottom, b.Left})
}

func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	var coords []int
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("bounding box: %w", err)
	}
	if len(coords) != 4 {
		return fmt.Errorf("bounding box: expected 4 coordinates, got %d", len(coords))
	}
	b.Top, b.Right, b.Bottom, b.Left = coords[0], coords[1], coords[2], coords[3]
	return nil
}

// FaceRecord is one detected face in one indexed photo. Photo doubles as the
// blob store key of the source image; FaceID is unique across the index by
// construction ("{photo}_face{ordinal}").
type FaceRecord struct {
	Photo       string      `json:"photo"`
	FaceID      string      `json:"face_id"`
	Embedding   []float64   `json:"embedding"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

// MatchResult is one accepted match for a query face. Derived per request,
// never persisted.
type MatchResult struct {
	PhotoURL    string      `json:"photoUrl"`
	FaceID      string      `json:"faceId"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Confidence  float64     `json:"confidence"`
}

// MatchSummary describes the scan behind a set of match results.
// TotalFacesConsidered counts index records, not distinct photos.
type MatchSummary struct {
	TotalMatchedPhotos   int     `json:"totalMatchedPhotos"`
	TotalFacesConsidered int     `json:"totalFacesConsidered"`
	MatchingThreshold    float64 `json:"matchingThreshold"`
}

// MatchedPhoto is one photo accepted by the strict selfie-search policy.
type MatchedPhoto struct {
	Photo    string `json:"photo"`
	PhotoURL string `json:"photoUrl"`
}
