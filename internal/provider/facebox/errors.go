package facebox

import "errors"

var (
	ErrFaceboxUnavailable = errors.New("facebox service unavailable")
	ErrInvalidResponse    = errors.New("invalid response from facebox")
	ErrInvalidImageFormat = errors.New("invalid image format for facebox")
)
