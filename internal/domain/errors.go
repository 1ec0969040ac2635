package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Is lets errors.Is match a wrapped AppError against its sentinel by code,
// so WithError copies compare equal to the original.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrConfig = &AppError{
		Code:       "CONFIG_ERROR",
		Message:    "Missing or invalid configuration",
		StatusCode: 500,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 415,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected in the image",
		StatusCode: 422,
	}

	ErrMultipleFaces = &AppError{
		Code:       "MULTIPLE_FACES",
		Message:    "Multiple faces found, please provide a single clear face",
		StatusCode: 422,
	}

	ErrIndexNotFound = &AppError{
		Code:       "INDEX_NOT_FOUND",
		Message:    "No face index found, index photos first",
		StatusCode: 409,
	}

	ErrIndexCorrupt = &AppError{
		Code:       "INDEX_CORRUPT",
		Message:    "Face index file is present but not well-formed",
		StatusCode: 500,
	}

	ErrDimensionMismatch = &AppError{
		Code:       "DIMENSION_MISMATCH",
		Message:    "Embedding dimensionality does not match the index",
		StatusCode: 500,
	}

	ErrSourceDirNotFound = &AppError{
		Code:       "SOURCE_DIR_NOT_FOUND",
		Message:    "Photo source directory does not exist",
		StatusCode: 500,
	}

	ErrStorageUnavailable = &AppError{
		Code:       "STORAGE_UNAVAILABLE",
		Message:    "Object storage is unreachable, check endpoint and credentials",
		StatusCode: 503,
	}

	ErrInvalidThreshold = &AppError{
		Code:       "INVALID_THRESHOLD",
		Message:    "Threshold must be between 0 and 1",
		StatusCode: 422,
	}
)
