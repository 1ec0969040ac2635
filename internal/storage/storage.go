// Package storage defines the blob-store collaborator contract: object
// storage addressed by photo filename, holding the original photo bytes.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrInvalidCredentials = errors.New("invalid storage credentials")
)

// ObjectInfo describes one stored object, used by the debug listing.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// BlobStore is the object-storage contract consumed by the indexing
// pipeline and the query service.
type BlobStore interface {
	// Ping verifies connectivity and credentials. Fatal at startup on failure.
	Ping(ctx context.Context) error

	// EnsureBucket creates the configured bucket if it does not exist yet.
	EnsureBucket(ctx context.Context) error

	// Put uploads bytes under the given key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Exists reports whether an object is present under the key.
	Exists(ctx context.Context, key string) (bool, error)

	// SignedURL returns a time-limited retrieval URL for the key. Callers
	// must be prepared to fall back to ObjectURL when this fails.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// ObjectURL returns a direct, unsigned, percent-encoded URL for the key.
	ObjectURL(key string) string

	// List returns up to max objects from the bucket, for diagnostics.
	List(ctx context.Context, max int32) ([]ObjectInfo, error)
}
