package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
	"github.com/saturnino-fabrica-de-software/photodex/internal/index"
	"github.com/saturnino-fabrica-de-software/photodex/internal/provider"
	"github.com/saturnino-fabrica-de-software/photodex/internal/storage"
)

// MockBlobStore is a mock implementation of storage.BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBlobStore) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlobStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) ObjectURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockBlobStore) List(ctx context.Context, max int32) ([]storage.ObjectInfo, error) {
	args := m.Called(ctx, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ObjectInfo), args.Error(1)
}

// MockFaceProvider is a mock implementation of provider.FaceProvider
type MockFaceProvider struct {
	mock.Mock
}

func (m *MockFaceProvider) DetectAndEncode(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.DetectedFace), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func zeroEmbedding() []float64 {
	return make([]float64, 128)
}

func detectedFace(embedding []float64) provider.DetectedFace {
	return provider.DetectedFace{
		BoundingBox: domain.BoundingBox{Top: 0, Right: 10, Bottom: 10, Left: 0},
		Embedding:   embedding,
	}
}

func savedIndex(t *testing.T, records []domain.FaceRecord) *index.Store {
	t.Helper()
	store := index.NewStore(filepath.Join(t.TempDir(), "indexed_data.json"))
	require.NoError(t, store.Save(records))
	return store
}

func TestSearch_FindMatches(t *testing.T) {
	image := []byte("query-image-bytes")

	t.Run("identical embedding matches with confidence 1.0", func(t *testing.T) {
		records := []domain.FaceRecord{{
			Photo:       "a.jpg",
			FaceID:      "a.jpg_face0",
			Embedding:   zeroEmbedding(),
			BoundingBox: domain.BoundingBox{Top: 0, Right: 10, Bottom: 10, Left: 0},
		}}

		store := new(MockBlobStore)
		store.On("Exists", mock.Anything, "a.jpg").Return(true, nil)
		store.On("SignedURL", mock.Anything, "a.jpg", mock.Anything).
			Return("http://storage/photos/a.jpg?sig=abc", nil)

		fp := new(MockFaceProvider)
		fp.On("DetectAndEncode", mock.Anything, image).
			Return([]provider.DetectedFace{detectedFace(zeroEmbedding())}, nil)

		search := NewSearch(store, fp, savedIndex(t, records), testLogger())
		result, err := search.FindMatches(context.Background(), image, 0.5)
		require.NoError(t, err)

		require.Len(t, result.Matches, 1)
		assert.Equal(t, "a.jpg_face0", result.Matches[0].FaceID)
		assert.Equal(t, "http://storage/photos/a.jpg?sig=abc", result.Matches[0].PhotoURL)
		assert.Equal(t, 1.0, result.Matches[0].Confidence)

		assert.Equal(t, 1, result.Summary.TotalMatchedPhotos)
		assert.Equal(t, 1, result.Summary.TotalFacesConsidered)
		assert.Equal(t, 0.5, result.Summary.MatchingThreshold)
	})

	t.Run("empty index is a precondition error, not empty results", func(t *testing.T) {
		store := new(MockBlobStore)
		fp := new(MockFaceProvider)

		search := NewSearch(store, fp, savedIndex(t, nil), testLogger())
		_, err := search.FindMatches(context.Background(), image, 0.5)
		assert.ErrorIs(t, err, domain.ErrIndexNotFound)
		fp.AssertNotCalled(t, "DetectAndEncode")
	})

	t.Run("missing index file is the same precondition error", func(t *testing.T) {
		store := new(MockBlobStore)
		fp := new(MockFaceProvider)
		idx := index.NewStore(filepath.Join(t.TempDir(), "missing.json"))

		search := NewSearch(store, fp, idx, testLogger())
		_, err := search.FindMatches(context.Background(), image, 0.5)
		assert.ErrorIs(t, err, domain.ErrIndexNotFound)
	})

	t.Run("zero detected faces", func(t *testing.T) {
		records := []domain.FaceRecord{{
			Photo: "a.jpg", FaceID: "a.jpg_face0", Embedding: zeroEmbedding(),
		}}
		store := new(MockBlobStore)
		fp := new(MockFaceProvider)
		fp.On("DetectAndEncode", mock.Anything, image).
			Return([]provider.DetectedFace{}, nil)

		search := NewSearch(store, fp, savedIndex(t, records), testLogger())
		_, err := search.FindMatches(context.Background(), image, 0.5)
		assert.ErrorIs(t, err, domain.ErrNoFaceDetected)
	})

	t.Run("multiple detected faces uses the first", func(t *testing.T) {
		near := zeroEmbedding()
		far := zeroEmbedding()
		far[0] = 10 // nowhere near the stored record

		records := []domain.FaceRecord{{
			Photo: "a.jpg", FaceID: "a.jpg_face0", Embedding: zeroEmbedding(),
		}}

		store := new(MockBlobStore)
		store.On("Exists", mock.Anything, "a.jpg").Return(true, nil)
		store.On("SignedURL", mock.Anything, "a.jpg", mock.Anything).
			Return("http://storage/photos/a.jpg?sig=abc", nil)

		fp := new(MockFaceProvider)
		fp.On("DetectAndEncode", mock.Anything, image).
			Return([]provider.DetectedFace{detectedFace(near), detectedFace(far)}, nil)

		search := NewSearch(store, fp, savedIndex(t, records), testLogger())
		result, err := search.FindMatches(context.Background(), image, 0.5)
		require.NoError(t, err)
		assert.Len(t, result.Matches, 1)
	})

	t.Run("zero matches is a valid empty result", func(t *testing.T) {
		stored := zeroEmbedding()
		stored[0] = 10

		records := []domain.FaceRecord{{
			Photo: "a.jpg", FaceID: "a.jpg_face0", Embedding: stored,
		}}

		store := new(MockBlobStore)
		fp := new(MockFaceProvider)
		fp.On("DetectAndEncode", mock.Anything, image).
			Return([]provider.DetectedFace{detectedFace(zeroEmbedding())}, nil)

		search := NewSearch(store, fp, savedIndex(t, records), testLogger())
		result, err := search.FindMatches(context.Background(), image, 0.5)
		require.NoError(t, err)
		assert.Empty(t, result.Matches)
		assert.Equal(t, 0, result.Summary.TotalMatchedPhotos)
		assert.Equal(t, 1, result.Summary.TotalFacesConsidered)
	})

	t.Run("falls back to unsigned URL when object is missing", func(t *testing.T) {
		records := []domain.FaceRecord{{
			Photo: "a.jpg", FaceID: "a.jpg_face0", Embedding: zeroEmbedding(),
		}}

		store := new(MockBlobStore)
		store.On("Exists", mock.Anything, "a.jpg").Return(false, nil)
		store.On("ObjectURL", "a.jpg").Return("http://storage/photos/a.jpg")

		fp := new(MockFaceProvider)
		fp.On("DetectAndEncode", mock.Anything, image).
			Return([]provider.DetectedFace{detectedFace(zeroEmbedding())}, nil)

		search := NewSearch(store, fp, savedIndex(t, records), testLogger())
		result, err := search.FindMatches(context.Background(), image, 0.5)
		require.NoError(t, err)
		require.Len(t, result.Matches, 1)
		assert.Equal(t, "http://storage/photos/a.jpg", result.Matches[0].PhotoURL)
		store.AssertNotCalled(t, "SignedURL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to unsigned URL when presigning fails", func(t *testing.T) {
		records := []domain.FaceRecord{{
			Photo: "a.jpg", FaceID: "a.jpg_face0", Embedding: zeroEmbedding(),
		}}

		store := new(MockBlobStore)
		store.On("Exists", mock.Anything, "a.jpg").Return(true, nil)
		store.On("SignedURL", mock.Anything, "a.jpg", mock.Anything).
			Return("", assert.AnError)
		store.On("ObjectURL", "a.jpg").Return("http://storage/photos/a.jpg")

		fp := new(MockFaceProvider)
		fp.On("DetectAndEncode", mock.Anything, image).
			Return([]provider.DetectedFace{detectedFace(zeroEmbedding())}, nil)

		search := NewSearch(store, fp, savedIndex(t, records), testLogger())
		result, err := search.FindMatches(context.Background(), image, 0.5)
		require.NoError(t, err)
		require.Len(t, result.Matches, 1)
		assert.Equal(t, "http://storage/photos/a.jpg", result.Matches[0].PhotoURL)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		store := new(MockBlobStore)
		fp := new(MockFaceProvider)
		search := NewSearch(store, fp, savedIndex(t, nil), testLogger())

		_, err := search.FindMatches(context.Background(), image, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidThreshold)

		_, err = search.FindMatches(context.Background(), image, 1.5)
		assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
	})
}

func TestSearch_SelfieSearch(t *testing.T) {
	image := []byte("selfie-bytes")

	t.Run("two detected faces is an error in strict mode", func(t *testing.T) {
		records := []domain.FaceRecord{{
			Photo: "a.jpg", FaceID: "a.jpg_face0", Embedding: zeroEmbedding(),
		}}

		store := new(MockBlobStore)
		fp := new(MockFaceProvider)
		fp.On("DetectAndEncode", mock.Anything, image).
			Return([]provider.DetectedFace{
				detectedFace(zeroEmbedding()),
				detectedFace(zeroEmbedding()),
			}, nil)

		search := NewSearch(store, fp, savedIndex(t, records), testLogger())
		_, err := search.SelfieSearch(context.Background(), image, 0.6)
		assert.ErrorIs(t, err, domain.ErrMultipleFaces)
	})

	t.Run("matched photos are distinct with resolved URLs", func(t *testing.T) {
		records := []domain.FaceRecord{
			{Photo: "a.jpg", FaceID: "a.jpg_face0", Embedding: zeroEmbedding()},
			{Photo: "a.jpg", FaceID: "a.jpg_face1", Embedding: zeroEmbedding()},
			{Photo: "b.jpg", FaceID: "b.jpg_face0", Embedding: zeroEmbedding()},
		}

		store := new(MockBlobStore)
		store.On("Exists", mock.Anything, mock.Anything).Return(true, nil)
		store.On("SignedURL", mock.Anything, "a.jpg", mock.Anything).
			Return("http://storage/photos/a.jpg?sig=a", nil)
		store.On("SignedURL", mock.Anything, "b.jpg", mock.Anything).
			Return("http://storage/photos/b.jpg?sig=b", nil)

		fp := new(MockFaceProvider)
		fp.On("DetectAndEncode", mock.Anything, image).
			Return([]provider.DetectedFace{detectedFace(zeroEmbedding())}, nil)

		search := NewSearch(store, fp, savedIndex(t, records), testLogger())
		result, err := search.SelfieSearch(context.Background(), image, 0.6)
		require.NoError(t, err)

		require.Len(t, result.Photos, 2)
		assert.Equal(t, "a.jpg", result.Photos[0].Photo)
		assert.Equal(t, "b.jpg", result.Photos[1].Photo)
		assert.Equal(t, 3, result.Summary.TotalFacesConsidered)
		assert.Equal(t, 2, result.Summary.TotalMatchedPhotos)
	})

	t.Run("zero detected faces", func(t *testing.T) {
		records := []domain.FaceRecord{{
			Photo: "a.jpg", FaceID: "a.jpg_face0", Embedding: zeroEmbedding(),
		}}

		store := new(MockBlobStore)
		fp := new(MockFaceProvider)
		fp.On("DetectAndEncode", mock.Anything, image).
			Return([]provider.DetectedFace{}, nil)

		search := NewSearch(store, fp, savedIndex(t, records), testLogger())
		_, err := search.SelfieSearch(context.Background(), image, 0.6)
		assert.ErrorIs(t, err, domain.ErrNoFaceDetected)
	})
}
