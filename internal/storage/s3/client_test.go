package s3

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfflineClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "photos",
		Region:    "us-east-1",
	})
	require.NoError(t, err)
	return client
}

func TestClient_ObjectURL(t *testing.T) {
	client := newOfflineClient(t)

	tests := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "simple key",
			key:  "photo.jpg",
			want: "http://localhost:9000/photos/photo.jpg",
		},
		{
			name: "key with spaces is percent-encoded",
			key:  "group photo.jpg",
			want: "http://localhost:9000/photos/group%20photo.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.ObjectURL(tt.key))
		})
	}
}

func TestClient_ObjectURL_TrailingSlashEndpoint(t *testing.T) {
	client, err := NewClient(context.Background(), Config{
		Endpoint:  "http://localhost:9000/",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "photos",
		Region:    "us-east-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/photos/a.jpg", client.ObjectURL("a.jpg"))
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "NotFound code",
			err:  &smithy.GenericAPIError{Code: "NotFound", Message: "not found"},
			want: true,
		},
		{
			name: "NoSuchBucket code",
			err:  &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "no bucket"},
			want: true,
		},
		{
			name: "NoSuchKey code",
			err:  &smithy.GenericAPIError{Code: "NoSuchKey", Message: "no key"},
			want: true,
		},
		{
			name: "other api error",
			err:  &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNotFound(tt.err))
		})
	}
}
