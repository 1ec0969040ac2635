// Package s3 implements storage.BlobStore against any S3-compatible
// endpoint. Path-style addressing is forced because MinIO, the usual
// deployment target, does not resolve virtual-host bucket names.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/saturnino-fabrica-de-software/photodex/internal/storage"
)

const (
	errCodeNotFound     = "NotFound"
	errCodeNoSuchBucket = "NoSuchBucket"
	errCodeNoSuchKey    = "NoSuchKey"
	errCodeAccessDenied = "AccessDenied"
	errCodeBucketExists = "BucketAlreadyOwnedByYou"
)

// Config holds the connection settings for the blob store
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// Client wraps the AWS S3 client and provides the photodex blob operations
type Client struct {
	s3      *awss3.Client
	presign *awss3.PresignClient
	config  Config
}

// NewClient creates a new blob store client for the configured endpoint.
// Credentials are static: MinIO deployments do not use the AWS chain.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Client{
		s3:      client,
		presign: awss3.NewPresignClient(client),
		config:  cfg,
	}, nil
}

// Ping verifies connectivity and credentials by listing buckets
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.s3.ListBuckets(ctx, &awss3.ListBucketsInput{})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == errCodeAccessDenied {
			return fmt.Errorf("ping storage: %w", storage.ErrInvalidCredentials)
		}
		return fmt.Errorf("ping storage: %w", err)
	}
	return nil
}

// EnsureBucket creates the configured bucket if it does not exist yet
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.s3.HeadBucket(ctx, &awss3.HeadBucketInput{
		Bucket: aws.String(c.config.Bucket),
	})
	if err == nil {
		return nil
	}

	if !isNotFound(err) {
		return fmt.Errorf("head bucket %s: %w", c.config.Bucket, err)
	}

	_, err = c.s3.CreateBucket(ctx, &awss3.CreateBucketInput{
		Bucket: aws.String(c.config.Bucket),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == errCodeBucketExists {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", c.config.Bucket, err)
	}

	return nil
}

// Put uploads bytes under the given key
func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) error {
	input := &awss3.PutObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// Exists reports whether an object is present under the key
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.s3.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s: %w", key, err)
	}
	return true, nil
}

// SignedURL generates a presigned GET URL for the key
func (c *Client) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", key, err)
	}

	if req.URL == "" || !strings.HasPrefix(req.URL, "http") {
		return "", fmt.Errorf("presign object %s: empty url", key)
	}

	return req.URL, nil
}

// ObjectURL builds a direct unsigned URL from the known endpoint and bucket.
// The key is percent-encoded so filenames with spaces stay valid.
func (c *Client) ObjectURL(key string) string {
	endpoint := strings.TrimRight(c.config.Endpoint, "/")
	return fmt.Sprintf("%s/%s/%s", endpoint, c.config.Bucket, url.PathEscape(key))
}

// List returns up to max objects from the bucket
func (c *Client) List(ctx context.Context, max int32) ([]storage.ObjectInfo, error) {
	out, err := c.s3.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
		Bucket:  aws.String(c.config.Bucket),
		MaxKeys: aws.Int32(max),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("list objects: %w", storage.ErrBucketNotFound)
		}
		return nil, fmt.Errorf("list objects: %w", err)
	}

	objects := make([]storage.ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		info := storage.ObjectInfo{
			Key:  aws.ToString(obj.Key),
			Size: aws.ToInt64(obj.Size),
		}
		if obj.LastModified != nil {
			info.LastModified = *obj.LastModified
		}
		objects = append(objects, info)
	}
	return objects, nil
}

// isNotFound matches the 404-family codes S3-compatible servers return
func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case errCodeNotFound, errCodeNoSuchBucket, errCodeNoSuchKey:
		return true
	}
	return false
}

var _ storage.BlobStore = (*Client)(nil)
