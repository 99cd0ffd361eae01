package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"filevault_bot/platform/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient implements ObjectStorage against any S3-compatible endpoint.
// No state is retained across calls beyond the immutable credentials,
// bucket and endpoint configured at construction.
type MinIOClient struct {
	client   *minio.Client
	bucket   string
	endpoint string
	secure   bool
	log      *logger.Logger
}

// NewMinIOClient creates a storage client from the given configuration.
func NewMinIOClient(cfg Config, log *logger.Logger) (*MinIOClient, error) {
	client, err := minio.New(cfg.GetStorageEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetStorageAccessKey(), cfg.GetStorageSecretKey(), ""),
		Secure: cfg.GetStorageUseSSL(),
		Region: cfg.GetStorageRegion(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &MinIOClient{
		client:   client,
		bucket:   cfg.GetStorageBucket(),
		endpoint: cfg.GetStorageEndpoint(),
		secure:   cfg.GetStorageUseSSL(),
		log:      log,
	}, nil
}

// Upload streams the local file into the bucket under key. Progress is
// reported through a counting reader wrapped around the file handle, so
// callbacks fire as the SDK consumes bytes.
func (c *MinIOClient) Upload(ctx context.Context, localPath, key, contentType string, onProgress ProgressFunc) (string, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat upload source: %w", err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open upload source: %w", err)
	}
	defer f.Close()

	reader := newProgressReader(f, info.Size(), onProgress)
	_, err = c.client.PutObject(ctx, c.bucket, key, reader, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		c.log.StorageError("upload", key, err)
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return c.ObjectURL(key), nil
}

// PresignURL generates a time-limited signed read URL for key.
func (c *MinIOClient) PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	signed, err := c.client.PresignedGetObject(ctx, c.bucket, key, ttl, url.Values{})
	if err != nil {
		c.log.StorageError("presign", key, err)
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}
	return signed.String(), nil
}

// Delete removes the object under key, best effort.
func (c *MinIOClient) Delete(ctx context.Context, key string) bool {
	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		c.log.StorageError("delete", key, err)
		return false
	}
	return true
}

// Probe checks bucket reachability for the user-facing connection test.
func (c *MinIOClient) Probe(ctx context.Context) bool {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		c.log.StorageError("probe", c.bucket, err)
		return false
	}
	return exists
}

// ObjectURL returns the stable base URL of an object. It is only meaningful
// when the bucket permits anonymous reads.
func (c *MinIOClient) ObjectURL(key string) string {
	scheme := "https"
	if !c.secure {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.endpoint, c.bucket, key)
}
