// Package storage provides a domain-agnostic adapter for S3-compatible
// object storage. The bot module drives it through the ObjectStorage
// interface so tests can substitute a fake.
package storage

import (
	"context"
	"time"
)

// ProgressFunc receives upload progress as a percentage in [0, 100].
// Implementations invoke it at increments of at least five percentage
// points, and always with the final 100.
type ProgressFunc func(percent float64)

// ObjectStorage defines the object store operations the bot needs.
type ObjectStorage interface {
	// Upload transfers the file at localPath to the store under key and
	// returns the stable (non-expiring) object URL. The URL is only
	// functional when the bucket permits anonymous reads. onProgress may
	// be nil. On failure no metadata must be written by the caller.
	Upload(ctx context.Context, localPath, key, contentType string, onProgress ProgressFunc) (string, error)

	// PresignURL produces a time-bounded, credential-bearing read URL.
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Delete removes an object, best effort: failures are logged and
	// reported as false so cleanup paths never abort.
	Delete(ctx context.Context, key string) bool

	// Probe reports whether the bucket is reachable. All errors are
	// swallowed into false.
	Probe(ctx context.Context) bool
}

// Config defines the configuration interface for storage.
type Config interface {
	GetStorageEndpoint() string
	GetStorageAccessKey() string
	GetStorageSecretKey() string
	GetStorageBucket() string
	GetStorageRegion() string
	GetStorageUseSSL() bool
}
