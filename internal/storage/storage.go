// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO,
// DigitalOcean Spaces, AWS S3).
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// ObjectInfo carries the metadata recorded when an object was written.
type ObjectInfo struct {
	ContentType string
	Size        int64
}

// Storage is the interface for writing and streaming objects.
type Storage interface {
	// Put streams data to the store under the given key. size must be the
	// exact byte count (pass -1 only if the size is genuinely unknown — the
	// client will buffer it).
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Get opens a streaming read for the object under key. The caller owns
	// the returned body and must close it on every exit path. A missing key
	// yields ErrNotFound; any other failure is an infrastructure error.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
