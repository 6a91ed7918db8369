// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider
// (MinIO, Cloudflare R2, AWS S3).
package storage

import (
	"context"
	"io"
)

// Object is an opened stored object ready for streaming.
type Object struct {
	// Body streams the object bytes. The caller must close it.
	Body io.ReadCloser
	// ContentType is the type recorded at upload time, possibly the
	// generic binary type for historical objects.
	ContentType string
	// Size is the object length in bytes, or -1 when unknown.
	Size int64
}

// Storage is the interface for uploading and retrieving objects.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Get opens the object at key for streaming.
	Get(ctx context.Context, key string) (*Object, error)
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
}
