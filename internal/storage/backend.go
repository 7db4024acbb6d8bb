// Package storage defines the Backend interface for the upload directory.
package storage

import (
	"context"
	"io"
)

// Backend is the interface for upload-directory storage.
// The only shipping implementation is the local filesystem backend; the
// interface keeps the upload handlers independent of where the bytes land.
type Backend interface {
	// GetObject retrieves an object by key. The returned size is the
	// object's total size in bytes.
	GetObject(ctx context.Context, key string) (io.ReadCloser, int64, error)

	// PutObject uploads content to the given key.
	PutObject(ctx context.Context, key string, body io.Reader) (int64, error)

	// DeleteObject removes an object by key.
	DeleteObject(ctx context.Context, key string) error

	// ObjectExists checks if an object exists at the given key.
	ObjectExists(ctx context.Context, key string) (bool, error)

	// ListObjects returns the keys of all stored objects.
	ListObjects(ctx context.Context) ([]string, error)

	// Type returns the backend type identifier.
	Type() string

	// Close releases any resources held by the backend.
	Close() error
}
