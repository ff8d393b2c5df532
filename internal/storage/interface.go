package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

// Object describes a stored object as reported by List.
type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// ObjectStore is the public-URL object storage used for equipment images.
// Implementations: local filesystem. Keys use forward slashes.
type ObjectStore interface {
	// Put stores the object under key, replacing any previous content.
	Put(ctx context.Context, key, contentType string, r io.Reader) error

	// Open returns the object content and its MIME type.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	List(ctx context.Context) ([]Object, error)

	// PublicURL is the URL clients use to fetch key.
	PublicURL(key string) string

	// KeyFromURL is the inverse of PublicURL.
	KeyFromURL(url string) (string, bool)
}
