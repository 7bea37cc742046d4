package ports

import (
	"context"
	"io"
)

// BlobStore persists raw file bytes under a generated opaque key.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
