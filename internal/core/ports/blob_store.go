package ports

import (
	"context"
	"io"
)

// BlobStore persists uploaded documentation as opaque objects. Deposits hold
// only the object key; retrieval and lifecycle of the bytes is the store's
// concern.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
}
