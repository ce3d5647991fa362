// Package blob provides the blob-storage collaborator used for document
// content. Two backends exist: the local filesystem and an S3-compatible
// object store.
package blob

import (
	"context"
	"io"

	"github.com/dmitrijs2005/projecthub/internal/common"
)

// Store persists opaque byte streams under caller-chosen keys.
//
// Remove and Size report common.ErrNotFound for absent keys, so callers can
// distinguish "already gone" from a backend failure.
type Store interface {
	// Write stores the stream under key and returns the number of bytes
	// persisted.
	Write(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open returns a reader over the stored bytes. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove deletes the stored bytes.
	Remove(ctx context.Context, key string) error

	// Size returns the stored size in bytes.
	Size(ctx context.Context, key string) (int64, error)
}

// ErrNotFound re-exports the shared sentinel for convenience in this package.
var ErrNotFound = common.ErrNotFound
