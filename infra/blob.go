package infra

import (
	"context"
	"fmt"
	"io"

	"github.com/nitchakan-dev/filevault/config"
)

// BlobStorage persists file content as opaque byte streams. Keys are
// generated server-side and are never derived from caller-visible names,
// so concurrent writes cannot collide and path traversal is impossible.
type BlobStorage interface {
	// Store persists content and returns the generated storage path.
	Store(ctx context.Context, r io.Reader, size int64, suggestedName string) (string, error)
	// Exists reports whether the path holds content.
	Exists(ctx context.Context, path string) bool
	// Remove deletes the content. A missing path is logged and returns
	// nil so that purging a row whose blob is already gone still succeeds.
	Remove(ctx context.Context, path string) error
	// Open returns a reader over the content.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

func NewBlobStorage(cfg *config.EnvConfig) (BlobStorage, error) {
	switch cfg.Blob.Driver {
	case "local", "":
		return NewLocalBlobStorage(cfg.Blob.LocalDir)
	case "minio":
		return NewMinioBlobStorage(cfg)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Blob.Driver)
	}
}
