package infra

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// LocalBlobStorage keeps blobs as flat files in a single directory. Keys
// are "<unix-nano>-<random>[.ext]" so the same display name can be stored
// any number of times.
type LocalBlobStorage struct {
	dir string
}

func NewLocalBlobStorage(dir string) (*LocalBlobStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &LocalBlobStorage{dir: dir}, nil
}

func (s *LocalBlobStorage) generateKey(suggestedName string) string {
	ext := filepath.Ext(suggestedName)
	return fmt.Sprintf("%d-%d%s", time.Now().UnixNano(), rand.Int63n(1_000_000_000), ext)
}

func (s *LocalBlobStorage) Store(ctx context.Context, r io.Reader, size int64, suggestedName string) (string, error) {
	key := s.generateKey(suggestedName)
	dst := filepath.Join(s.dir, key)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return key, nil
}

func (s *LocalBlobStorage) Exists(ctx context.Context, path string) bool {
	_, err := os.Stat(filepath.Join(s.dir, path))
	return err == nil
}

func (s *LocalBlobStorage) Remove(ctx context.Context, path string) error {
	err := os.Remove(filepath.Join(s.dir, path))
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("blob %s already absent, skipping", path)
			return nil
		}
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	return nil
}

func (s *LocalBlobStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}
