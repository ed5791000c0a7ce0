package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nitchakan-dev/filevault/config"
)

// MinioBlobStorage stores blobs as objects in a single MinIO bucket,
// behind the same BlobStorage contract as the local driver.
type MinioBlobStorage struct {
	Client *minio.Client
	Bucket string
}

func NewMinioBlobStorage(cfg *config.EnvConfig) (*MinioBlobStorage, error) {
	if cfg.Minio.Endpoint == "" {
		return nil, errors.New("MinIO endpoint is not configured")
	}

	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.RootUser, cfg.Minio.RootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check MinIO bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create MinIO bucket: %w", err)
		}
	}

	log.Println("Connected to MinIO:", cfg.Minio.Endpoint)

	return &MinioBlobStorage{
		Client: client,
		Bucket: cfg.Minio.Bucket,
	}, nil
}

func (s *MinioBlobStorage) generateKey(suggestedName string) string {
	ext := filepath.Ext(suggestedName)
	return fmt.Sprintf("%d-%d%s", time.Now().UnixNano(), rand.Int63n(1_000_000_000), ext)
}

func (s *MinioBlobStorage) Store(ctx context.Context, r io.Reader, size int64, suggestedName string) (string, error) {
	key := s.generateKey(suggestedName)
	_, err := s.Client.PutObject(ctx, s.Bucket, key, r, size, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to store blob in MinIO: %w", err)
	}
	return key, nil
}

func (s *MinioBlobStorage) Exists(ctx context.Context, path string) bool {
	_, err := s.Client.StatObject(ctx, s.Bucket, path, minio.StatObjectOptions{})
	return err == nil
}

func (s *MinioBlobStorage) Remove(ctx context.Context, path string) error {
	_, err := s.Client.StatObject(ctx, s.Bucket, path, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			log.Printf("blob %s already absent, skipping", path)
			return nil
		}
	}
	if err := s.Client.RemoveObject(ctx, s.Bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove blob from MinIO: %w", err)
	}
	return nil
}

func (s *MinioBlobStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open blob from MinIO: %w", err)
	}
	return obj, nil
}
