package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrObjectNotFound is returned by Get when nothing is stored under the key.
var ErrObjectNotFound = errors.New("object not found")

// Storage defines the byte-level operations the image store needs from a medium.
type Storage interface {
	// Save stores the object at the given key
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Get opens the object at the given key
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object; missing keys are not an error
	Delete(ctx context.Context, key string) error

	// Exists checks if an object is stored at the given key
	Exists(ctx context.Context, key string) (bool, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // memory, local, s3, cloudflare_r2, minio
	BasePath  string // For local storage
	Bucket    string // For S3/R2/MinIO
	Region    string // For S3
	AccessKey string // For S3/R2/MinIO
	SecretKey string // For S3/R2/MinIO
	Endpoint  string // For R2, MinIO or custom S3
	UseSSL    bool   // For MinIO
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryStorage(), nil
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	case "minio":
		return NewMinioStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
