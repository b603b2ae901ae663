package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var ErrFileNotFound = errors.New("file not found in storage")

// Storage - абстракция над файловым хранилищем (локальный диск или S3)
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	GetURL(key string) string
	GetSignedURL(key string, expires time.Duration) (string, error)
	GetSize(ctx context.Context, key string) (int64, error)
}

// Config - конфигурация хранилища
type Config struct {
	Type      string // local, s3
	BasePath  string
	BaseURL   string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// New создает хранилище по типу из конфигурации
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg.BasePath, cfg.BaseURL)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
