package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"school-admissions/backend/config"
)

// Storage stores uploaded objects and returns their public URL
type Storage interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
}

// New builds the storage driver selected in config
func New(cfg *config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3(&cfg.S3)
	case "local", "":
		return NewLocal(cfg.Local.Dir, cfg.Local.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// GenerateKey builds "<folder>/<yyyy>/<mm>/<uuid><ext>"
func GenerateKey(folder, ext string, now time.Time) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" {
		folder = "misc"
	}
	return fmt.Sprintf("%s/%04d/%02d/%s%s", folder, now.Year(), int(now.Month()), uuid.NewString(), ext)
}
