package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"school-admissions/backend/config"
	"school-admissions/backend/internal/dto"
	"school-admissions/backend/pkg/errors"
	"school-admissions/backend/pkg/storage"
)

var (
	ErrUnsupportedType = errors.New(errors.KindValidation, 17001, "unsupported file type")
	ErrUploadTooLarge  = errors.New(errors.KindValidation, 17002, "file exceeds the upload size limit")
	ErrUploadEmpty     = errors.New(errors.KindValidation, 17003, "file is empty")
	ErrUploadFailed    = errors.New(errors.KindUnexpected, 17004, "failed to store file")
)

// allowed content types and the extension they are stored with
var uploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// UploadService stores user files
type UploadService interface {
	// Upload sniffs the content type, downscales images and stores the
	// result under folder
	Upload(ctx context.Context, folder string, r io.Reader) (*dto.UploadResponse, error)
}

type uploadService struct {
	cfg    *config.StorageConfig
	store  storage.Storage
	now    func() time.Time
	logger *zap.Logger
}

// NewUploadService creates an UploadService
func NewUploadService(cfg *config.StorageConfig, store storage.Storage, logger *zap.Logger) UploadService {
	return &uploadService{cfg: cfg, store: store, now: time.Now, logger: logger}
}

func (s *uploadService) Upload(ctx context.Context, folder string, r io.Reader) (*dto.UploadResponse, error) {
	limit := s.cfg.MaxUploadSize
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrUploadEmpty
	}
	if int64(len(data)) > limit {
		return nil, ErrUploadTooLarge
	}

	// the client supplied header is not trusted
	contentType := http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := uploadTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedType.WithDetails(contentType)
	}

	if strings.HasPrefix(contentType, "image/") {
		scaled, err := storage.Downscale(data, contentType, s.cfg.MaxImageWidth)
		if err != nil {
			return nil, ErrUnsupportedType.WithDetails("corrupt image")
		}
		data = scaled
	}

	key := storage.GenerateKey(folder, ext, s.now())
	url, err := s.store.Put(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		s.logger.Error("store upload failed", zap.String("key", key), zap.Error(err))
		return nil, ErrUploadFailed
	}

	s.logger.Info("file uploaded", zap.String("key", key), zap.Int("size", len(data)))
	return &dto.UploadResponse{URL: url, ContentType: contentType, Size: int64(len(data))}, nil
}
