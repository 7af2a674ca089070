package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-admissions/backend/config"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
	"school-admissions/backend/pkg/jwt"
	"school-admissions/backend/pkg/storage"
)

// Service aggregates every service
type Service struct {
	Auth        AuthService
	Branch      BranchService
	FormField   FormFieldService
	Application ApplicationService
	Student     StudentService
	News        NewsService
	Academic    AcademicService
	Carousel    CarouselService
	Gallery     GalleryService
	Career      CareerService
	About       AboutService
	Upload      UploadService
	Export      ExportService
}

// Deps collaborators outside the database. Nil TokenStore and FieldCache
// disable logout blacklisting and form caching; a nil Notifier drops
// status notifications.
type Deps struct {
	Tokens   TokenStore
	Cache    FieldCache
	Notifier StatusNotifier
	Storage  storage.Storage
}

// NewService builds the aggregate
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	deps Deps,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, deps.Tokens, logger),
		Branch:      NewBranchService(repo, logger),
		FormField:   NewFormFieldService(repo, deps.Cache, logger),
		Application: NewApplicationService(cfg, repo, deps.Notifier, logger),
		Student:     NewStudentService(repo, logger),
		News:        NewNewsService(repo, logger),
		Academic:    NewAcademicService(repo, logger),
		Carousel:    NewCarouselService(repo, logger),
		Gallery:     NewGalleryService(repo, logger),
		Career:      NewCareerService(repo, logger),
		About:       NewAboutService(repo, logger),
		Upload:      NewUploadService(&cfg.Storage, deps.Storage, logger),
		Export:      NewExportService(repo, logger),
	}
}

// Principal authenticated caller
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role
func (p Principal) IsAdmin() bool { return p.Role == model.RoleAdmin }

// TokenStore revokes tokens before their expiry
type TokenStore interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// FieldCache JSON cache for the public form definition
type FieldCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// StatusNotifier tells applicants their application status changed
type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, email, name, applicationID, status, comment string) error
}

const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
