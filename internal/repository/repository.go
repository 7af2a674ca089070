package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"school-admissions/backend/internal/model"
)

// Repository aggregates every repository
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Branch      BranchRepository
	FormField   FormFieldRepository
	Application ApplicationRepository
	Student     StudentRepository
	About       AboutRepository

	News     ContentRepository[model.News]
	Academic ContentRepository[model.AcademicProgram]
	Carousel ContentRepository[model.CarouselSlide]
	Gallery  ContentRepository[model.GalleryCategory]
	Career   ContentRepository[model.Career]
}

// NewRepository builds the aggregate on db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Branch:      NewBranchRepo(db),
		FormField:   NewFormFieldRepo(db),
		Application: NewApplicationRepo(db),
		Student:     NewStudentRepo(db),
		About:       NewAboutRepo(db),
		News:        NewNewsRepo(db),
		Academic:    NewAcademicRepo(db),
		Carousel:    NewCarouselRepo(db),
		Gallery:     NewGalleryRepo(db),
		Career:      NewCareerRepo(db),
	}
}

// WithTx returns an aggregate bound to tx
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// RunInTx runs fn inside one database transaction; fn's error rolls it back.
// Aggregates assembled without a database (unit tests) call fn directly.
func (r *Repository) RunInTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// likePattern escapes s for use inside ILIKE '%s%'
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(s))
	return "%" + s + "%"
}
