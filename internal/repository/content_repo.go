package repository

import (
	"context"

	"gorm.io/gorm"

	"school-admissions/backend/internal/model"
)

// ContentRepository branch-scoped record manager shared by the public
// content tables. Every read and write filters by branch_id.
type ContentRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, branchID, id string) (*T, error)
	// List returns the branch's rows; publicOnly keeps published/active rows
	List(ctx context.Context, branchID string, publicOnly bool) ([]T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, branchID, id, deletedBy string) error
}

type contentTable struct {
	idColumn     string
	publicColumn string
	order        string
}

type contentRepo[T any] struct {
	db    *gorm.DB
	table contentTable
}

func newContentRepo[T any](db *gorm.DB, table contentTable) ContentRepository[T] {
	return &contentRepo[T]{db: db, table: table}
}

// NewNewsRepo news posts, newest published first
func NewNewsRepo(db *gorm.DB) ContentRepository[model.News] {
	return newContentRepo[model.News](db, contentTable{
		idColumn:     "news_id",
		publicColumn: "is_published",
		order:        "published_at DESC NULLS LAST, created_at DESC",
	})
}

func NewAcademicRepo(db *gorm.DB) ContentRepository[model.AcademicProgram] {
	return newContentRepo[model.AcademicProgram](db, contentTable{
		idColumn:     "program_id",
		publicColumn: "is_active",
		order:        "display_order ASC, created_at ASC",
	})
}

func NewCarouselRepo(db *gorm.DB) ContentRepository[model.CarouselSlide] {
	return newContentRepo[model.CarouselSlide](db, contentTable{
		idColumn:     "slide_id",
		publicColumn: "is_active",
		order:        "display_order ASC, created_at ASC",
	})
}

func NewGalleryRepo(db *gorm.DB) ContentRepository[model.GalleryCategory] {
	return newContentRepo[model.GalleryCategory](db, contentTable{
		idColumn:     "category_id",
		publicColumn: "is_visible",
		order:        "display_order ASC, created_at ASC",
	})
}

// NewCareerRepo job openings, newest first
func NewCareerRepo(db *gorm.DB) ContentRepository[model.Career] {
	return newContentRepo[model.Career](db, contentTable{
		idColumn:     "career_id",
		publicColumn: "is_open",
		order:        "created_at DESC",
	})
}

func (r *contentRepo[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *contentRepo[T]) GetByID(ctx context.Context, branchID, id string) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).
		Where(r.table.idColumn+" = ? AND branch_id = ?", id, branchID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepo[T]) List(ctx context.Context, branchID string, publicOnly bool) ([]T, error) {
	var items []T
	db := r.db.WithContext(ctx).Where("branch_id = ?", branchID)

	if publicOnly {
		db = db.Where(r.table.publicColumn+" = ?", true)
	}

	err := db.Order(r.table.order).Find(&items).Error
	return items, err
}

func (r *contentRepo[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *contentRepo[T]) Delete(ctx context.Context, branchID, id, deletedBy string) error {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where(r.table.idColumn+" = ? AND branch_id = ?", id, branchID).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
