package repository

import (
	"context"

	"gorm.io/gorm"

	"school-admissions/backend/internal/model"
)

// FormFieldRepository admission form field definitions
type FormFieldRepository interface {
	Create(ctx context.Context, field *model.FormField) error
	GetByID(ctx context.Context, id string) (*model.FormField, error)
	GetByName(ctx context.Context, name string) (*model.FormField, error)
	// List orders by section, display order, then creation time
	List(ctx context.Context, visibleOnly bool) ([]model.FormField, error)
	Update(ctx context.Context, field *model.FormField) error
	UpdateOrder(ctx context.Context, id string, displayOrder int) error
	Delete(ctx context.Context, id string) error
}

type formFieldRepo struct {
	db *gorm.DB
}

// NewFormFieldRepo creates a FormFieldRepository
func NewFormFieldRepo(db *gorm.DB) FormFieldRepository {
	return &formFieldRepo{db: db}
}

func (r *formFieldRepo) Create(ctx context.Context, field *model.FormField) error {
	return r.db.WithContext(ctx).Create(field).Error
}

func (r *formFieldRepo) GetByID(ctx context.Context, id string) (*model.FormField, error) {
	var field model.FormField
	err := r.db.WithContext(ctx).
		Where("field_id = ?", id).
		First(&field).Error
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *formFieldRepo) GetByName(ctx context.Context, name string) (*model.FormField, error) {
	var field model.FormField
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&field).Error
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *formFieldRepo) List(ctx context.Context, visibleOnly bool) ([]model.FormField, error) {
	var fields []model.FormField
	db := r.db.WithContext(ctx)

	if visibleOnly {
		db = db.Where("is_visible = ?", true)
	}

	err := db.Order("section ASC, display_order ASC, created_at ASC").Find(&fields).Error
	return fields, err
}

func (r *formFieldRepo) Update(ctx context.Context, field *model.FormField) error {
	return r.db.WithContext(ctx).Save(field).Error
}

func (r *formFieldRepo) UpdateOrder(ctx context.Context, id string, displayOrder int) error {
	res := r.db.WithContext(ctx).
		Model(&model.FormField{}).
		Where("field_id = ?", id).
		Updates(map[string]interface{}{
			"display_order": displayOrder,
			"updated_at":    gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *formFieldRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("field_id = ?", id).
		Delete(&model.FormField{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
