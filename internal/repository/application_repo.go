package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"school-admissions/backend/internal/model"
)

// ApplicationFilter admin list filter. BranchID is mandatory; Limit <= 0
// returns every matching row.
type ApplicationFilter struct {
	BranchID string
	Status   model.ApplicationStatus
	Search   string
	Offset   int
	Limit    int
}

// ApplicationRepository applications and their status history
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	GetByEmail(ctx context.Context, email string) (*model.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]model.Application, int64, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, notes string, at time.Time) error
	// Delete removes the application; its status history cascades
	Delete(ctx context.Context, id string) error

	AppendStatusChange(ctx context.Context, change *model.ApplicationStatusChange) error
	ListStatusChanges(ctx context.Context, applicationID string) ([]model.ApplicationStatusChange, error)

	// ListApprovedWithoutStudent finds approved applications whose email has no student row
	ListApprovedWithoutStudent(ctx context.Context) ([]model.Application, error)
}

type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo creates an ApplicationRepository
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) GetByEmail(ctx context.Context, email string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) List(ctx context.Context, filter ApplicationFilter) ([]model.Application, int64, error) {
	var apps []model.Application
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("branch_id = ?", filter.BranchID)

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		db = db.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR application_id ILIKE ?",
			p, p, p, p,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("submitted_at DESC, application_id DESC")
	if filter.Limit > 0 {
		db = db.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := db.Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, notes string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("application_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"notes":      notes,
			"updated_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("application_id = ?", id).
		Delete(&model.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepo) AppendStatusChange(ctx context.Context, change *model.ApplicationStatusChange) error {
	return r.db.WithContext(ctx).Create(change).Error
}

func (r *applicationRepo) ListStatusChanges(ctx context.Context, applicationID string) ([]model.ApplicationStatusChange, error) {
	var changes []model.ApplicationStatusChange
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("changed_at ASC").
		Find(&changes).Error
	return changes, err
}

func (r *applicationRepo) ListApprovedWithoutStudent(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Table("applications AS a").
		Select("a.*").
		Joins("LEFT JOIN students s ON s.email = a.email").
		Where("a.status = ? AND s.student_id IS NULL", model.StatusApproved).
		Order("a.updated_at ASC").
		Find(&apps).Error
	return apps, err
}
