package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"school-admissions/backend/internal/model"
)

// BranchRepository branches and their contact blocks
type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id string) (*model.Branch, error)
	GetDefault(ctx context.Context) (*model.Branch, error)
	List(ctx context.Context, enabledOnly bool) ([]model.Branch, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id string, deletedBy string) error
	// ClearDefault drops the default flag from every branch
	ClearDefault(ctx context.Context) error
	MarkDefault(ctx context.Context, id string) error

	GetContact(ctx context.Context, branchID string) (*model.BranchContact, error)
	UpsertContact(ctx context.Context, contact *model.BranchContact) error
}

type branchRepo struct {
	db *gorm.DB
}

// NewBranchRepo creates a BranchRepository
func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db: db}
}

func (r *branchRepo) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepo) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", id).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) GetDefault(ctx context.Context) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) List(ctx context.Context, enabledOnly bool) ([]model.Branch, error) {
	var branches []model.Branch
	db := r.db.WithContext(ctx)

	if enabledOnly {
		db = db.Where("is_enabled = ?", true)
	}

	err := db.Order("display_order ASC, name ASC").Find(&branches).Error
	return branches, err
}

func (r *branchRepo) Update(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *branchRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Branch{}).
		Where("branch_id = ?", id).
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

func (r *branchRepo) ClearDefault(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.Branch{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

func (r *branchRepo) MarkDefault(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Branch{}).
		Where("branch_id = ?", id).
		Updates(map[string]interface{}{
			"is_default": true,
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *branchRepo) GetContact(ctx context.Context, branchID string) (*model.BranchContact, error) {
	var contact model.BranchContact
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *branchRepo) UpsertContact(ctx context.Context, contact *model.BranchContact) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "branch_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"phone", "alternate_phone", "email", "address", "map_url", "office_hours",
				"updated_at", "updated_by",
			}),
		}).
		Create(contact).Error
}
