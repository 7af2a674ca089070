package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"school-admissions/backend/internal/model"
)

// AboutPage about page of one branch
type AboutPage struct {
	Section    *model.AboutSection
	Facilities []model.Facility
	Timeline   []model.TimelineEvent
}

// AboutRepository about page section, facilities and timeline
type AboutRepository interface {
	// Get returns gorm.ErrRecordNotFound when the branch has no section
	Get(ctx context.Context, branchID string) (*AboutPage, error)
	// Replace writes the section and swaps both lists in one transaction
	Replace(ctx context.Context, page *AboutPage) error
}

type aboutRepo struct {
	db *gorm.DB
}

// NewAboutRepo creates an AboutRepository
func NewAboutRepo(db *gorm.DB) AboutRepository {
	return &aboutRepo{db: db}
}

func (r *aboutRepo) Get(ctx context.Context, branchID string) (*AboutPage, error) {
	db := r.db.WithContext(ctx)
	page := &AboutPage{Section: &model.AboutSection{}}

	if err := db.Where("branch_id = ?", branchID).First(page.Section).Error; err != nil {
		return nil, err
	}
	if err := db.Where("branch_id = ?", branchID).
		Order("display_order ASC").
		Find(&page.Facilities).Error; err != nil {
		return nil, err
	}
	if err := db.Where("branch_id = ?", branchID).
		Order("display_order ASC, year ASC").
		Find(&page.Timeline).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *aboutRepo) Replace(ctx context.Context, page *AboutPage) error {
	branchID := page.Section.BranchID

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "branch_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "body", "mission", "vision", "updated_at", "updated_by",
			}),
		}).Create(page.Section).Error; err != nil {
			return err
		}

		// lists are replaced wholesale
		if err := tx.Where("branch_id = ?", branchID).Delete(&model.Facility{}).Error; err != nil {
			return err
		}
		if err := tx.Where("branch_id = ?", branchID).Delete(&model.TimelineEvent{}).Error; err != nil {
			return err
		}

		if len(page.Facilities) > 0 {
			if err := tx.Create(&page.Facilities).Error; err != nil {
				return err
			}
		}
		if len(page.Timeline) > 0 {
			if err := tx.Create(&page.Timeline).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
