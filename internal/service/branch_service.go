package service

import (
	"context"

	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
	"school-admissions/backend/pkg/errors"
)

var (
	ErrBranchNotFound      = errors.New(errors.KindNotFound, 12001, "branch not found")
	ErrBranchDisabled      = errors.New(errors.KindValidation, 12002, "branch is disabled")
	ErrDefaultBranchLocked = errors.New(errors.KindConflict, 12003, "the default branch cannot be deleted or disabled")
	ErrNoDefaultBranch     = errors.New(errors.KindUnavailable, 12004, "no default branch is configured")
	ErrContactNotFound     = errors.New(errors.KindNotFound, 12005, "branch contact not found")
)

// BranchService branches and their contact blocks
type BranchService interface {
	Create(ctx context.Context, req *dto.CreateBranchRequest, callerID string) (*dto.BranchResponse, error)
	GetByID(ctx context.Context, id string, includeDisabled bool) (*dto.BranchResponse, error)
	List(ctx context.Context, includeDisabled bool) ([]dto.BranchResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateBranchRequest, callerID string) (*dto.BranchResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// SetDefault moves the default flag to id in one transaction
	SetDefault(ctx context.Context, id string) (*dto.BranchResponse, error)

	GetContact(ctx context.Context, branchID string) (*dto.BranchContactResponse, error)
	UpsertContact(ctx context.Context, branchID string, req *dto.UpsertBranchContactRequest, callerID string) (*dto.BranchContactResponse, error)
}

type branchService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBranchService creates a BranchService
func NewBranchService(repo *repository.Repository, logger *zap.Logger) BranchService {
	return &branchService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *branchService) Create(ctx context.Context, req *dto.CreateBranchRequest, callerID string) (*dto.BranchResponse, error) {
	branch := &model.Branch{
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		Phone:        req.Phone,
		Email:        req.Email,
		IsEnabled:    true,
		DisplayOrder: req.DisplayOrder,
	}
	if req.IsEnabled != nil {
		branch.IsEnabled = *req.IsEnabled
	}
	branch.CreatedBy = strPtr(callerID)
	branch.UpdatedBy = strPtr(callerID)

	if err := s.repo.Branch.Create(ctx, branch); err != nil {
		s.logger.Error("create branch failed", zap.Error(err))
		return nil, err
	}

	return toBranchResponse(branch), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *branchService) GetByID(ctx context.Context, id string, includeDisabled bool) (*dto.BranchResponse, error) {
	branch, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !branch.IsEnabled && !includeDisabled {
		return nil, ErrBranchNotFound
	}
	return toBranchResponse(branch), nil
}

// ────────────────────── List ──────────────────────

func (s *branchService) List(ctx context.Context, includeDisabled bool) ([]dto.BranchResponse, error) {
	branches, err := s.repo.Branch.List(ctx, !includeDisabled)
	if err != nil {
		s.logger.Error("list branches failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BranchResponse, 0, len(branches))
	for i := range branches {
		result = append(result, *toBranchResponse(&branches[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *branchService) Update(ctx context.Context, id string, req *dto.UpdateBranchRequest, callerID string) (*dto.BranchResponse, error) {
	branch, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.City != nil {
		branch.City = *req.City
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	if req.DisplayOrder != nil {
		branch.DisplayOrder = *req.DisplayOrder
	}
	if req.IsEnabled != nil {
		if !*req.IsEnabled && branch.IsDefault {
			return nil, ErrDefaultBranchLocked
		}
		branch.IsEnabled = *req.IsEnabled
	}
	branch.UpdatedBy = strPtr(callerID)

	if err := s.repo.Branch.Update(ctx, branch); err != nil {
		s.logger.Error("update branch failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toBranchResponse(branch), nil
}

// ────────────────────── Delete ──────────────────────

func (s *branchService) Delete(ctx context.Context, id string, callerID string) error {
	branch, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if branch.IsDefault {
		return ErrDefaultBranchLocked
	}

	if err := s.repo.Branch.Delete(ctx, id, callerID); err != nil {
		if isNotFound(err) {
			return ErrBranchNotFound
		}
		s.logger.Error("delete branch failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── SetDefault ──────────────────────

func (s *branchService) SetDefault(ctx context.Context, id string) (*dto.BranchResponse, error) {
	branch, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !branch.IsEnabled {
		return nil, ErrBranchDisabled
	}
	if branch.IsDefault {
		return toBranchResponse(branch), nil
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Branch.ClearDefault(ctx); err != nil {
			return err
		}
		return tx.Branch.MarkDefault(ctx, id)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("set default branch failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	branch.IsDefault = true
	return toBranchResponse(branch), nil
}

// ────────────────────── contact ──────────────────────

func (s *branchService) GetContact(ctx context.Context, branchID string) (*dto.BranchContactResponse, error) {
	contact, err := s.repo.Branch.GetContact(ctx, branchID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrContactNotFound
		}
		s.logger.Error("get branch contact failed", zap.String("branch_id", branchID), zap.Error(err))
		return nil, err
	}
	return toContactResponse(contact), nil
}

func (s *branchService) UpsertContact(ctx context.Context, branchID string, req *dto.UpsertBranchContactRequest, callerID string) (*dto.BranchContactResponse, error) {
	if _, err := s.load(ctx, branchID); err != nil {
		return nil, err
	}

	contact := &model.BranchContact{
		BranchID:       branchID,
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
		Email:          req.Email,
		Address:        req.Address,
		MapURL:         req.MapURL,
		OfficeHours:    req.OfficeHours,
	}
	contact.CreatedBy = strPtr(callerID)
	contact.UpdatedBy = strPtr(callerID)

	if err := s.repo.Branch.UpsertContact(ctx, contact); err != nil {
		s.logger.Error("upsert branch contact failed", zap.String("branch_id", branchID), zap.Error(err))
		return nil, err
	}
	return toContactResponse(contact), nil
}

func (s *branchService) load(ctx context.Context, id string) (*model.Branch, error) {
	branch, err := s.repo.Branch.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("get branch failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return branch, nil
}

func toBranchResponse(b *model.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:           b.BranchID,
		Name:         b.Name,
		Address:      b.Address,
		City:         b.City,
		Phone:        b.Phone,
		Email:        b.Email,
		IsEnabled:    b.IsEnabled,
		IsDefault:    b.IsDefault,
		DisplayOrder: b.DisplayOrder,
		CreatedAt:    formatTime(b.CreatedAt),
		UpdatedAt:    formatTime(b.UpdatedAt),
	}
}

func toContactResponse(c *model.BranchContact) *dto.BranchContactResponse {
	return &dto.BranchContactResponse{
		BranchID:       c.BranchID,
		Phone:          c.Phone,
		AlternatePhone: c.AlternatePhone,
		Email:          c.Email,
		Address:        c.Address,
		MapURL:         c.MapURL,
		OfficeHours:    c.OfficeHours,
		UpdatedAt:      formatTime(c.UpdatedAt),
	}
}
