package service

import (
	"context"

	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
)

// AcademicService academics page programs
type AcademicService interface {
	List(ctx context.Context, branchID string, publicOnly bool) ([]dto.AcademicProgramResponse, error)
	Get(ctx context.Context, branchID, id string) (*dto.AcademicProgramResponse, error)
	Create(ctx context.Context, branchID string, req *dto.AcademicProgramRequest, callerID string) (*dto.AcademicProgramResponse, error)
	Update(ctx context.Context, branchID, id string, req *dto.AcademicProgramRequest, callerID string) (*dto.AcademicProgramResponse, error)
	Delete(ctx context.Context, branchID, id, callerID string) error
}

type academicService struct {
	core contentCore[model.AcademicProgram]
}

// NewAcademicService creates an AcademicService
func NewAcademicService(repo *repository.Repository, logger *zap.Logger) AcademicService {
	return &academicService{core: contentCore[model.AcademicProgram]{
		items:    repo.Academic,
		branches: repo.Branch,
		notFound: ErrProgramNotFound,
		name:     "academic program",
		logger:   logger,
	}}
}

func (s *academicService) List(ctx context.Context, branchID string, publicOnly bool) ([]dto.AcademicProgramResponse, error) {
	items, err := s.core.list(ctx, branchID, publicOnly)
	if err != nil {
		return nil, err
	}
	result := make([]dto.AcademicProgramResponse, 0, len(items))
	for i := range items {
		result = append(result, toProgramResponse(&items[i]))
	}
	return result, nil
}

func (s *academicService) Get(ctx context.Context, branchID, id string) (*dto.AcademicProgramResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	resp := toProgramResponse(item)
	return &resp, nil
}

func (s *academicService) Create(ctx context.Context, branchID string, req *dto.AcademicProgramRequest, callerID string) (*dto.AcademicProgramResponse, error) {
	item := &model.AcademicProgram{BranchID: branchID, IsActive: true}
	applyProgram(item, req)
	item.CreatedBy = strPtr(callerID)
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.create(ctx, branchID, item); err != nil {
		return nil, err
	}
	resp := toProgramResponse(item)
	return &resp, nil
}

func (s *academicService) Update(ctx context.Context, branchID, id string, req *dto.AcademicProgramRequest, callerID string) (*dto.AcademicProgramResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	applyProgram(item, req)
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.update(ctx, id, item); err != nil {
		return nil, err
	}
	resp := toProgramResponse(item)
	return &resp, nil
}

func (s *academicService) Delete(ctx context.Context, branchID, id, callerID string) error {
	return s.core.delete(ctx, branchID, id, callerID)
}

func applyProgram(item *model.AcademicProgram, req *dto.AcademicProgramRequest) {
	item.Title = req.Title
	item.Level = req.Level
	item.Description = req.Description
	item.ImageURL = req.ImageURL
	item.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
}

func toProgramResponse(p *model.AcademicProgram) dto.AcademicProgramResponse {
	return dto.AcademicProgramResponse{
		ID:           p.ProgramID,
		BranchID:     p.BranchID,
		Title:        p.Title,
		Level:        p.Level,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		IsActive:     p.IsActive,
		DisplayOrder: p.DisplayOrder,
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}
