package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/form"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
)

// CareerService job openings
type CareerService interface {
	List(ctx context.Context, branchID string, publicOnly bool) ([]dto.CareerResponse, error)
	Get(ctx context.Context, branchID, id string) (*dto.CareerResponse, error)
	Create(ctx context.Context, branchID string, req *dto.CareerRequest, callerID string) (*dto.CareerResponse, error)
	Update(ctx context.Context, branchID, id string, req *dto.CareerRequest, callerID string) (*dto.CareerResponse, error)
	Delete(ctx context.Context, branchID, id, callerID string) error
}

type careerService struct {
	core contentCore[model.Career]
}

// NewCareerService creates a CareerService
func NewCareerService(repo *repository.Repository, logger *zap.Logger) CareerService {
	return &careerService{core: contentCore[model.Career]{
		items:    repo.Career,
		branches: repo.Branch,
		notFound: ErrCareerNotFound,
		name:     "career",
		logger:   logger,
	}}
}

func (s *careerService) List(ctx context.Context, branchID string, publicOnly bool) ([]dto.CareerResponse, error) {
	items, err := s.core.list(ctx, branchID, publicOnly)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CareerResponse, 0, len(items))
	for i := range items {
		result = append(result, toCareerResponse(&items[i]))
	}
	return result, nil
}

func (s *careerService) Get(ctx context.Context, branchID, id string) (*dto.CareerResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	resp := toCareerResponse(item)
	return &resp, nil
}

func (s *careerService) Create(ctx context.Context, branchID string, req *dto.CareerRequest, callerID string) (*dto.CareerResponse, error) {
	item := &model.Career{BranchID: branchID, IsOpen: true}
	if err := applyCareer(item, req); err != nil {
		return nil, err
	}
	item.CreatedBy = strPtr(callerID)
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.create(ctx, branchID, item); err != nil {
		return nil, err
	}
	resp := toCareerResponse(item)
	return &resp, nil
}

func (s *careerService) Update(ctx context.Context, branchID, id string, req *dto.CareerRequest, callerID string) (*dto.CareerResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	if err := applyCareer(item, req); err != nil {
		return nil, err
	}
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.update(ctx, id, item); err != nil {
		return nil, err
	}
	resp := toCareerResponse(item)
	return &resp, nil
}

func (s *careerService) Delete(ctx context.Context, branchID, id, callerID string) error {
	return s.core.delete(ctx, branchID, id, callerID)
}

func applyCareer(item *model.Career, req *dto.CareerRequest) error {
	item.Title = req.Title
	item.Department = req.Department
	item.EmploymentType = req.EmploymentType
	item.Location = req.Location
	item.Description = req.Description
	item.Requirements = req.Requirements
	if req.IsOpen != nil {
		item.IsOpen = *req.IsOpen
	}
	item.ClosingDate = nil
	if req.ClosingDate != "" {
		d, err := time.Parse(form.DateLayout, req.ClosingDate)
		if err != nil {
			return ErrInvalidContent.WithDetails("closing_date must be YYYY-MM-DD")
		}
		item.ClosingDate = &d
	}
	return nil
}

func toCareerResponse(c *model.Career) dto.CareerResponse {
	resp := dto.CareerResponse{
		ID:             c.CareerID,
		BranchID:       c.BranchID,
		Title:          c.Title,
		Department:     c.Department,
		EmploymentType: c.EmploymentType,
		Location:       c.Location,
		Description:    c.Description,
		Requirements:   c.Requirements,
		IsOpen:         c.IsOpen,
		CreatedAt:      formatTime(c.CreatedAt),
	}
	if c.ClosingDate != nil {
		resp.ClosingDate = c.ClosingDate.Format(form.DateLayout)
	}
	return resp
}
