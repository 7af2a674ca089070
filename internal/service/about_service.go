package service

import (
	"context"

	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
)

// AboutService about page of a branch
type AboutService interface {
	Get(ctx context.Context, branchID string) (*dto.AboutResponse, error)
	// Replace writes section, facilities and timeline atomically
	Replace(ctx context.Context, branchID string, req *dto.ReplaceAboutRequest, callerID string) (*dto.AboutResponse, error)
}

type aboutService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAboutService creates an AboutService
func NewAboutService(repo *repository.Repository, logger *zap.Logger) AboutService {
	return &aboutService{repo: repo, logger: logger}
}

func (s *aboutService) Get(ctx context.Context, branchID string) (*dto.AboutResponse, error) {
	page, err := s.repo.About.Get(ctx, branchID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAboutNotFound
		}
		s.logger.Error("get about page failed", zap.String("branch_id", branchID), zap.Error(err))
		return nil, err
	}
	return toAboutResponse(page), nil
}

func (s *aboutService) Replace(ctx context.Context, branchID string, req *dto.ReplaceAboutRequest, callerID string) (*dto.AboutResponse, error) {
	if _, err := s.repo.Branch.GetByID(ctx, branchID); err != nil {
		if isNotFound(err) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("get branch failed", zap.String("branch_id", branchID), zap.Error(err))
		return nil, err
	}

	page := &repository.AboutPage{
		Section: &model.AboutSection{
			BranchID: branchID,
			Title:    req.Title,
			Body:     req.Body,
			Mission:  req.Mission,
			Vision:   req.Vision,
		},
		Facilities: make([]model.Facility, 0, len(req.Facilities)),
		Timeline:   make([]model.TimelineEvent, 0, len(req.Timeline)),
	}
	page.Section.CreatedBy = strPtr(callerID)
	page.Section.UpdatedBy = strPtr(callerID)

	// list position becomes display order
	for i, f := range req.Facilities {
		page.Facilities = append(page.Facilities, model.Facility{
			BranchID:     branchID,
			Name:         f.Name,
			Description:  f.Description,
			Icon:         f.Icon,
			DisplayOrder: i,
		})
	}
	for i, t := range req.Timeline {
		page.Timeline = append(page.Timeline, model.TimelineEvent{
			BranchID:     branchID,
			Year:         t.Year,
			Title:        t.Title,
			Description:  t.Description,
			DisplayOrder: i,
		})
	}

	if err := s.repo.About.Replace(ctx, page); err != nil {
		s.logger.Error("replace about page failed", zap.String("branch_id", branchID), zap.Error(err))
		return nil, err
	}
	return toAboutResponse(page), nil
}

func toAboutResponse(p *repository.AboutPage) *dto.AboutResponse {
	resp := &dto.AboutResponse{
		BranchID:   p.Section.BranchID,
		Title:      p.Section.Title,
		Body:       p.Section.Body,
		Mission:    p.Section.Mission,
		Vision:     p.Section.Vision,
		Facilities: make([]dto.FacilityInput, 0, len(p.Facilities)),
		Timeline:   make([]dto.TimelineInput, 0, len(p.Timeline)),
		UpdatedAt:  formatTime(p.Section.UpdatedAt),
	}
	for _, f := range p.Facilities {
		resp.Facilities = append(resp.Facilities, dto.FacilityInput{Name: f.Name, Description: f.Description, Icon: f.Icon})
	}
	for _, t := range p.Timeline {
		resp.Timeline = append(resp.Timeline, dto.TimelineInput{Year: t.Year, Title: t.Title, Description: t.Description})
	}
	return resp
}
