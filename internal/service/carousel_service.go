package service

import (
	"context"

	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
)

// CarouselService home page slides
type CarouselService interface {
	List(ctx context.Context, branchID string, publicOnly bool) ([]dto.CarouselSlideResponse, error)
	Get(ctx context.Context, branchID, id string) (*dto.CarouselSlideResponse, error)
	Create(ctx context.Context, branchID string, req *dto.CarouselSlideRequest, callerID string) (*dto.CarouselSlideResponse, error)
	Update(ctx context.Context, branchID, id string, req *dto.CarouselSlideRequest, callerID string) (*dto.CarouselSlideResponse, error)
	Delete(ctx context.Context, branchID, id, callerID string) error
}

type carouselService struct {
	core contentCore[model.CarouselSlide]
}

// NewCarouselService creates a CarouselService
func NewCarouselService(repo *repository.Repository, logger *zap.Logger) CarouselService {
	return &carouselService{core: contentCore[model.CarouselSlide]{
		items:    repo.Carousel,
		branches: repo.Branch,
		notFound: ErrSlideNotFound,
		name:     "carousel slide",
		logger:   logger,
	}}
}

func (s *carouselService) List(ctx context.Context, branchID string, publicOnly bool) ([]dto.CarouselSlideResponse, error) {
	items, err := s.core.list(ctx, branchID, publicOnly)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CarouselSlideResponse, 0, len(items))
	for i := range items {
		result = append(result, toSlideResponse(&items[i]))
	}
	return result, nil
}

func (s *carouselService) Get(ctx context.Context, branchID, id string) (*dto.CarouselSlideResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	resp := toSlideResponse(item)
	return &resp, nil
}

func (s *carouselService) Create(ctx context.Context, branchID string, req *dto.CarouselSlideRequest, callerID string) (*dto.CarouselSlideResponse, error) {
	item := &model.CarouselSlide{BranchID: branchID, IsActive: true}
	applySlide(item, req)
	item.CreatedBy = strPtr(callerID)
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.create(ctx, branchID, item); err != nil {
		return nil, err
	}
	resp := toSlideResponse(item)
	return &resp, nil
}

func (s *carouselService) Update(ctx context.Context, branchID, id string, req *dto.CarouselSlideRequest, callerID string) (*dto.CarouselSlideResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	applySlide(item, req)
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.update(ctx, id, item); err != nil {
		return nil, err
	}
	resp := toSlideResponse(item)
	return &resp, nil
}

func (s *carouselService) Delete(ctx context.Context, branchID, id, callerID string) error {
	return s.core.delete(ctx, branchID, id, callerID)
}

func applySlide(item *model.CarouselSlide, req *dto.CarouselSlideRequest) {
	item.Title = req.Title
	item.Subtitle = req.Subtitle
	item.ImageURL = req.ImageURL
	item.LinkURL = req.LinkURL
	item.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
}

func toSlideResponse(c *model.CarouselSlide) dto.CarouselSlideResponse {
	return dto.CarouselSlideResponse{
		ID:           c.SlideID,
		BranchID:     c.BranchID,
		Title:        c.Title,
		Subtitle:     c.Subtitle,
		ImageURL:     c.ImageURL,
		LinkURL:      c.LinkURL,
		IsActive:     c.IsActive,
		DisplayOrder: c.DisplayOrder,
		UpdatedAt:    formatTime(c.UpdatedAt),
	}
}
