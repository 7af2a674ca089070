package service

import (
	"context"

	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
)

// GalleryService photo albums
type GalleryService interface {
	List(ctx context.Context, branchID string, publicOnly bool) ([]dto.GalleryCategoryResponse, error)
	Get(ctx context.Context, branchID, id string) (*dto.GalleryCategoryResponse, error)
	Create(ctx context.Context, branchID string, req *dto.GalleryCategoryRequest, callerID string) (*dto.GalleryCategoryResponse, error)
	Update(ctx context.Context, branchID, id string, req *dto.GalleryCategoryRequest, callerID string) (*dto.GalleryCategoryResponse, error)
	Delete(ctx context.Context, branchID, id, callerID string) error
}

type galleryService struct {
	core contentCore[model.GalleryCategory]
}

// NewGalleryService creates a GalleryService
func NewGalleryService(repo *repository.Repository, logger *zap.Logger) GalleryService {
	return &galleryService{core: contentCore[model.GalleryCategory]{
		items:    repo.Gallery,
		branches: repo.Branch,
		notFound: ErrGalleryNotFound,
		name:     "gallery category",
		logger:   logger,
	}}
}

func (s *galleryService) List(ctx context.Context, branchID string, publicOnly bool) ([]dto.GalleryCategoryResponse, error) {
	items, err := s.core.list(ctx, branchID, publicOnly)
	if err != nil {
		return nil, err
	}
	result := make([]dto.GalleryCategoryResponse, 0, len(items))
	for i := range items {
		result = append(result, toGalleryResponse(&items[i]))
	}
	return result, nil
}

func (s *galleryService) Get(ctx context.Context, branchID, id string) (*dto.GalleryCategoryResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	resp := toGalleryResponse(item)
	return &resp, nil
}

func (s *galleryService) Create(ctx context.Context, branchID string, req *dto.GalleryCategoryRequest, callerID string) (*dto.GalleryCategoryResponse, error) {
	item := &model.GalleryCategory{BranchID: branchID, IsVisible: true}
	applyGallery(item, req)
	item.CreatedBy = strPtr(callerID)
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.create(ctx, branchID, item); err != nil {
		return nil, err
	}
	resp := toGalleryResponse(item)
	return &resp, nil
}

func (s *galleryService) Update(ctx context.Context, branchID, id string, req *dto.GalleryCategoryRequest, callerID string) (*dto.GalleryCategoryResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	applyGallery(item, req)
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.update(ctx, id, item); err != nil {
		return nil, err
	}
	resp := toGalleryResponse(item)
	return &resp, nil
}

func (s *galleryService) Delete(ctx context.Context, branchID, id, callerID string) error {
	return s.core.delete(ctx, branchID, id, callerID)
}

func applyGallery(item *model.GalleryCategory, req *dto.GalleryCategoryRequest) {
	item.Name = req.Name
	item.Description = req.Description
	item.CoverURL = req.CoverURL
	item.ImageURLs = req.ImageURLs
	item.DisplayOrder = req.DisplayOrder
	if req.IsVisible != nil {
		item.IsVisible = *req.IsVisible
	}
	// the first image doubles as cover when none is set
	if item.CoverURL == "" && len(item.ImageURLs) > 0 {
		item.CoverURL = item.ImageURLs[0]
	}
}

func toGalleryResponse(g *model.GalleryCategory) dto.GalleryCategoryResponse {
	images := []string(g.ImageURLs)
	if images == nil {
		images = []string{}
	}
	return dto.GalleryCategoryResponse{
		ID:           g.CategoryID,
		BranchID:     g.BranchID,
		Name:         g.Name,
		Description:  g.Description,
		CoverURL:     g.CoverURL,
		ImageURLs:    images,
		IsVisible:    g.IsVisible,
		DisplayOrder: g.DisplayOrder,
		UpdatedAt:    formatTime(g.UpdatedAt),
	}
}
