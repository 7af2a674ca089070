package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
)

// NewsService branch news posts
type NewsService interface {
	List(ctx context.Context, branchID string, publicOnly bool) ([]dto.NewsResponse, error)
	Get(ctx context.Context, branchID, id string, publicOnly bool) (*dto.NewsResponse, error)
	Create(ctx context.Context, branchID string, req *dto.NewsRequest, callerID string) (*dto.NewsResponse, error)
	Update(ctx context.Context, branchID, id string, req *dto.NewsRequest, callerID string) (*dto.NewsResponse, error)
	Delete(ctx context.Context, branchID, id, callerID string) error
}

type newsService struct {
	core contentCore[model.News]
	now  func() time.Time
}

// NewNewsService creates a NewsService
func NewNewsService(repo *repository.Repository, logger *zap.Logger) NewsService {
	return &newsService{
		core: contentCore[model.News]{
			items:    repo.News,
			branches: repo.Branch,
			notFound: ErrNewsNotFound,
			name:     "news",
			logger:   logger,
		},
		now: time.Now,
	}
}

func (s *newsService) List(ctx context.Context, branchID string, publicOnly bool) ([]dto.NewsResponse, error) {
	items, err := s.core.list(ctx, branchID, publicOnly)
	if err != nil {
		return nil, err
	}
	result := make([]dto.NewsResponse, 0, len(items))
	for i := range items {
		result = append(result, toNewsResponse(&items[i]))
	}
	return result, nil
}

func (s *newsService) Get(ctx context.Context, branchID, id string, publicOnly bool) (*dto.NewsResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	if publicOnly && !item.IsPublished {
		return nil, ErrNewsNotFound
	}
	resp := toNewsResponse(item)
	return &resp, nil
}

func (s *newsService) Create(ctx context.Context, branchID string, req *dto.NewsRequest, callerID string) (*dto.NewsResponse, error) {
	item := &model.News{BranchID: branchID}
	s.apply(item, req)
	item.CreatedBy = strPtr(callerID)
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.create(ctx, branchID, item); err != nil {
		return nil, err
	}
	resp := toNewsResponse(item)
	return &resp, nil
}

func (s *newsService) Update(ctx context.Context, branchID, id string, req *dto.NewsRequest, callerID string) (*dto.NewsResponse, error) {
	item, err := s.core.get(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	s.apply(item, req)
	item.UpdatedBy = strPtr(callerID)

	if err := s.core.update(ctx, id, item); err != nil {
		return nil, err
	}
	resp := toNewsResponse(item)
	return &resp, nil
}

func (s *newsService) Delete(ctx context.Context, branchID, id, callerID string) error {
	return s.core.delete(ctx, branchID, id, callerID)
}

// apply stamps published_at the first time a post is published
func (s *newsService) apply(item *model.News, req *dto.NewsRequest) {
	item.Title = req.Title
	item.Summary = req.Summary
	item.Body = req.Body
	item.ImageURL = req.ImageURL
	item.IsPublished = req.IsPublished
	if item.IsPublished && item.PublishedAt == nil {
		now := s.now()
		item.PublishedAt = &now
	}
}

func toNewsResponse(n *model.News) dto.NewsResponse {
	resp := dto.NewsResponse{
		ID:          n.NewsID,
		BranchID:    n.BranchID,
		Title:       n.Title,
		Summary:     n.Summary,
		Body:        n.Body,
		ImageURL:    n.ImageURL,
		IsPublished: n.IsPublished,
		CreatedAt:   formatTime(n.CreatedAt),
		UpdatedAt:   formatTime(n.UpdatedAt),
	}
	if n.PublishedAt != nil {
		resp.PublishedAt = formatTime(*n.PublishedAt)
	}
	return resp
}
