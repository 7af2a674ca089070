package service

import (
	"context"

	"go.uber.org/zap"

	"school-admissions/backend/internal/repository"
	"school-admissions/backend/pkg/errors"
)

var (
	ErrNewsNotFound    = errors.New(errors.KindNotFound, 16001, "news post not found")
	ErrProgramNotFound = errors.New(errors.KindNotFound, 16002, "academic program not found")
	ErrSlideNotFound   = errors.New(errors.KindNotFound, 16003, "carousel slide not found")
	ErrGalleryNotFound = errors.New(errors.KindNotFound, 16004, "gallery category not found")
	ErrCareerNotFound  = errors.New(errors.KindNotFound, 16005, "career opening not found")
	ErrAboutNotFound   = errors.New(errors.KindNotFound, 16006, "about page not found")
	ErrInvalidContent  = errors.New(errors.KindValidation, 16007, "invalid content")
)

// contentCore branch checks and error mapping shared by the content services
type contentCore[T any] struct {
	items    repository.ContentRepository[T]
	branches repository.BranchRepository
	notFound *errors.Error
	name     string
	logger   *zap.Logger
}

// checkBranch public reads need an enabled branch, admin writes any branch
func (c *contentCore[T]) checkBranch(ctx context.Context, branchID string, public bool) error {
	branch, err := c.branches.GetByID(ctx, branchID)
	if err != nil {
		if isNotFound(err) {
			return ErrBranchNotFound
		}
		c.logger.Error("get branch failed", zap.String("branch_id", branchID), zap.Error(err))
		return err
	}
	if public && !branch.IsEnabled {
		return ErrBranchNotFound
	}
	return nil
}

func (c *contentCore[T]) list(ctx context.Context, branchID string, publicOnly bool) ([]T, error) {
	if err := c.checkBranch(ctx, branchID, publicOnly); err != nil {
		return nil, err
	}
	items, err := c.items.List(ctx, branchID, publicOnly)
	if err != nil {
		c.logger.Error("list "+c.name+" failed", zap.String("branch_id", branchID), zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (c *contentCore[T]) get(ctx context.Context, branchID, id string) (*T, error) {
	item, err := c.items.GetByID(ctx, branchID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, c.notFound
		}
		c.logger.Error("get "+c.name+" failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (c *contentCore[T]) create(ctx context.Context, branchID string, item *T) error {
	if err := c.checkBranch(ctx, branchID, false); err != nil {
		return err
	}
	if err := c.items.Create(ctx, item); err != nil {
		c.logger.Error("create "+c.name+" failed", zap.String("branch_id", branchID), zap.Error(err))
		return err
	}
	return nil
}

func (c *contentCore[T]) update(ctx context.Context, id string, item *T) error {
	if err := c.items.Update(ctx, item); err != nil {
		c.logger.Error("update "+c.name+" failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (c *contentCore[T]) delete(ctx context.Context, branchID, id, callerID string) error {
	if err := c.items.Delete(ctx, branchID, id, callerID); err != nil {
		if isNotFound(err) {
			return c.notFound
		}
		c.logger.Error("delete "+c.name+" failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
