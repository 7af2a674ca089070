package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/form"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
	"school-admissions/backend/pkg/errors"
)

var (
	ErrFieldNotFound     = errors.New(errors.KindNotFound, 13001, "form field not found")
	ErrFieldNameTaken    = errors.New(errors.KindConflict, 13002, "a form field with this name already exists")
	ErrFieldInvalid      = errors.New(errors.KindValidation, 13003, "invalid form field definition")
	ErrFormNotConfigured = errors.New(errors.KindUnavailable, 13004, "the admission form is not configured")
)

const (
	activeFieldsCacheKey = "form:fields:active"
	activeFieldsCacheTTL = 10 * time.Minute
	defaultSection       = "personal"
)

// FormFieldService admission form field definitions
type FormFieldService interface {
	// PublicDefinition visible fields plus their section grouping
	PublicDefinition(ctx context.Context) (*dto.FormDefinitionResponse, error)
	List(ctx context.Context) ([]dto.FormFieldResponse, error)
	Create(ctx context.Context, req *dto.CreateFormFieldRequest, callerID string) (*dto.FormFieldResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateFormFieldRequest, callerID string) (*dto.FormFieldResponse, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req *dto.ReorderFormFieldsRequest) ([]dto.FormFieldResponse, error)
}

type formFieldService struct {
	repo   *repository.Repository
	cache  FieldCache
	logger *zap.Logger
}

// NewFormFieldService creates a FormFieldService; cache may be nil
func NewFormFieldService(repo *repository.Repository, cache FieldCache, logger *zap.Logger) FormFieldService {
	return &formFieldService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── PublicDefinition ──────────────────────

func (s *formFieldService) PublicDefinition(ctx context.Context) (*dto.FormDefinitionResponse, error) {
	if s.cache != nil {
		var cached dto.FormDefinitionResponse
		found, err := s.cache.GetJSON(ctx, activeFieldsCacheKey, &cached)
		if err != nil {
			s.logger.Warn("read form cache failed", zap.Error(err))
		} else if found && len(cached.Fields) > 0 {
			return &cached, nil
		}
	}

	fields, err := s.repo.FormField.List(ctx, true)
	if err != nil {
		s.logger.Error("list form fields failed", zap.Error(err))
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrFormNotConfigured
	}

	resp := &dto.FormDefinitionResponse{Fields: toFieldResponses(fields)}
	for _, sec := range form.Sections(fields) {
		resp.Sections = append(resp.Sections, dto.FormSectionResponse{
			Name:   sec.Name,
			Fields: toFieldResponses(sec.Fields),
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, activeFieldsCacheKey, resp, activeFieldsCacheTTL); err != nil {
			s.logger.Warn("write form cache failed", zap.Error(err))
		}
	}
	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *formFieldService) List(ctx context.Context) ([]dto.FormFieldResponse, error) {
	fields, err := s.repo.FormField.List(ctx, false)
	if err != nil {
		s.logger.Error("list form fields failed", zap.Error(err))
		return nil, err
	}
	return toFieldResponses(fields), nil
}

// ────────────────────── Create ──────────────────────

func (s *formFieldService) Create(ctx context.Context, req *dto.CreateFormFieldRequest, callerID string) (*dto.FormFieldResponse, error) {
	field := &model.FormField{
		Name:         req.Name,
		Label:        req.Label,
		FieldType:    model.FieldType(req.FieldType),
		IsRequired:   req.IsRequired,
		IsVisible:    true,
		Options:      req.Options,
		Placeholder:  req.Placeholder,
		HelpText:     req.HelpText,
		Section:      req.Section,
		DisplayOrder: req.DisplayOrder,
	}
	if req.IsVisible != nil {
		field.IsVisible = *req.IsVisible
	}
	if field.Section == "" {
		field.Section = defaultSection
	}
	if err := checkFieldDefinition(field); err != nil {
		return nil, err
	}

	if _, err := s.repo.FormField.GetByName(ctx, field.Name); err == nil {
		return nil, ErrFieldNameTaken
	} else if !isNotFound(err) {
		s.logger.Error("lookup form field failed", zap.String("name", field.Name), zap.Error(err))
		return nil, err
	}

	field.CreatedBy = strPtr(callerID)
	field.UpdatedBy = strPtr(callerID)

	if err := s.repo.FormField.Create(ctx, field); err != nil {
		if isDuplicate(err) {
			return nil, ErrFieldNameTaken
		}
		s.logger.Error("create form field failed", zap.String("name", field.Name), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx)
	resp := toFieldResponse(field)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *formFieldService) Update(ctx context.Context, id string, req *dto.UpdateFormFieldRequest, callerID string) (*dto.FormFieldResponse, error) {
	field, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != field.Name {
		other, err := s.repo.FormField.GetByName(ctx, *req.Name)
		if err == nil && other.FieldID != field.FieldID {
			return nil, ErrFieldNameTaken
		}
		if err != nil && !isNotFound(err) {
			s.logger.Error("lookup form field failed", zap.String("name", *req.Name), zap.Error(err))
			return nil, err
		}
		field.Name = *req.Name
	}
	if req.Label != nil {
		field.Label = *req.Label
	}
	if req.FieldType != nil {
		field.FieldType = model.FieldType(*req.FieldType)
		if field.FieldType != model.FieldTypeSelect && req.Options == nil {
			field.Options = nil
		}
	}
	if req.IsRequired != nil {
		field.IsRequired = *req.IsRequired
	}
	if req.IsVisible != nil {
		field.IsVisible = *req.IsVisible
	}
	if req.Options != nil {
		field.Options = *req.Options
	}
	if req.Placeholder != nil {
		field.Placeholder = *req.Placeholder
	}
	if req.HelpText != nil {
		field.HelpText = *req.HelpText
	}
	if req.Section != nil {
		field.Section = *req.Section
	}
	if req.DisplayOrder != nil {
		field.DisplayOrder = *req.DisplayOrder
	}
	if err := checkFieldDefinition(field); err != nil {
		return nil, err
	}
	field.UpdatedBy = strPtr(callerID)

	if err := s.repo.FormField.Update(ctx, field); err != nil {
		if isDuplicate(err) {
			return nil, ErrFieldNameTaken
		}
		s.logger.Error("update form field failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx)
	resp := toFieldResponse(field)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *formFieldService) Delete(ctx context.Context, id string) error {
	if err := s.repo.FormField.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrFieldNotFound
		}
		s.logger.Error("delete form field failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ────────────────────── Reorder ──────────────────────

func (s *formFieldService) Reorder(ctx context.Context, req *dto.ReorderFormFieldsRequest) ([]dto.FormFieldResponse, error) {
	err := s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		for _, item := range req.Items {
			if err := tx.FormField.UpdateOrder(ctx, item.ID, item.DisplayOrder); err != nil {
				if isNotFound(err) {
					return ErrFieldNotFound.WithDetails(item.ID)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.KindOf(err) == errors.KindUnexpected {
			s.logger.Error("reorder form fields failed", zap.Error(err))
		}
		return nil, err
	}

	s.invalidate(ctx)
	return s.List(ctx)
}

func (s *formFieldService) load(ctx context.Context, id string) (*model.FormField, error) {
	field, err := s.repo.FormField.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrFieldNotFound
		}
		s.logger.Error("get form field failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return field, nil
}

func (s *formFieldService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, activeFieldsCacheKey); err != nil {
		s.logger.Warn("invalidate form cache failed", zap.Error(err))
	}
}

// checkFieldDefinition options belong to select fields only, and select
// fields need at least one. Reserved payload keys cannot be field names.
func checkFieldDefinition(f *model.FormField) error {
	if !f.FieldType.Valid() {
		return ErrFieldInvalid.WithDetails("unknown field type " + string(f.FieldType))
	}
	if f.Name == form.KeyEmail || f.Name == form.KeyBranchID {
		return ErrFieldInvalid.WithDetails(f.Name + " is a reserved name")
	}
	if f.FieldType == model.FieldTypeSelect && len(f.Options) == 0 {
		return ErrFieldInvalid.WithDetails("select fields need at least one option")
	}
	if f.FieldType != model.FieldTypeSelect && len(f.Options) > 0 {
		return ErrFieldInvalid.WithDetails("options are only allowed on select fields")
	}
	return nil
}

func toFieldResponse(f *model.FormField) dto.FormFieldResponse {
	return dto.FormFieldResponse{
		ID:           f.FieldID,
		Name:         f.Name,
		Label:        f.Label,
		FieldType:    string(f.FieldType),
		IsRequired:   f.IsRequired,
		IsVisible:    f.IsVisible,
		Options:      f.Options,
		Placeholder:  f.Placeholder,
		HelpText:     f.HelpText,
		Section:      f.Section,
		DisplayOrder: f.DisplayOrder,
	}
}

func toFieldResponses(fields []model.FormField) []dto.FormFieldResponse {
	result := make([]dto.FormFieldResponse, 0, len(fields))
	for i := range fields {
		result = append(result, toFieldResponse(&fields[i]))
	}
	return result
}
