package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"school-admissions/backend/config"
	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/form"
	"school-admissions/backend/internal/model"
	"school-admissions/backend/internal/repository"
	"school-admissions/backend/pkg/errors"
)

var (
	ErrApplicationNotFound  = errors.New(errors.KindNotFound, 14001, "application not found")
	ErrApplicationExists    = errors.New(errors.KindConflict, 14002, "an application already exists for this email")
	ErrMissingRequired      = errors.New(errors.KindValidation, 14003, "required fields are missing")
	ErrUnknownFields        = errors.New(errors.KindValidation, 14004, "payload contains unknown fields")
	ErrInvalidFieldValues   = errors.New(errors.KindValidation, 14005, "payload contains invalid values")
	ErrApplicationForbidden = errors.New(errors.KindForbidden, 14006, "you may only access your own application")
	ErrInvalidStatus        = errors.New(errors.KindValidation, 14007, "unknown application status")
	ErrInvalidEmail         = errors.New(errors.KindValidation, 14008, "a valid applicant email is required")
)

// ApplicationService admission workflow
type ApplicationService interface {
	// Submit stores one application per email with status submitted
	Submit(ctx context.Context, caller Principal, payload map[string]interface{}) (*dto.SubmitApplicationResponse, error)
	// GetStatus returns the grouped snapshot and status history; empty email means the caller's own
	GetStatus(ctx context.Context, caller Principal, email string) (*dto.ApplicationStatusResponse, error)
	// UpdateStatus overwrites status and notes; approval materializes a student once
	UpdateStatus(ctx context.Context, caller Principal, req *dto.UpdateApplicationStatusRequest) (*dto.UpdateApplicationStatusResponse, error)
	List(ctx context.Context, req *dto.ApplicationListRequest) ([]dto.ApplicationSummary, int64, error)
	Delete(ctx context.Context, id string) error
	// MigrateApproved materializes students missing for approved applications
	MigrateApproved(ctx context.Context) (*dto.MigrateApprovedResponse, error)
}

// idAttempts bounds regeneration after an application id collision
const idAttempts = 3

type applicationService struct {
	cfg      *config.Config
	repo     *repository.Repository
	notifier StatusNotifier
	logger   *zap.Logger
	now      func() time.Time
	newID    func(time.Time) string
}

// NewApplicationService creates an ApplicationService; notifier may be nil
func NewApplicationService(cfg *config.Config, repo *repository.Repository, notifier StatusNotifier, logger *zap.Logger) ApplicationService {
	return &applicationService{
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    form.NewApplicationID,
	}
}

// ────────────────────── Submit ──────────────────────

func (s *applicationService) Submit(ctx context.Context, caller Principal, payload map[string]interface{}) (*dto.SubmitApplicationResponse, error) {
	email, err := s.resolveEmail(caller, payload)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Application.GetByEmail(ctx, email); err == nil {
		return nil, ErrApplicationExists
	} else if !isNotFound(err) {
		s.logger.Error("lookup application failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	branch, err := s.resolveBranch(ctx, payload)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.FormField.List(ctx, true)
	if err != nil {
		s.logger.Error("list form fields failed", zap.Error(err))
		return nil, err
	}
	if len(active) == 0 {
		return nil, ErrFormNotConfigured
	}

	values, invalid := form.Normalize(payload)
	if len(invalid) > 0 {
		return nil, ErrInvalidFieldValues.WithDetails("expected text values for " + strings.Join(invalid, ", "))
	}
	if missing := form.MissingRequired(values); len(missing) > 0 {
		return nil, ErrMissingRequired.WithDetails(strings.Join(missing, ", "))
	}

	app := &model.Application{}
	mapped := form.Apply(app, values, active)
	if len(mapped.Unknown) > 0 {
		return nil, ErrUnknownFields.WithDetails(strings.Join(mapped.Unknown, ", "))
	}
	if problems := form.CheckValues(values, active); len(problems) > 0 {
		return nil, ErrInvalidFieldValues.WithDetails(describeProblems(problems))
	}

	now := s.now()
	app.StudentNumber = form.NewStudentID(now)
	app.BranchID = branch.BranchID
	app.Email = email
	app.AcademicYear = s.cfg.Admission.AcademicYearFor(now)
	app.Status = model.StatusSubmitted
	app.SubmittedAt = now
	app.UpdatedAt = now
	if len(mapped.Extra) > 0 {
		app.ExtraFields = datatypes.JSONMap(mapped.Extra)
	}

	if err := s.create(ctx, caller, app); err != nil {
		return nil, err
	}

	s.logger.Info("application submitted",
		zap.String("application_id", app.ApplicationID),
		zap.String("branch_id", app.BranchID),
	)

	return &dto.SubmitApplicationResponse{
		ApplicationID: app.ApplicationID,
		StudentID:     app.StudentNumber,
	}, nil
}

// create inserts app with its first status change. A unique violation is a
// conflict when the email is taken, otherwise an id collision and retried
// with a fresh id.
func (s *applicationService) create(ctx context.Context, caller Principal, app *model.Application) error {
	var err error
	for attempt := 1; attempt <= idAttempts; attempt++ {
		app.ApplicationID = s.newID(app.SubmittedAt)
		err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
			if err := tx.Application.Create(ctx, app); err != nil {
				return err
			}
			return tx.Application.AppendStatusChange(ctx, &model.ApplicationStatusChange{
				ApplicationID: app.ApplicationID,
				ToStatus:      model.StatusSubmitted,
				Comment:       "Application submitted",
				ChangedBy:     strPtr(caller.UserID),
				ChangedAt:     app.SubmittedAt,
			})
		})
		if err == nil || !isDuplicate(err) {
			break
		}
		if _, lookupErr := s.repo.Application.GetByEmail(ctx, app.Email); lookupErr == nil {
			return ErrApplicationExists
		}
		s.logger.Warn("application id collision",
			zap.String("application_id", app.ApplicationID),
			zap.Int("attempt", attempt),
		)
	}
	if err != nil {
		s.logger.Error("create application failed", zap.String("email", app.Email), zap.Error(err))
		return err
	}
	return nil
}

// resolveEmail students submit for themselves; admins may submit on behalf
func (s *applicationService) resolveEmail(caller Principal, payload map[string]interface{}) (string, error) {
	email := normalizeEmail(caller.Email)
	if raw, present := payload[form.KeyEmail]; present && raw != nil {
		str, ok := raw.(string)
		if !ok {
			return "", ErrInvalidEmail
		}
		if strings.TrimSpace(str) != "" {
			email = normalizeEmail(str)
		}
	}
	if !form.ValidEmail(email) {
		return "", ErrInvalidEmail
	}
	if !caller.IsAdmin() && email != normalizeEmail(caller.Email) {
		return "", ErrApplicationForbidden
	}
	return email, nil
}

func (s *applicationService) resolveBranch(ctx context.Context, payload map[string]interface{}) (*model.Branch, error) {
	var (
		branch *model.Branch
		err    error
	)
	raw, present := payload[form.KeyBranchID]
	id, isString := raw.(string)
	id = strings.TrimSpace(id)
	if present && raw != nil && !isString {
		return nil, ErrBranchNotFound
	}
	if id != "" {
		if _, perr := uuid.Parse(id); perr != nil {
			return nil, ErrBranchNotFound
		}
		branch, err = s.repo.Branch.GetByID(ctx, id)
		if isNotFound(err) {
			return nil, ErrBranchNotFound
		}
	} else {
		branch, err = s.repo.Branch.GetDefault(ctx)
		if isNotFound(err) {
			return nil, ErrNoDefaultBranch
		}
	}
	if err != nil {
		s.logger.Error("resolve branch failed", zap.Error(err))
		return nil, err
	}
	if !branch.IsEnabled {
		return nil, ErrBranchDisabled
	}
	return branch, nil
}

func describeProblems(problems map[string]string) string {
	keys := make([]string, 0, len(problems))
	for k := range problems {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+problems[k])
	}
	return strings.Join(parts, "; ")
}

// ────────────────────── GetStatus ──────────────────────

func (s *applicationService) GetStatus(ctx context.Context, caller Principal, email string) (*dto.ApplicationStatusResponse, error) {
	email = normalizeEmail(email)
	if email == "" {
		email = normalizeEmail(caller.Email)
	}
	if !caller.IsAdmin() && email != normalizeEmail(caller.Email) {
		return nil, ErrApplicationForbidden
	}

	app, err := s.loadByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	changes, err := s.repo.Application.ListStatusChanges(ctx, app.ApplicationID)
	if err != nil {
		s.logger.Error("list status changes failed", zap.String("application_id", app.ApplicationID), zap.Error(err))
		return nil, err
	}

	return toStatusResponse(app, changes), nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *applicationService) UpdateStatus(ctx context.Context, caller Principal, req *dto.UpdateApplicationStatusRequest) (*dto.UpdateApplicationStatusResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrApplicationForbidden
	}
	status := model.ApplicationStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	app, err := s.loadByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	notes := strings.TrimSpace(req.Comment)
	if notes == "" {
		notes = fmt.Sprintf("Status changed to %s", status)
	}

	now := s.now()
	resp := &dto.UpdateApplicationStatusResponse{
		ApplicationID: app.ApplicationID,
		Status:        string(status),
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Application.UpdateStatus(ctx, app.ApplicationID, status, notes, now); err != nil {
			return err
		}
		if err := tx.Application.AppendStatusChange(ctx, &model.ApplicationStatusChange{
			ApplicationID: app.ApplicationID,
			FromStatus:    app.Status,
			ToStatus:      status,
			Comment:       notes,
			ChangedBy:     strPtr(caller.UserID),
			ChangedAt:     now,
		}); err != nil {
			return err
		}

		if status != model.StatusApproved {
			return nil
		}
		student := s.materialize(app, now)
		created, err := tx.Student.CreateIfAbsent(ctx, student)
		if err != nil {
			return err
		}
		resp.StudentCreated = created
		if created {
			resp.StudentID = student.StudentID
		}
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("update application status failed",
			zap.String("application_id", app.ApplicationID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("application status changed",
		zap.String("application_id", app.ApplicationID),
		zap.String("from", string(app.Status)),
		zap.String("to", string(status)),
		zap.Bool("student_created", resp.StudentCreated),
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyStatusChanged(ctx, app.Email, app.FullName(), app.ApplicationID, string(status), notes); err != nil {
			s.logger.Warn("status notification failed", zap.String("application_id", app.ApplicationID), zap.Error(err))
		}
	}

	return resp, nil
}

// materialize copies the enrollment subset of an application into a student
func (s *applicationService) materialize(app *model.Application, now time.Time) *model.Student {
	studentID := app.StudentNumber
	if studentID == "" {
		studentID = form.NewStudentID(now)
	}
	year := app.AcademicYear
	if year == "" {
		year = s.cfg.Admission.AcademicYearFor(now)
	}

	return &model.Student{
		StudentID:      studentID,
		ApplicationID:  app.ApplicationID,
		BranchID:       app.BranchID,
		Email:          app.Email,
		FirstName:      app.FirstName,
		MiddleName:     app.MiddleName,
		LastName:       app.LastName,
		DateOfBirth:    app.DateOfBirth,
		Gender:         app.Gender,
		Nationality:    app.Nationality,
		BloodGroup:     app.BloodGroup,
		Phone:          app.Phone,
		Address:        app.Address,
		City:           app.City,
		State:          app.State,
		PostalCode:     app.PostalCode,
		FatherName:     app.FatherName,
		FatherPhone:    app.FatherPhone,
		FatherEmail:    app.FatherEmail,
		MotherName:     app.MotherName,
		MotherPhone:    app.MotherPhone,
		MotherEmail:    app.MotherEmail,
		GuardianName:   app.GuardianName,
		GuardianPhone:  app.GuardianPhone,
		CurrentGrade:   app.ApplyingForGrade,
		PreviousSchool: app.PreviousSchool,
		PhotoURL:       app.PhotoURL,
		EnrollmentDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		AcademicYear:   year,
		Status:         model.StudentStatusActive,
	}
}

// ────────────────────── List ──────────────────────

func (s *applicationService) List(ctx context.Context, req *dto.ApplicationListRequest) ([]dto.ApplicationSummary, int64, error) {
	apps, total, err := s.repo.Application.List(ctx, repository.ApplicationFilter{
		BranchID: req.BranchID,
		Status:   model.ApplicationStatus(req.Status),
		Search:   req.Search,
		Offset:   req.GetOffset(),
		Limit:    req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("list applications failed", zap.String("branch_id", req.BranchID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ApplicationSummary, 0, len(apps))
	for i := range apps {
		result = append(result, toApplicationSummary(&apps[i]))
	}
	return result, total, nil
}

// ────────────────────── Delete ──────────────────────

func (s *applicationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Application.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrApplicationNotFound
		}
		s.logger.Error("delete application failed", zap.String("application_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("application deleted", zap.String("application_id", id))
	return nil
}

// ────────────────────── MigrateApproved ──────────────────────

func (s *applicationService) MigrateApproved(ctx context.Context) (*dto.MigrateApprovedResponse, error) {
	apps, err := s.repo.Application.ListApprovedWithoutStudent(ctx)
	if err != nil {
		s.logger.Error("scan approved applications failed", zap.Error(err))
		return nil, err
	}

	report := &dto.MigrateApprovedResponse{Scanned: len(apps)}
	now := s.now()

	for i := range apps {
		app := &apps[i]
		created, err := s.repo.Student.CreateIfAbsent(ctx, s.materialize(app, now))
		if err != nil {
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, app.ApplicationID)
			s.logger.Error("materialize student failed",
				zap.String("application_id", app.ApplicationID),
				zap.Error(err),
			)
			continue
		}
		if created {
			report.Created++
		}
	}

	s.logger.Info("migrate approved applications finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("created", report.Created),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *applicationService) loadByEmail(ctx context.Context, email string) (*model.Application, error) {
	app, err := s.repo.Application.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("get application failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return app, nil
}

func toApplicationSummary(a *model.Application) dto.ApplicationSummary {
	return dto.ApplicationSummary{
		ApplicationID:    a.ApplicationID,
		StudentNumber:    a.StudentNumber,
		BranchID:         a.BranchID,
		Email:            a.Email,
		FullName:         a.FullName(),
		ApplyingForGrade: a.ApplyingForGrade,
		Status:           string(a.Status),
		SubmittedAt:      formatTime(a.SubmittedAt),
		UpdatedAt:        formatTime(a.UpdatedAt),
	}
}

func toStatusResponse(a *model.Application, changes []model.ApplicationStatusChange) *dto.ApplicationStatusResponse {
	snap := form.Snapshot(a)
	resp := &dto.ApplicationStatusResponse{
		ApplicationID: a.ApplicationID,
		StudentNumber: a.StudentNumber,
		BranchID:      a.BranchID,
		Email:         a.Email,
		Status:        string(a.Status),
		Notes:         a.Notes,
		AcademicYear:  a.AcademicYear,
		SubmittedAt:   formatTime(a.SubmittedAt),
		UpdatedAt:     formatTime(a.UpdatedAt),
		Personal:      snap[form.GroupPersonal],
		Contact:       snap[form.GroupContact],
		Parent:        snap[form.GroupParent],
		Academic:      snap[form.GroupAcademic],
		Documents:     snap[form.GroupDocuments],
		ExtraFields:   a.ExtraFields,
		StatusHistory: make([]dto.StatusChangeResponse, 0, len(changes)),
	}
	for _, c := range changes {
		resp.StatusHistory = append(resp.StatusHistory, dto.StatusChangeResponse{
			FromStatus: string(c.FromStatus),
			ToStatus:   string(c.ToStatus),
			Comment:    c.Comment,
			ChangedAt:  formatTime(c.ChangedAt),
		})
	}
	return resp
}
