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

var ErrStudentNotFound = errors.New(errors.KindNotFound, 15001, "student not found")

// StudentService materialized students; edits never touch the source application
type StudentService interface {
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService creates a StudentService
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.Student.List(ctx, repository.StudentFilter{
		BranchID: req.BranchID,
		Search:   req.Search,
		Offset:   req.GetOffset(),
		Limit:    req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("list students failed", zap.String("branch_id", req.BranchID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i]))
	}
	return result, total, nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&student.FirstName, req.FirstName)
	assign(&student.MiddleName, req.MiddleName)
	assign(&student.LastName, req.LastName)
	assign(&student.Phone, req.Phone)
	assign(&student.Address, req.Address)
	assign(&student.City, req.City)
	assign(&student.State, req.State)
	assign(&student.PostalCode, req.PostalCode)
	assign(&student.FatherName, req.FatherName)
	assign(&student.FatherPhone, req.FatherPhone)
	assign(&student.FatherEmail, req.FatherEmail)
	assign(&student.MotherName, req.MotherName)
	assign(&student.MotherPhone, req.MotherPhone)
	assign(&student.MotherEmail, req.MotherEmail)
	assign(&student.GuardianName, req.GuardianName)
	assign(&student.GuardianPhone, req.GuardianPhone)
	assign(&student.CurrentGrade, req.CurrentGrade)
	assign(&student.PhotoURL, req.PhotoURL)
	assign(&student.AcademicYear, req.AcademicYear)
	assign(&student.Status, req.Status)
	if req.EnrollmentDate != nil {
		d, err := time.Parse(form.DateLayout, *req.EnrollmentDate)
		if err != nil {
			return nil, ErrInvalidFieldValues.WithDetails("enrollment_date must be YYYY-MM-DD")
		}
		student.EnrollmentDate = d
	}
	student.UpdatedBy = strPtr(callerID)

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("update student failed", zap.String("student_id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *studentService) load(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("get student failed", zap.String("student_id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func toStudentResponse(st *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:             st.StudentID,
		ApplicationID:  st.ApplicationID,
		BranchID:       st.BranchID,
		Email:          st.Email,
		FirstName:      st.FirstName,
		MiddleName:     st.MiddleName,
		LastName:       st.LastName,
		DateOfBirth:    st.DateOfBirth,
		Gender:         st.Gender,
		Nationality:    st.Nationality,
		BloodGroup:     st.BloodGroup,
		Phone:          st.Phone,
		Address:        st.Address,
		City:           st.City,
		State:          st.State,
		PostalCode:     st.PostalCode,
		FatherName:     st.FatherName,
		FatherPhone:    st.FatherPhone,
		FatherEmail:    st.FatherEmail,
		MotherName:     st.MotherName,
		MotherPhone:    st.MotherPhone,
		MotherEmail:    st.MotherEmail,
		GuardianName:   st.GuardianName,
		GuardianPhone:  st.GuardianPhone,
		CurrentGrade:   st.CurrentGrade,
		PreviousSchool: st.PreviousSchool,
		PhotoURL:       st.PhotoURL,
		EnrollmentDate: st.EnrollmentDate.Format(form.DateLayout),
		AcademicYear:   st.AcademicYear,
		Status:         st.Status,
		CreatedAt:      formatTime(st.CreatedAt),
		UpdatedAt:      formatTime(st.UpdatedAt),
	}
}
