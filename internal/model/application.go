package model

import (
	"time"

	"gorm.io/datatypes"
)

// ApplicationStatus admission workflow state
type ApplicationStatus string

const (
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Application admission submission — applications.
// The dynamic form is flattened into fixed columns; values of configured
// fields without a column land in ExtraFields. One row per email.
type Application struct {
	ApplicationID string `gorm:"type:varchar(20);primaryKey"          json:"application_id"`
	StudentNumber string `gorm:"type:varchar(20);not null"            json:"student_number"`
	BranchID      string `gorm:"type:uuid;not null;index"             json:"branch_id"`
	Email         string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`

	// personal
	FirstName   string `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName  string `gorm:"type:varchar(100)"          json:"middle_name"`
	LastName    string `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth string `gorm:"type:varchar(10);not null"  json:"date_of_birth"`
	Gender      string `gorm:"type:varchar(20);not null"  json:"gender"`
	Nationality string `gorm:"type:varchar(100)"          json:"nationality"`
	Religion    string `gorm:"type:varchar(100)"          json:"religion"`
	BloodGroup  string `gorm:"type:varchar(10)"           json:"blood_group"`

	// contact
	Phone          string `gorm:"type:varchar(30)"  json:"phone"`
	AlternatePhone string `gorm:"type:varchar(30)"  json:"alternate_phone"`
	Address        string `gorm:"type:varchar(255)" json:"address"`
	City           string `gorm:"type:varchar(100)" json:"city"`
	State          string `gorm:"type:varchar(100)" json:"state"`
	PostalCode     string `gorm:"type:varchar(20)"  json:"postal_code"`

	// parent / guardian
	FatherName       string `gorm:"type:varchar(150)" json:"father_name"`
	FatherOccupation string `gorm:"type:varchar(150)" json:"father_occupation"`
	FatherPhone      string `gorm:"type:varchar(30)"  json:"father_phone"`
	FatherEmail      string `gorm:"type:varchar(255)" json:"father_email"`
	MotherName       string `gorm:"type:varchar(150)" json:"mother_name"`
	MotherOccupation string `gorm:"type:varchar(150)" json:"mother_occupation"`
	MotherPhone      string `gorm:"type:varchar(30)"  json:"mother_phone"`
	MotherEmail      string `gorm:"type:varchar(255)" json:"mother_email"`
	GuardianName     string `gorm:"type:varchar(150)" json:"guardian_name"`
	GuardianRelation string `gorm:"type:varchar(50)"  json:"guardian_relation"`
	GuardianPhone    string `gorm:"type:varchar(30)"  json:"guardian_phone"`

	// academic
	ApplyingForGrade   string `gorm:"type:varchar(50);not null" json:"applying_for_grade"`
	PreviousSchool     string `gorm:"type:varchar(200)"         json:"previous_school"`
	PreviousGrade      string `gorm:"type:varchar(50)"          json:"previous_grade"`
	PreviousPercentage string `gorm:"type:varchar(20)"          json:"previous_percentage"`
	AcademicYear       string `gorm:"type:varchar(20)"          json:"academic_year"`

	// documents (URLs returned by the upload endpoint)
	PhotoURL               string `gorm:"type:varchar(500)" json:"photo_url"`
	BirthCertificateURL    string `gorm:"type:varchar(500)" json:"birth_certificate_url"`
	TransferCertificateURL string `gorm:"type:varchar(500)" json:"transfer_certificate_url"`
	ReportCardURL          string `gorm:"type:varchar(500)" json:"report_card_url"`

	ExtraFields datatypes.JSONMap `gorm:"type:jsonb" json:"extra_fields,omitempty"`

	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'submitted';index" json:"status"`
	Notes       string            `gorm:"type:text"                                          json:"notes"`
	SubmittedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"submitted_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"updated_at"`
}

// TableName table name
func (Application) TableName() string { return "applications" }

// FullName first, middle and last name joined
func (a *Application) FullName() string {
	name := a.FirstName
	if a.MiddleName != "" {
		name += " " + a.MiddleName
	}
	if a.LastName != "" {
		name += " " + a.LastName
	}
	return name
}

// ApplicationStatusChange append-only status history — application_status_changes
type ApplicationStatusChange struct {
	ChangeID      string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"change_id"`
	ApplicationID string            `gorm:"type:varchar(20);not null;index"                json:"application_id"`
	FromStatus    ApplicationStatus `gorm:"type:varchar(20)"                               json:"from_status"`
	ToStatus      ApplicationStatus `gorm:"type:varchar(20);not null"                      json:"to_status"`
	Comment       string            `gorm:"type:text"                                      json:"comment"`
	ChangedBy     *string           `gorm:"type:uuid"                                      json:"changed_by,omitempty"`
	ChangedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"changed_at"`
}

// TableName table name
func (ApplicationStatusChange) TableName() string { return "application_status_changes" }
