package model

import "time"

// StudentStatusActive status of a freshly materialized student
const StudentStatusActive = "active"

// Student enrollment record materialized from an approved application — students.
// Email is unique so an application is materialized at most once.
type Student struct {
	StudentID     string `gorm:"type:varchar(20);primaryKey"            json:"student_id"`
	ApplicationID string `gorm:"type:varchar(20);not null;index"        json:"application_id"`
	BranchID      string `gorm:"type:uuid;not null;index"               json:"branch_id"`
	Email         string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`

	FirstName   string `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName  string `gorm:"type:varchar(100)"          json:"middle_name"`
	LastName    string `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth string `gorm:"type:varchar(10)"           json:"date_of_birth"`
	Gender      string `gorm:"type:varchar(20)"           json:"gender"`
	Nationality string `gorm:"type:varchar(100)"          json:"nationality"`
	BloodGroup  string `gorm:"type:varchar(10)"           json:"blood_group"`

	Phone      string `gorm:"type:varchar(30)"  json:"phone"`
	Address    string `gorm:"type:varchar(255)" json:"address"`
	City       string `gorm:"type:varchar(100)" json:"city"`
	State      string `gorm:"type:varchar(100)" json:"state"`
	PostalCode string `gorm:"type:varchar(20)"  json:"postal_code"`

	FatherName    string `gorm:"type:varchar(150)" json:"father_name"`
	FatherPhone   string `gorm:"type:varchar(30)"  json:"father_phone"`
	FatherEmail   string `gorm:"type:varchar(255)" json:"father_email"`
	MotherName    string `gorm:"type:varchar(150)" json:"mother_name"`
	MotherPhone   string `gorm:"type:varchar(30)"  json:"mother_phone"`
	MotherEmail   string `gorm:"type:varchar(255)" json:"mother_email"`
	GuardianName  string `gorm:"type:varchar(150)" json:"guardian_name"`
	GuardianPhone string `gorm:"type:varchar(30)"  json:"guardian_phone"`

	CurrentGrade   string    `gorm:"type:varchar(50);not null"             json:"current_grade"`
	PreviousSchool string    `gorm:"type:varchar(200)"                     json:"previous_school"`
	PhotoURL       string    `gorm:"type:varchar(500)"                     json:"photo_url"`
	EnrollmentDate time.Time `gorm:"type:date;not null"                    json:"enrollment_date"`
	AcademicYear   string    `gorm:"type:varchar(20)"                      json:"academic_year"`
	Status         string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	BaseModel
}

// TableName table name
func (Student) TableName() string { return "students" }
