package dto

// ── students ──

// StudentListRequest admin list query
type StudentListRequest struct {
	PaginationRequest
	BranchID string `form:"branch_id" binding:"required,uuid"`
	Search   string `form:"search"    binding:"omitempty,max=100"`
}

// UpdateStudentRequest partial student update
type UpdateStudentRequest struct {
	FirstName      *string `json:"first_name"      binding:"omitempty,min=1,max=100"`
	MiddleName     *string `json:"middle_name"     binding:"omitempty,max=100"`
	LastName       *string `json:"last_name"       binding:"omitempty,min=1,max=100"`
	Phone          *string `json:"phone"           binding:"omitempty,max=30"`
	Address        *string `json:"address"         binding:"omitempty,max=255"`
	City           *string `json:"city"            binding:"omitempty,max=100"`
	State          *string `json:"state"           binding:"omitempty,max=100"`
	PostalCode     *string `json:"postal_code"     binding:"omitempty,max=20"`
	FatherName     *string `json:"father_name"     binding:"omitempty,max=150"`
	FatherPhone    *string `json:"father_phone"    binding:"omitempty,max=30"`
	FatherEmail    *string `json:"father_email"    binding:"omitempty,email,max=255"`
	MotherName     *string `json:"mother_name"     binding:"omitempty,max=150"`
	MotherPhone    *string `json:"mother_phone"    binding:"omitempty,max=30"`
	MotherEmail    *string `json:"mother_email"    binding:"omitempty,email,max=255"`
	GuardianName   *string `json:"guardian_name"   binding:"omitempty,max=150"`
	GuardianPhone  *string `json:"guardian_phone"  binding:"omitempty,max=30"`
	CurrentGrade   *string `json:"current_grade"   binding:"omitempty,min=1,max=50"`
	PhotoURL       *string `json:"photo_url"       binding:"omitempty,url,max=500"`
	AcademicYear   *string `json:"academic_year"   binding:"omitempty,max=20"`
	Status         *string `json:"status"          binding:"omitempty,oneof=active inactive graduated withdrawn"`
	EnrollmentDate *string `json:"enrollment_date" binding:"omitempty,datetime=2006-01-02"`
}

// StudentResponse student record
type StudentResponse struct {
	ID             string `json:"id"`
	ApplicationID  string `json:"application_id"`
	BranchID       string `json:"branch_id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	MiddleName     string `json:"middle_name,omitempty"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality,omitempty"`
	BloodGroup     string `json:"blood_group,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	FatherName     string `json:"father_name,omitempty"`
	FatherPhone    string `json:"father_phone,omitempty"`
	FatherEmail    string `json:"father_email,omitempty"`
	MotherName     string `json:"mother_name,omitempty"`
	MotherPhone    string `json:"mother_phone,omitempty"`
	MotherEmail    string `json:"mother_email,omitempty"`
	GuardianName   string `json:"guardian_name,omitempty"`
	GuardianPhone  string `json:"guardian_phone,omitempty"`
	CurrentGrade   string `json:"current_grade"`
	PreviousSchool string `json:"previous_school,omitempty"`
	PhotoURL       string `json:"photo_url,omitempty"`
	EnrollmentDate string `json:"enrollment_date"`
	AcademicYear   string `json:"academic_year"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
