package dto

// ── admissions ──

// SubmitApplicationResponse identifiers generated on submission
type SubmitApplicationResponse struct {
	ApplicationID string `json:"applicationId"`
	StudentID     string `json:"studentId"`
}

// ApplicationStatusRequest status lookup; empty email means the caller's own
type ApplicationStatusRequest struct {
	Email string `form:"email" binding:"omitempty,email"`
}

// UpdateApplicationStatusRequest admin status change
type UpdateApplicationStatusRequest struct {
	Email   string `json:"email"   binding:"required,email"`
	Status  string `json:"status"  binding:"required,oneof=submitted pending under_review approved rejected"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

// ApplicationListRequest admin list query
type ApplicationListRequest struct {
	PaginationRequest
	BranchID string `form:"branch_id" binding:"required,uuid"`
	Status   string `form:"status"    binding:"omitempty,oneof=submitted pending under_review approved rejected"`
	Search   string `form:"search"    binding:"omitempty,max=100"`
}

// ApplicationExportRequest export query, same filters without paging
type ApplicationExportRequest struct {
	BranchID string `form:"branch_id" binding:"required,uuid"`
	Status   string `form:"status"    binding:"omitempty,oneof=submitted pending under_review approved rejected"`
	Search   string `form:"search"    binding:"omitempty,max=100"`
}

// ApplicationSummary list row
type ApplicationSummary struct {
	ApplicationID    string `json:"application_id"`
	StudentNumber    string `json:"student_number"`
	BranchID         string `json:"branch_id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	ApplyingForGrade string `json:"applying_for_grade"`
	Status           string `json:"status"`
	SubmittedAt      string `json:"submitted_at"`
	UpdatedAt        string `json:"updated_at"`
}

// StatusChangeResponse one status history entry
type StatusChangeResponse struct {
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status"`
	Comment    string `json:"comment,omitempty"`
	ChangedAt  string `json:"changed_at"`
}

// ApplicationStatusResponse full application snapshot
type ApplicationStatusResponse struct {
	ApplicationID string                 `json:"application_id"`
	StudentNumber string                 `json:"student_number"`
	BranchID      string                 `json:"branch_id"`
	Email         string                 `json:"email"`
	Status        string                 `json:"status"`
	Notes         string                 `json:"notes,omitempty"`
	AcademicYear  string                 `json:"academic_year"`
	SubmittedAt   string                 `json:"submitted_at"`
	UpdatedAt     string                 `json:"updated_at"`
	Personal      map[string]string      `json:"personal"`
	Contact       map[string]string      `json:"contact"`
	Parent        map[string]string      `json:"parent"`
	Academic      map[string]string      `json:"academic"`
	Documents     map[string]string      `json:"documents"`
	ExtraFields   map[string]interface{} `json:"extra_fields,omitempty"`
	StatusHistory []StatusChangeResponse `json:"status_history"`
}

// UpdateApplicationStatusResponse outcome of a status change
type UpdateApplicationStatusResponse struct {
	ApplicationID  string `json:"application_id"`
	Status         string `json:"status"`
	StudentCreated bool   `json:"student_created"`
	StudentID      string `json:"student_id,omitempty"`
}

// MigrateApprovedResponse maintenance sweep report
type MigrateApprovedResponse struct {
	Scanned   int      `json:"scanned"`
	Created   int      `json:"created"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}
