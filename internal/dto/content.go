package dto

// ── news ──

// NewsRequest create or replace a news post
type NewsRequest struct {
	Title       string `json:"title"        binding:"required,max=200"`
	Summary     string `json:"summary"      binding:"omitempty,max=500"`
	Body        string `json:"body"`
	ImageURL    string `json:"image_url"    binding:"omitempty,url,max=500"`
	IsPublished bool   `json:"is_published"`
}

// NewsResponse news post
type NewsResponse struct {
	ID          string `json:"id"`
	BranchID    string `json:"branch_id"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	Body        string `json:"body,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	IsPublished bool   `json:"is_published"`
	PublishedAt string `json:"published_at,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ── academics ──

// AcademicProgramRequest create or replace a program
type AcademicProgramRequest struct {
	Title        string `json:"title"         binding:"required,max=200"`
	Level        string `json:"level"         binding:"omitempty,max=100"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"     binding:"omitempty,url,max=500"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder int    `json:"display_order" binding:"omitempty,min=0"`
}

// AcademicProgramResponse program
type AcademicProgramResponse struct {
	ID           string `json:"id"`
	BranchID     string `json:"branch_id"`
	Title        string `json:"title"`
	Level        string `json:"level,omitempty"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
	UpdatedAt    string `json:"updated_at"`
}

// ── carousel ──

// CarouselSlideRequest create or replace a slide
type CarouselSlideRequest struct {
	Title        string `json:"title"         binding:"omitempty,max=200"`
	Subtitle     string `json:"subtitle"      binding:"omitempty,max=300"`
	ImageURL     string `json:"image_url"     binding:"required,url,max=500"`
	LinkURL      string `json:"link_url"      binding:"omitempty,max=500"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder int    `json:"display_order" binding:"omitempty,min=0"`
}

// CarouselSlideResponse slide
type CarouselSlideResponse struct {
	ID           string `json:"id"`
	BranchID     string `json:"branch_id"`
	Title        string `json:"title,omitempty"`
	Subtitle     string `json:"subtitle,omitempty"`
	ImageURL     string `json:"image_url"`
	LinkURL      string `json:"link_url,omitempty"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
	UpdatedAt    string `json:"updated_at"`
}

// ── gallery ──

// GalleryCategoryRequest create or replace an album
type GalleryCategoryRequest struct {
	Name         string   `json:"name"          binding:"required,max=150"`
	Description  string   `json:"description"   binding:"omitempty,max=500"`
	CoverURL     string   `json:"cover_url"     binding:"omitempty,url,max=500"`
	ImageURLs    []string `json:"image_urls"    binding:"omitempty,max=500,dive,url,max=500"`
	IsVisible    *bool    `json:"is_visible"`
	DisplayOrder int      `json:"display_order" binding:"omitempty,min=0"`
}

// GalleryCategoryResponse album
type GalleryCategoryResponse struct {
	ID           string   `json:"id"`
	BranchID     string   `json:"branch_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	CoverURL     string   `json:"cover_url,omitempty"`
	ImageURLs    []string `json:"image_urls"`
	IsVisible    bool     `json:"is_visible"`
	DisplayOrder int      `json:"display_order"`
	UpdatedAt    string   `json:"updated_at"`
}

// ── careers ──

// CareerRequest create or replace a job opening
type CareerRequest struct {
	Title          string `json:"title"           binding:"required,max=200"`
	Department     string `json:"department"      binding:"omitempty,max=100"`
	EmploymentType string `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
	Location       string `json:"location"        binding:"omitempty,max=150"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	IsOpen         *bool  `json:"is_open"`
	ClosingDate    string `json:"closing_date"    binding:"omitempty,datetime=2006-01-02"`
}

// CareerResponse job opening
type CareerResponse struct {
	ID             string `json:"id"`
	BranchID       string `json:"branch_id"`
	Title          string `json:"title"`
	Department     string `json:"department,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	Location       string `json:"location,omitempty"`
	Description    string `json:"description,omitempty"`
	Requirements   string `json:"requirements,omitempty"`
	IsOpen         bool   `json:"is_open"`
	ClosingDate    string `json:"closing_date,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// ── about ──

// FacilityInput one facility of the about page
type FacilityInput struct {
	Name        string `json:"name"        binding:"required,max=150"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Icon        string `json:"icon"        binding:"omitempty,max=100"`
}

// TimelineInput one milestone of the about page
type TimelineInput struct {
	Year        string `json:"year"        binding:"required,max=10"`
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// ReplaceAboutRequest full about page; lists replace the stored ones in order
type ReplaceAboutRequest struct {
	Title      string          `json:"title"      binding:"required,max=200"`
	Body       string          `json:"body"`
	Mission    string          `json:"mission"`
	Vision     string          `json:"vision"`
	Facilities []FacilityInput `json:"facilities" binding:"omitempty,max=100,dive"`
	Timeline   []TimelineInput `json:"timeline"   binding:"omitempty,max=100,dive"`
}

// AboutResponse about page
type AboutResponse struct {
	BranchID   string          `json:"branch_id"`
	Title      string          `json:"title"`
	Body       string          `json:"body,omitempty"`
	Mission    string          `json:"mission,omitempty"`
	Vision     string          `json:"vision,omitempty"`
	Facilities []FacilityInput `json:"facilities"`
	Timeline   []TimelineInput `json:"timeline"`
	UpdatedAt  string          `json:"updated_at"`
}

// ── uploads ──

// UploadResponse stored file
type UploadResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
