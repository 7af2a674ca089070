package model

import (
	"time"

	"gorm.io/datatypes"
)

// ── branch-scoped content records ──

// News news post — news
type News struct {
	NewsID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"news_id"`
	BranchID    string     `gorm:"type:uuid;not null;index"                       json:"branch_id"`
	Title       string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Summary     string     `gorm:"type:varchar(500)"                              json:"summary"`
	Body        string     `gorm:"type:text"                                      json:"body"`
	ImageURL    string     `gorm:"type:varchar(500)"                              json:"image_url"`
	IsPublished bool       `gorm:"not null;default:false"                         json:"is_published"`
	PublishedAt *time.Time `                                                      json:"published_at,omitempty"`
	SoftDeleteModel
}

// TableName table name
func (News) TableName() string { return "news" }

// AcademicProgram academics page entry — academic_programs
type AcademicProgram struct {
	ProgramID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"program_id"`
	BranchID     string `gorm:"type:uuid;not null;index"                       json:"branch_id"`
	Title        string `gorm:"type:varchar(200);not null"                     json:"title"`
	Level        string `gorm:"type:varchar(100)"                              json:"level"`
	Description  string `gorm:"type:text"                                      json:"description"`
	ImageURL     string `gorm:"type:varchar(500)"                              json:"image_url"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	DisplayOrder int    `gorm:"not null;default:0"                             json:"display_order"`
	SoftDeleteModel
}

// TableName table name
func (AcademicProgram) TableName() string { return "academic_programs" }

// CarouselSlide home page slide — carousel_slides
type CarouselSlide struct {
	SlideID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slide_id"`
	BranchID     string `gorm:"type:uuid;not null;index"                       json:"branch_id"`
	Title        string `gorm:"type:varchar(200)"                              json:"title"`
	Subtitle     string `gorm:"type:varchar(300)"                              json:"subtitle"`
	ImageURL     string `gorm:"type:varchar(500);not null"                     json:"image_url"`
	LinkURL      string `gorm:"type:varchar(500)"                              json:"link_url"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	DisplayOrder int    `gorm:"not null;default:0"                             json:"display_order"`
	SoftDeleteModel
}

// TableName table name
func (CarouselSlide) TableName() string { return "carousel_slides" }

// GalleryCategory photo album — gallery_categories
type GalleryCategory struct {
	CategoryID   string                      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"category_id"`
	BranchID     string                      `gorm:"type:uuid;not null;index"                       json:"branch_id"`
	Name         string                      `gorm:"type:varchar(150);not null"                     json:"name"`
	Description  string                      `gorm:"type:varchar(500)"                              json:"description"`
	CoverURL     string                      `gorm:"type:varchar(500)"                              json:"cover_url"`
	ImageURLs    datatypes.JSONSlice[string] `gorm:"type:jsonb"                                     json:"image_urls"`
	IsVisible    bool                        `gorm:"not null;default:true"                          json:"is_visible"`
	DisplayOrder int                         `gorm:"not null;default:0"                             json:"display_order"`
	SoftDeleteModel
}

// TableName table name
func (GalleryCategory) TableName() string { return "gallery_categories" }

// Career job opening — careers
type Career struct {
	CareerID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"career_id"`
	BranchID       string     `gorm:"type:uuid;not null;index"                       json:"branch_id"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Department     string     `gorm:"type:varchar(100)"                              json:"department"`
	EmploymentType string     `gorm:"type:varchar(30)"                               json:"employment_type"`
	Location       string     `gorm:"type:varchar(150)"                              json:"location"`
	Description    string     `gorm:"type:text"                                      json:"description"`
	Requirements   string     `gorm:"type:text"                                      json:"requirements"`
	IsOpen         bool       `gorm:"not null;default:true"                          json:"is_open"`
	ClosingDate    *time.Time `gorm:"type:date"                                      json:"closing_date,omitempty"`
	SoftDeleteModel
}

// TableName table name
func (Career) TableName() string { return "careers" }
