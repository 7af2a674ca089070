package model

// AboutSection about page text of a branch — about_sections (1:1 with branch)
type AboutSection struct {
	BranchID string `gorm:"type:uuid;primaryKey"       json:"branch_id"`
	Title    string `gorm:"type:varchar(200);not null" json:"title"`
	Body     string `gorm:"type:text"                  json:"body"`
	Mission  string `gorm:"type:text"                  json:"mission"`
	Vision   string `gorm:"type:text"                  json:"vision"`
	BaseModel
}

// TableName table name
func (AboutSection) TableName() string { return "about_sections" }

// Facility about page facility — about_facilities, replaced as a whole
type Facility struct {
	FacilityID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"facility_id"`
	BranchID     string `gorm:"type:uuid;not null;index"                       json:"branch_id"`
	Name         string `gorm:"type:varchar(150);not null"                     json:"name"`
	Description  string `gorm:"type:varchar(500)"                              json:"description"`
	Icon         string `gorm:"type:varchar(100)"                              json:"icon"`
	DisplayOrder int    `gorm:"not null;default:0"                             json:"display_order"`
}

// TableName table name
func (Facility) TableName() string { return "about_facilities" }

// TimelineEvent about page milestone — about_timeline, replaced as a whole
type TimelineEvent struct {
	EventID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	BranchID     string `gorm:"type:uuid;not null;index"                       json:"branch_id"`
	Year         string `gorm:"type:varchar(10);not null"                      json:"year"`
	Title        string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description  string `gorm:"type:varchar(500)"                              json:"description"`
	DisplayOrder int    `gorm:"not null;default:0"                             json:"display_order"`
}

// TableName table name
func (TimelineEvent) TableName() string { return "about_timeline" }
