package model

// Branch campus partition — branches.
// At most one non-deleted row has is_default = true (partial unique index).
type Branch struct {
	BranchID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"branch_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Address      string `gorm:"type:varchar(255)"                              json:"address,omitempty"`
	City         string `gorm:"type:varchar(100)"                              json:"city,omitempty"`
	Phone        string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Email        string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	IsEnabled    bool   `gorm:"not null;default:true"                          json:"is_enabled"`
	IsDefault    bool   `gorm:"not null;default:false"                         json:"is_default"`
	DisplayOrder int    `gorm:"not null;default:0"                             json:"display_order"`
	SoftDeleteModel
}

// TableName table name
func (Branch) TableName() string { return "branches" }

// BranchContact public contact block of a branch — branch_contacts (1:1)
type BranchContact struct {
	BranchID       string `gorm:"type:uuid;primaryKey" json:"branch_id"`
	Phone          string `gorm:"type:varchar(30)"     json:"phone,omitempty"`
	AlternatePhone string `gorm:"type:varchar(30)"     json:"alternate_phone,omitempty"`
	Email          string `gorm:"type:varchar(255)"    json:"email,omitempty"`
	Address        string `gorm:"type:varchar(255)"    json:"address,omitempty"`
	MapURL         string `gorm:"type:varchar(500)"    json:"map_url,omitempty"`
	OfficeHours    string `gorm:"type:varchar(200)"    json:"office_hours,omitempty"`
	BaseModel
}

// TableName table name
func (BranchContact) TableName() string { return "branch_contacts" }
