package dto

// ── branches ──

// CreateBranchRequest create a branch
type CreateBranchRequest struct {
	Name         string `json:"name"          binding:"required,min=2,max=100"`
	Address      string `json:"address"       binding:"omitempty,max=255"`
	City         string `json:"city"          binding:"omitempty,max=100"`
	Phone        string `json:"phone"         binding:"omitempty,max=30"`
	Email        string `json:"email"         binding:"omitempty,email,max=255"`
	IsEnabled    *bool  `json:"is_enabled"`
	DisplayOrder int    `json:"display_order" binding:"omitempty,min=0"`
}

// UpdateBranchRequest partial branch update
type UpdateBranchRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Address      *string `json:"address"       binding:"omitempty,max=255"`
	City         *string `json:"city"          binding:"omitempty,max=100"`
	Phone        *string `json:"phone"         binding:"omitempty,max=30"`
	Email        *string `json:"email"         binding:"omitempty,email,max=255"`
	IsEnabled    *bool   `json:"is_enabled"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,min=0"`
}

// BranchResponse branch
type BranchResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	IsEnabled    bool   `json:"is_enabled"`
	IsDefault    bool   `json:"is_default"`
	DisplayOrder int    `json:"display_order"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// UpsertBranchContactRequest replace a branch's contact block
type UpsertBranchContactRequest struct {
	Phone          string `json:"phone"           binding:"omitempty,max=30"`
	AlternatePhone string `json:"alternate_phone" binding:"omitempty,max=30"`
	Email          string `json:"email"           binding:"omitempty,email,max=255"`
	Address        string `json:"address"         binding:"omitempty,max=255"`
	MapURL         string `json:"map_url"         binding:"omitempty,url,max=500"`
	OfficeHours    string `json:"office_hours"    binding:"omitempty,max=200"`
}

// BranchContactResponse contact block
type BranchContactResponse struct {
	BranchID       string `json:"branch_id"`
	Phone          string `json:"phone,omitempty"`
	AlternatePhone string `json:"alternate_phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Address        string `json:"address,omitempty"`
	MapURL         string `json:"map_url,omitempty"`
	OfficeHours    string `json:"office_hours,omitempty"`
	UpdatedAt      string `json:"updated_at"`
}
