package dto

// ── admission form fields ──

// CreateFormFieldRequest define a form field
type CreateFormFieldRequest struct {
	Name         string   `json:"name"          binding:"required,field_name,max=64"`
	Label        string   `json:"label"         binding:"required,max=150"`
	FieldType    string   `json:"field_type"    binding:"required,oneof=short_text long_text date select email phone number file"`
	IsRequired   bool     `json:"is_required"`
	IsVisible    *bool    `json:"is_visible"`
	Options      []string `json:"options"       binding:"omitempty,max=100,dive,required,max=100"`
	Placeholder  string   `json:"placeholder"   binding:"omitempty,max=200"`
	HelpText     string   `json:"help_text"     binding:"omitempty,max=500"`
	Section      string   `json:"section"       binding:"omitempty,max=50"`
	DisplayOrder int      `json:"display_order" binding:"omitempty,min=0"`
}

// UpdateFormFieldRequest partial field update
type UpdateFormFieldRequest struct {
	Name         *string   `json:"name"          binding:"omitempty,field_name,max=64"`
	Label        *string   `json:"label"         binding:"omitempty,min=1,max=150"`
	FieldType    *string   `json:"field_type"    binding:"omitempty,oneof=short_text long_text date select email phone number file"`
	IsRequired   *bool     `json:"is_required"`
	IsVisible    *bool     `json:"is_visible"`
	Options      *[]string `json:"options"       binding:"omitempty,max=100,dive,required,max=100"`
	Placeholder  *string   `json:"placeholder"   binding:"omitempty,max=200"`
	HelpText     *string   `json:"help_text"     binding:"omitempty,max=500"`
	Section      *string   `json:"section"       binding:"omitempty,min=1,max=50"`
	DisplayOrder *int      `json:"display_order" binding:"omitempty,min=0"`
}

// FieldOrderItem new display order of one field
type FieldOrderItem struct {
	ID           string `json:"id"            binding:"required,uuid"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// ReorderFormFieldsRequest bulk display order update
type ReorderFormFieldsRequest struct {
	Items []FieldOrderItem `json:"items" binding:"required,min=1,max=200,dive"`
}

// FormFieldResponse field definition
type FormFieldResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	FieldType    string   `json:"field_type"`
	IsRequired   bool     `json:"is_required"`
	IsVisible    bool     `json:"is_visible"`
	Options      []string `json:"options,omitempty"`
	Placeholder  string   `json:"placeholder,omitempty"`
	HelpText     string   `json:"help_text,omitempty"`
	Section      string   `json:"section"`
	DisplayOrder int      `json:"display_order"`
}

// FormSectionResponse fields of one section in render order
type FormSectionResponse struct {
	Name   string              `json:"name"`
	Fields []FormFieldResponse `json:"fields"`
}

// FormDefinitionResponse public form definition
type FormDefinitionResponse struct {
	Fields   []FormFieldResponse   `json:"fields"`
	Sections []FormSectionResponse `json:"sections"`
}
