package model

import "gorm.io/datatypes"

// FieldType input kind of a form field
type FieldType string

const (
	FieldTypeShortText FieldType = "short_text"
	FieldTypeLongText  FieldType = "long_text"
	FieldTypeDate      FieldType = "date"
	FieldTypeSelect    FieldType = "select"
	FieldTypeEmail     FieldType = "email"
	FieldTypePhone     FieldType = "phone"
	FieldTypeNumber    FieldType = "number"
	FieldTypeFile      FieldType = "file"
)

// Valid reports whether t is a known field type
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeShortText, FieldTypeLongText, FieldTypeDate, FieldTypeSelect,
		FieldTypeEmail, FieldTypePhone, FieldTypeNumber, FieldTypeFile:
		return true
	}
	return false
}

// FormField admin-configured admission form input — form_fields.
// Name is the payload key and is unique across the table.
type FormField struct {
	FieldID      string                      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"field_id"`
	Name         string                      `gorm:"type:varchar(64);not null;uniqueIndex"          json:"name"`
	Label        string                      `gorm:"type:varchar(150);not null"                     json:"label"`
	FieldType    FieldType                   `gorm:"type:varchar(20);not null"                      json:"field_type"`
	IsRequired   bool                        `gorm:"not null;default:false"                         json:"is_required"`
	IsVisible    bool                        `gorm:"not null;default:true"                          json:"is_visible"`
	Options      datatypes.JSONSlice[string] `gorm:"type:jsonb"                                     json:"options,omitempty"`
	Placeholder  string                      `gorm:"type:varchar(200)"                              json:"placeholder,omitempty"`
	HelpText     string                      `gorm:"type:varchar(500)"                              json:"help_text,omitempty"`
	Section      string                      `gorm:"type:varchar(50);not null;default:'personal'"   json:"section"`
	DisplayOrder int                         `gorm:"not null;default:0"                             json:"display_order"`
	BaseModel
}

// TableName table name
func (FormField) TableName() string { return "form_fields" }
