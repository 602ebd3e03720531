package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Field types with special rendering that are never supplied by the user.
const (
	FieldTypeCertificateID    = "certificate_id"
	FieldTypeVerificationLink = "verification_link"
	FieldTypeStudentName      = "student_name"
	FieldTypeCourseName       = "course_name"
	FieldTypeCompletionDate   = "completion_date"
)

type Template struct {
	ID                string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name              string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	TemplateImagePath string          `gorm:"column:template_image_path;type:text" json:"template_image_path"`
	CanvasWidth       int             `gorm:"column:canvas_width;default:0" json:"canvas_width"`
	CanvasHeight      int             `gorm:"column:canvas_height;default:0" json:"canvas_height"`
	UserID            *string         `gorm:"column:user_id;type:uuid;index" json:"user_id,omitempty"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Fields            []TemplateField `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`
}

func (Template) TableName() string {
	return "templates"
}

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// DynamicFields returns the fields whose values come from per-certificate input.
func (t *Template) DynamicFields() []TemplateField {
	var fields []TemplateField
	for _, f := range t.Fields {
		if !f.IsStatic {
			fields = append(fields, f)
		}
	}
	return fields
}

// InputFields returns the dynamic fields a user is asked to fill in.
func (t *Template) InputFields() []TemplateField {
	var fields []TemplateField
	for _, f := range t.Fields {
		if f.IsUserInput() {
			fields = append(fields, f)
		}
	}
	return fields
}

type TemplateField struct {
	ID           string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TemplateID   string  `gorm:"column:template_id;type:uuid;not null;index" json:"template_id"`
	Label        string  `gorm:"column:label;type:varchar(255);not null" json:"label"`
	FieldType    string  `gorm:"column:field_type;type:varchar(100);not null" json:"field_type"`
	IsStatic     bool    `gorm:"column:is_static;default:false" json:"is_static"`
	DefaultValue *string `gorm:"column:default_value;type:text" json:"default_value"`
	PositionX    float64 `gorm:"column:position_x;type:real;default:0" json:"position_x"`
	PositionY    float64 `gorm:"column:position_y;type:real;default:0" json:"position_y"`
	FontSize     float64 `gorm:"column:font_size;type:real;default:24" json:"font_size"`
	FontColor    string  `gorm:"column:font_color;type:varchar(20);default:'#000000'" json:"font_color"`
	SortOrder    int     `gorm:"column:sort_order;default:0" json:"sort_order"`
}

func (TemplateField) TableName() string {
	return "template_fields"
}

func (f *TemplateField) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// IsUserInput reports whether the field is filled in per certificate.
// certificate_id and verification_link are generated and never user input.
func (f TemplateField) IsUserInput() bool {
	if f.IsStatic {
		return false
	}
	return f.FieldType != FieldTypeCertificateID && f.FieldType != FieldTypeVerificationLink
}

// Default returns the default value or an empty string.
func (f TemplateField) Default() string {
	if f.DefaultValue == nil {
		return ""
	}
	return *f.DefaultValue
}
