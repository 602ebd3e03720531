package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Certificate struct {
	ID               string            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TemplateID       *string           `gorm:"column:template_id;type:uuid;index" json:"template_id"`
	UserID           string            `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	StudentName      string            `gorm:"column:student_name;type:varchar(255)" json:"student_name"`
	CourseName       string            `gorm:"column:course_name;type:varchar(255)" json:"course_name"`
	CompletionDate   *string           `gorm:"column:completion_date;type:varchar(50)" json:"completion_date"`
	VerificationCode string            `gorm:"column:verification_code;type:varchar(50);not null;uniqueIndex" json:"verification_code"`
	CustomData       datatypes.JSONMap `gorm:"column:custom_data;type:jsonb;default:'{}'" json:"custom_data"`
	PdfPath          *string           `gorm:"column:pdf_path;type:text" json:"pdf_path"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Template *Template `gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ShortID is the truncated, upper-cased id printed on certificates and
// shown on the verification page.
func (c *Certificate) ShortID() string {
	id := c.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// CustomValue returns custom_data[key] as a string.
func (c *Certificate) CustomValue(key string) (string, bool) {
	if c.CustomData == nil {
		return "", false
	}
	v, ok := c.CustomData[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}
