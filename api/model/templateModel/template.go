package templatemodel

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sunthewhat/certgen-api/type/shared/model"
	"gorm.io/gorm"
)

// TemplateRepository reads certificate templates and their fields.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetVisible loads a template with its fields in display order. Shared
// templates (no owner) are visible to everyone, owned ones only to their
// owner. Returns (nil, nil) when nothing visible matches.
func (r *TemplateRepository) GetVisible(templateId string, userId string) (*model.Template, error) {
	if uuid.Validate(templateId) != nil {
		return nil, nil
	}

	query := r.db.
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		})
	if uuid.Validate(userId) == nil {
		query = query.Where("id = ? AND (user_id IS NULL OR user_id = ?)", templateId, userId)
	} else {
		query = query.Where("id = ? AND user_id IS NULL", templateId)
	}

	template := new(model.Template)
	queryErr := query.First(template).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Template GetVisible", "error", queryErr, "templateId", templateId, "userId", userId)
		return nil, queryErr
	}

	return template, nil
}
