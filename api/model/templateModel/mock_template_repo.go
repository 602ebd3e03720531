package templatemodel

import "github.com/sunthewhat/certgen-api/type/shared/model"

// ITemplateRepository defines the interface for template repository operations
type ITemplateRepository interface {
	GetVisible(templateId string, userId string) (*model.Template, error)
}

var _ ITemplateRepository = (*TemplateRepository)(nil)

// MockTemplateRepository is a mock implementation for testing
type MockTemplateRepository struct {
	GetVisibleFunc func(templateId string, userId string) (*model.Template, error)
}

var _ ITemplateRepository = (*MockTemplateRepository)(nil)

func NewMockTemplateRepository() *MockTemplateRepository {
	return &MockTemplateRepository{}
}

func (m *MockTemplateRepository) GetVisible(templateId string, userId string) (*model.Template, error) {
	if m.GetVisibleFunc != nil {
		return m.GetVisibleFunc(templateId, userId)
	}
	return nil, nil
}
