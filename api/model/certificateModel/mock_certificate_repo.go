package certificatemodel

import (
	"github.com/sunthewhat/certgen-api/type/shared/model"
)

// ICertificateRepository defines the interface for certificate repository operations
type ICertificateRepository interface {
	Create(data CreateCertificateData) (*model.Certificate, error)
	UpdatePdfPath(id string, pdfPath string) error
	GetAll() ([]*model.Certificate, error)
	GetByUser(userId string) ([]*model.Certificate, error)
	GetById(certId string) (*model.Certificate, error)
	GetByVerificationCode(code string) (*model.Certificate, error)
	Delete(id string, userId string) (*model.Certificate, error)
}

// Ensure CertificateRepository implements ICertificateRepository
var _ ICertificateRepository = (*CertificateRepository)(nil)

// MockCertificateRepository is a mock implementation for testing
type MockCertificateRepository struct {
	CreateFunc                func(data CreateCertificateData) (*model.Certificate, error)
	UpdatePdfPathFunc         func(id string, pdfPath string) error
	GetAllFunc                func() ([]*model.Certificate, error)
	GetByUserFunc             func(userId string) ([]*model.Certificate, error)
	GetByIdFunc               func(certId string) (*model.Certificate, error)
	GetByVerificationCodeFunc func(code string) (*model.Certificate, error)
	DeleteFunc                func(id string, userId string) (*model.Certificate, error)
}

// Ensure MockCertificateRepository implements ICertificateRepository
var _ ICertificateRepository = (*MockCertificateRepository)(nil)

// NewMockCertificateRepository creates a new mock repository
func NewMockCertificateRepository() *MockCertificateRepository {
	return &MockCertificateRepository{}
}

func (m *MockCertificateRepository) Create(data CreateCertificateData) (*model.Certificate, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(data)
	}
	return nil, nil
}

func (m *MockCertificateRepository) UpdatePdfPath(id string, pdfPath string) error {
	if m.UpdatePdfPathFunc != nil {
		return m.UpdatePdfPathFunc(id, pdfPath)
	}
	return nil
}

func (m *MockCertificateRepository) GetAll() ([]*model.Certificate, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc()
	}
	return nil, nil
}

func (m *MockCertificateRepository) GetByUser(userId string) ([]*model.Certificate, error) {
	if m.GetByUserFunc != nil {
		return m.GetByUserFunc(userId)
	}
	return nil, nil
}

func (m *MockCertificateRepository) GetById(certId string) (*model.Certificate, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(certId)
	}
	return nil, nil
}

func (m *MockCertificateRepository) GetByVerificationCode(code string) (*model.Certificate, error) {
	if m.GetByVerificationCodeFunc != nil {
		return m.GetByVerificationCodeFunc(code)
	}
	return nil, nil
}

func (m *MockCertificateRepository) Delete(id string, userId string) (*model.Certificate, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id, userId)
	}
	return nil, nil
}
