package certificatemodel

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sunthewhat/certgen-api/type/shared/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CertificateRepository persists issued certificates in PostgreSQL.
type CertificateRepository struct {
	db *gorm.DB
}

// CreateCertificateData is everything known about a certificate before its
// PDF is rendered.
type CreateCertificateData struct {
	TemplateID       string
	UserID           string
	StudentName      string
	CourseName       string
	CompletionDate   string
	VerificationCode string
	CustomData       map[string]any
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(data CreateCertificateData) (*model.Certificate, error) {
	cert := &model.Certificate{
		UserID:           data.UserID,
		StudentName:      data.StudentName,
		CourseName:       data.CourseName,
		VerificationCode: data.VerificationCode,
		CustomData:       datatypes.JSONMap(data.CustomData),
	}
	if data.TemplateID != "" {
		templateID := data.TemplateID
		cert.TemplateID = &templateID
	}
	if data.CompletionDate != "" {
		completionDate := data.CompletionDate
		cert.CompletionDate = &completionDate
	}
	if cert.CustomData == nil {
		cert.CustomData = datatypes.JSONMap{}
	}

	if createErr := r.db.Create(cert).Error; createErr != nil {
		slog.Error("Certificate Create", "error", createErr, "userId", data.UserID, "templateId", data.TemplateID)
		return nil, createErr
	}

	return cert, nil
}

func (r *CertificateRepository) UpdatePdfPath(id string, pdfPath string) error {
	result := r.db.Model(&model.Certificate{}).Where("id = ?", id).Update("pdf_path", pdfPath)
	if result.Error != nil {
		slog.Error("Certificate UpdatePdfPath", "error", result.Error, "certId", id)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("certificate not found")
	}
	return nil
}

func (r *CertificateRepository) GetAll() ([]*model.Certificate, error) {
	var certs []*model.Certificate
	if queryErr := r.db.Order("created_at desc").Find(&certs).Error; queryErr != nil {
		slog.Error("Certificate GetAll", "error", queryErr)
		return nil, queryErr
	}
	return certs, nil
}

func (r *CertificateRepository) GetByUser(userId string) ([]*model.Certificate, error) {
	var certs []*model.Certificate
	if queryErr := r.db.Where("user_id = ?", userId).Order("created_at desc").Find(&certs).Error; queryErr != nil {
		slog.Error("Certificate GetByUser", "error", queryErr, "userId", userId)
		return nil, queryErr
	}
	return certs, nil
}

func (r *CertificateRepository) GetById(certId string) (*model.Certificate, error) {
	if uuid.Validate(certId) != nil {
		return nil, nil
	}
	return r.first("GetById", "id = ?", certId)
}

func (r *CertificateRepository) GetByVerificationCode(code string) (*model.Certificate, error) {
	return r.first("GetByVerificationCode", "verification_code = ?", code)
}

// Delete removes a certificate owned by userId. A missing certificate or one
// owned by someone else yields (nil, nil).
func (r *CertificateRepository) Delete(id string, userId string) (*model.Certificate, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}
	cert, err := r.first("Delete find", "id = ? AND user_id = ?", id, userId)
	if err != nil || cert == nil {
		return nil, err
	}

	if deleteErr := r.db.Delete(&model.Certificate{}, "id = ?", id).Error; deleteErr != nil {
		slog.Error("Certificate Delete", "error", deleteErr, "certId", id)
		return nil, deleteErr
	}

	return cert, nil
}

func (r *CertificateRepository) first(op string, query string, args ...any) (*model.Certificate, error) {
	cert := new(model.Certificate)
	queryErr := r.db.Where(query, args...).First(cert).Error
	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Certificate "+op, "error", queryErr)
		return nil, queryErr
	}
	return cert, nil
}
