package payload

import "github.com/sunthewhat/certgen-api/type/shared/model"

// GenerateCertificatePayload is the single-generation request body. Every key
// other than template_id is treated as field data.
type GenerateCertificatePayload struct {
	TemplateID string         `json:"template_id" validate:"required"`
	Data       map[string]any `json:"-"`
}

type GenerateCertificateResult struct {
	Certificate *model.Certificate `json:"certificate"`
	DownloadURL string             `json:"download_url"`
}

type BulkGenerateResult struct {
	Message        string               `json:"message"`
	Count          int                  `json:"count"`
	Certificates   []*model.Certificate `json:"certificates"`
	ZipDownloadURL string               `json:"zip_download_url"`
}

type CertificateListPayload struct {
	Certificates []*model.Certificate `json:"certificates"`
}
