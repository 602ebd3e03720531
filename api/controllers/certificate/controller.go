package certificate_controller

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	bulkjobmodel "github.com/sunthewhat/certgen-api/api/model/bulkJobModel"
	certificatemodel "github.com/sunthewhat/certgen-api/api/model/certificateModel"
	"github.com/sunthewhat/certgen-api/internal/generator"
	"github.com/sunthewhat/certgen-api/internal/progress"
	"github.com/sunthewhat/certgen-api/internal/storage"
)

// VerificationCache drops cached verification answers.
type VerificationCache interface {
	Invalidate(ctx context.Context, code string)
}

// CertificateController handles certificate-related HTTP requests
type CertificateController struct {
	certRepo  certificatemodel.ICertificateRepository
	jobRepo   bulkjobmodel.IBulkJobRepository
	generator *generator.Generator
	files     *storage.Local
	verifier  VerificationCache

	writeTimeout time.Duration
}

// NewCertificateController creates a new certificate controller with injected dependencies.
// jobRepo may be nil when bulk job history is disabled.
func NewCertificateController(
	certRepo certificatemodel.ICertificateRepository,
	jobRepo bulkjobmodel.IBulkJobRepository,
	gen *generator.Generator,
	files *storage.Local,
	verifier VerificationCache,
) *CertificateController {
	return &CertificateController{
		certRepo:  certRepo,
		jobRepo:   jobRepo,
		generator: gen,
		files:     files,
		verifier:  verifier,

		writeTimeout: progress.DefaultWriteTimeout,
	}
}

const (
	MsgForbidden        = "Admins are restricted from generating certificates. Only Users can generate certificates."
	MsgTemplateNotFound = "Template not found."
	MsgEmptyCSV         = "CSV file is empty or has invalid format."
	MsgMissingInput     = "template_id and CSV file are required."
)

// generationFailure maps a generator error to its HTTP status and client message.
func generationFailure(err error) (int, string) {
	switch {
	case errors.Is(err, generator.ErrForbidden):
		return fiber.StatusForbidden, MsgForbidden
	case errors.Is(err, generator.ErrTemplateNotFound):
		return fiber.StatusNotFound, MsgTemplateNotFound
	case errors.Is(err, generator.ErrEmptyCSV):
		return fiber.StatusBadRequest, MsgEmptyCSV
	case errors.Is(err, generator.ErrMissingInput):
		return fiber.StatusBadRequest, MsgMissingInput
	default:
		return fiber.StatusInternalServerError, err.Error()
	}
}
