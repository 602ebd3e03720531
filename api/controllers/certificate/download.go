package certificate_controller

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/certgen-api/type/response"
)

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// Download streams the certificate PDF as certificate_<student name>.pdf.
func (ctrl *CertificateController) Download(c *fiber.Ctx) error {
	cert, err := ctrl.loadOwned(c)
	if cert == nil {
		return err
	}

	if cert.PdfPath == nil || !ctrl.files.Exists(*cert.PdfPath) {
		slog.Warn("Certificate PDF missing", "cert_id", cert.ID)
		return response.SendNotFound(c, "Certificate PDF not found")
	}

	path, err := ctrl.files.Resolve(*cert.PdfPath)
	if err != nil {
		return response.SendNotFound(c, "Certificate PDF not found")
	}

	name := pathSeparators.Replace(strings.TrimSpace(cert.StudentName))
	if name == "" {
		name = cert.ShortID()
	}

	return c.Download(path, "certificate_"+name+".pdf")
}
