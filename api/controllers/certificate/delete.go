package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/certgen-api/api/middleware"
	"github.com/sunthewhat/certgen-api/type/response"
)

// Delete removes the caller's certificate, its PDF and any cached verification.
func (ctrl *CertificateController) Delete(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "User token not found")
	}

	certId := c.Params("certId")
	cert, err := ctrl.certRepo.Delete(certId, userId)
	if err != nil {
		slog.Error("Certificate Delete failed", "cert_id", certId, "error", err)
		return response.SendInternalError(c, err)
	}
	if cert == nil {
		return response.SendNotFound(c, "Certificate not found or you do not have permission to delete it")
	}

	if cert.PdfPath != nil {
		if err := ctrl.files.Remove(*cert.PdfPath); err != nil {
			slog.Warn("Failed to remove certificate PDF", "cert_id", cert.ID, "error", err)
		}
	}
	if ctrl.verifier != nil {
		ctrl.verifier.Invalidate(c.UserContext(), cert.VerificationCode)
	}

	slog.Info("Certificate deleted", "cert_id", cert.ID, "user_id", userId)
	return response.SendSuccess(c, "Certificate Deleted", cert)
}
