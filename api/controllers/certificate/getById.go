package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/certgen-api/api/middleware"
	"github.com/sunthewhat/certgen-api/type/response"
	"github.com/sunthewhat/certgen-api/type/shared/model"
)

// loadOwned returns the certificate when the caller owns it or is an admin.
// It writes the error response itself and returns nil otherwise.
func (ctrl *CertificateController) loadOwned(c *fiber.Ctx) (*model.Certificate, error) {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return nil, response.SendUnauthorized(c, "User token not found")
	}

	certId := c.Params("certId")
	if certId == "" {
		return nil, response.SendFailed(c, "Certificate ID is required")
	}

	cert, err := ctrl.certRepo.GetById(certId)
	if err != nil {
		slog.Error("Error getting certificate", "cert_id", certId, "error", err)
		return nil, response.SendInternalError(c, err)
	}

	if cert == nil || (cert.UserID != userId && middleware.GetRoleFromContext(c) != model.RoleAdmin) {
		slog.Warn("Certificate not accessible", "cert_id", certId, "user_id", userId)
		return nil, response.SendNotFound(c, "Certificate not found")
	}

	return cert, nil
}

func (ctrl *CertificateController) GetById(c *fiber.Ctx) error {
	cert, err := ctrl.loadOwned(c)
	if cert == nil {
		return err
	}
	return response.SendSuccess(c, "Certificate found", cert)
}
