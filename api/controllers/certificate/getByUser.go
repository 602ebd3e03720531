package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/certgen-api/api/middleware"
	"github.com/sunthewhat/certgen-api/type/response"
	"github.com/sunthewhat/certgen-api/type/shared/model"
)

// GetByUser lists the caller's certificates. Admins see every certificate.
func (ctrl *CertificateController) GetByUser(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "User token not found")
	}

	var (
		certs []*model.Certificate
		err   error
	)
	if middleware.GetRoleFromContext(c) == model.RoleAdmin {
		certs, err = ctrl.certRepo.GetAll()
	} else {
		certs, err = ctrl.certRepo.GetByUser(userId)
	}
	if err != nil {
		slog.Error("Certificate GetByUser failed", "user_id", userId, "error", err)
		return response.SendInternalError(c, err)
	}

	if certs == nil {
		certs = []*model.Certificate{}
	}

	return response.SendSuccess(c, "Certificate fetched", certs)
}
