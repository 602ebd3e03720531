package routes

import (
	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/sunthewhat/certgen-api/api/controllers/certificate"
	"github.com/sunthewhat/certgen-api/api/middleware"
	"github.com/sunthewhat/certgen-api/common"
)

func SetupCertificateRoutes(router fiber.Router, deps *Dependencies) {
	ctrl := certificate_controller.NewCertificateController(deps.Certificates, deps.Jobs, deps.Generator, deps.Files, deps.Verifier)

	certificateGroup := router.Group("certificate")

	certificateGroup.Use(middleware.AuthMiddleware(*common.Config.JWTSecret))

	certificateGroup.Get("", ctrl.GetByUser)
	certificateGroup.Post("generate", ctrl.Generate)
	certificateGroup.Post("generate/bulk", ctrl.GenerateBulk)
	certificateGroup.Get("bulk/jobs", ctrl.ListBulkJobs)
	certificateGroup.Get(":certId", ctrl.GetById)
	certificateGroup.Get(":certId/download", ctrl.Download)
	certificateGroup.Delete(":certId", ctrl.Delete)
}
