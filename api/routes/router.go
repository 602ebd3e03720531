package routes

import (
	"github.com/gofiber/fiber/v2"
)

func Init(router fiber.Router, deps *Dependencies) {
	api := router.Group("api")

	SetupVerifyRoutes(api.Group("public"), deps)
	SetupCertificateRoutes(api, deps)
	SetupTemplateRoutes(api, deps)
}
