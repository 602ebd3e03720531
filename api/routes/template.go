package routes

import (
	"github.com/gofiber/fiber/v2"
	template_controller "github.com/sunthewhat/certgen-api/api/controllers/template"
	"github.com/sunthewhat/certgen-api/api/middleware"
	"github.com/sunthewhat/certgen-api/common"
)

func SetupTemplateRoutes(router fiber.Router, deps *Dependencies) {
	ctrl := template_controller.NewTemplateController(deps.Templates)

	templateGroup := router.Group("template")

	templateGroup.Use(middleware.AuthMiddleware(*common.Config.JWTSecret))

	templateGroup.Get(":templateId/fields", ctrl.GetFields)
}
