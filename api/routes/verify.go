package routes

import (
	"github.com/gofiber/fiber/v2"
	verify_controller "github.com/sunthewhat/certgen-api/api/controllers/verify"
)

func SetupVerifyRoutes(router fiber.Router, deps *Dependencies) {
	ctrl := verify_controller.NewVerifyController(deps.Verifier)

	router.Get("verify/:code", ctrl.Verify)
}
