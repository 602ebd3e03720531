package verify_controller

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/certgen-api/type/payload"
	"github.com/sunthewhat/certgen-api/type/response"
)

type Verifier interface {
	Verify(ctx context.Context, code string) (*payload.VerifyResult, error)
}

type VerifyController struct {
	verifier Verifier
}

func NewVerifyController(verifier Verifier) *VerifyController {
	return &VerifyController{verifier: verifier}
}

// Verify is public. Unknown codes are answered with verified=false and 200.
func (ctrl *VerifyController) Verify(c *fiber.Ctx) error {
	code := c.Params("code")

	result, err := ctrl.verifier.Verify(c.UserContext(), code)
	if err != nil {
		slog.Error("Verification lookup failed", "code", code, "error", err)
		return response.SendInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
