package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/certgen-api/api/middleware"
	"github.com/sunthewhat/certgen-api/common/util"
	"github.com/sunthewhat/certgen-api/internal/generator"
	"github.com/sunthewhat/certgen-api/type/payload"
	"github.com/sunthewhat/certgen-api/type/response"
)

func parseGeneratePayload(c *fiber.Ctx) (*payload.GenerateCertificatePayload, error) {
	raw := map[string]any{}
	if err := c.BodyParser(&raw); err != nil {
		return nil, err
	}

	body := &payload.GenerateCertificatePayload{Data: raw}
	if id, ok := raw["template_id"].(string); ok {
		body.TemplateID = id
	}
	delete(raw, "template_id")
	return body, nil
}

// Generate issues a single certificate from a JSON object of field values.
func (ctrl *CertificateController) Generate(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "User token not found")
	}

	body, err := parseGeneratePayload(c)
	if err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	caller := generator.Caller{UserID: userId, Role: middleware.GetRoleFromContext(c)}
	result, err := ctrl.generator.GenerateSingle(c.UserContext(), caller, body.TemplateID, body.Data)
	if err != nil {
		status, msg := generationFailure(err)
		if status == fiber.StatusInternalServerError {
			slog.Error("Certificate generation failed", "template_id", body.TemplateID, "user_id", userId, "error", err)
		}
		return c.Status(status).JSON(response.Error(msg))
	}

	return response.SendCreated(c, "Certificate generated", payload.GenerateCertificateResult{
		Certificate: result.Certificate,
		DownloadURL: result.DownloadURL,
	})
}
