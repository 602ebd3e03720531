package template_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/certgen-api/api/middleware"
	templatemodel "github.com/sunthewhat/certgen-api/api/model/templateModel"
	"github.com/sunthewhat/certgen-api/type/payload"
	"github.com/sunthewhat/certgen-api/type/response"
)

type TemplateController struct {
	templateRepo templatemodel.ITemplateRepository
}

func NewTemplateController(templateRepo templatemodel.ITemplateRepository) *TemplateController {
	return &TemplateController{templateRepo: templateRepo}
}

// GetFields lists the inputs a user fills in to generate from a template.
func (ctrl *TemplateController) GetFields(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "User token not found")
	}

	templateId := c.Params("templateId")
	tmpl, err := ctrl.templateRepo.GetVisible(templateId, userId)
	if err != nil {
		slog.Error("Template GetFields failed", "template_id", templateId, "error", err)
		return response.SendInternalError(c, err)
	}
	if tmpl == nil {
		return response.SendNotFound(c, "Template not found")
	}

	fields := []payload.TemplateInputField{}
	for _, f := range tmpl.InputFields() {
		fields = append(fields, payload.TemplateInputField{
			ID:           f.ID,
			Label:        f.Label,
			FieldType:    f.FieldType,
			DefaultValue: f.Default(),
		})
	}

	return response.SendSuccess(c, "Template fields fetched", payload.TemplateFieldsPayload{
		TemplateID: tmpl.ID,
		Name:       tmpl.Name,
		Fields:     fields,
	})
}
