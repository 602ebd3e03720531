package template_controller_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	template_controller "github.com/sunthewhat/certgen-api/api/controllers/template"
	templatemodel "github.com/sunthewhat/certgen-api/api/model/templateModel"
	"github.com/sunthewhat/certgen-api/type/payload"
	"github.com/sunthewhat/certgen-api/type/shared/model"
)

func TestTemplateController_GetFields(t *testing.T) {
	fallback := "Go Academy"
	tmpl := &model.Template{
		ID:   "tmpl-1",
		Name: "Completion",
		Fields: []model.TemplateField{
			{ID: "f1", Label: "Name", FieldType: model.FieldTypeStudentName},
			{ID: "f2", Label: "Certificate No.", FieldType: model.FieldTypeCertificateID},
			{ID: "f3", Label: "QR", FieldType: model.FieldTypeVerificationLink},
			{ID: "f4", Label: "Issuer", FieldType: "issuer", IsStatic: true, DefaultValue: &fallback},
			{ID: "f5", Label: "Grade", FieldType: "grade", DefaultValue: &fallback},
		},
	}

	tests := []struct {
		name           string
		withUser       bool
		setupMock      func(m *templatemodel.MockTemplateRepository)
		wantStatusCode int
		wantFields     []payload.TemplateInputField
	}{
		{
			name:     "user input fields only",
			withUser: true,
			setupMock: func(m *templatemodel.MockTemplateRepository) {
				m.GetVisibleFunc = func(templateId string, userId string) (*model.Template, error) {
					return tmpl, nil
				}
			},
			wantStatusCode: fiber.StatusOK,
			wantFields: []payload.TemplateInputField{
				{ID: "f1", Label: "Name", FieldType: model.FieldTypeStudentName},
				{ID: "f5", Label: "Grade", FieldType: "grade", DefaultValue: "Go Academy"},
			},
		},
		{
			name:           "not visible",
			withUser:       true,
			setupMock:      func(m *templatemodel.MockTemplateRepository) {},
			wantStatusCode: fiber.StatusNotFound,
		},
		{
			name:     "database error",
			withUser: true,
			setupMock: func(m *templatemodel.MockTemplateRepository) {
				m.GetVisibleFunc = func(templateId string, userId string) (*model.Template, error) {
					return nil, errors.New("db down")
				}
			},
			wantStatusCode: fiber.StatusInternalServerError,
		},
		{
			name:           "no user",
			setupMock:      func(m *templatemodel.MockTemplateRepository) {},
			wantStatusCode: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := templatemodel.NewMockTemplateRepository()
			tt.setupMock(repo)
			ctrl := template_controller.NewTemplateController(repo)

			app := fiber.New()
			app.Get("/template/:templateId/fields", func(c *fiber.Ctx) error {
				if tt.withUser {
					c.Locals("user_id", "user-1")
				}
				return ctrl.GetFields(c)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/template/tmpl-1/fields", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatusCode, resp.StatusCode)

			if tt.wantFields != nil {
				body, _ := io.ReadAll(resp.Body)
				var result struct {
					Data payload.TemplateFieldsPayload `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &result))
				assert.Equal(t, "tmpl-1", result.Data.TemplateID)
				assert.Equal(t, tt.wantFields, result.Data.Fields)
			}
		})
	}
}
