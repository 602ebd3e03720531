package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/certgen-api/common/util"
)

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthMiddleware("secret"), func(c *fiber.Ctx) error {
		id, ok := GetUserFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(id + "|" + GetRoleFromContext(c))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := util.GenerateAuthToken("secret", "user-1", "admin", time.Hour)
	require.NoError(t, err)
	foreign, err := util.GenerateAuthToken("other", "user-1", "admin", time.Hour)
	require.NoError(t, err)
	anonymous, err := util.GenerateAuthToken("secret", "", "user", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{name: "Valid token", header: "Bearer " + valid, expectedStatus: fiber.StatusOK, expectedBody: "user-1|admin"},
		{name: "Missing header", expectedStatus: fiber.StatusUnauthorized},
		{name: "Wrong signing key", header: "Bearer " + foreign, expectedStatus: fiber.StatusUnauthorized},
		{name: "Token without user id", header: "Bearer " + anonymous, expectedStatus: fiber.StatusUnauthorized},
	}

	app := newAuthApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.expectedBody, string(body))
			}
		})
	}
}
