package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sunthewhat/certgen-api/type/response"
	"github.com/sunthewhat/certgen-api/type/shared"
)

// AuthMiddleware verifies the bearer token and exposes user_id and
// user_role to handlers.
func AuthMiddleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:Authorization",
		AuthScheme:  "Bearer",
		ContextKey:  "auth",
		Claims:      new(shared.UserClaims),
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("auth").(*jwt.Token)
			if !ok {
				return response.SendUnauthorized(c, "Invalid token")
			}

			claims, ok := token.Claims.(*shared.UserClaims)
			if !ok || claims.UserId == nil || *claims.UserId == "" {
				slog.Warn("AuthMiddleware: token without user id",
					"path", c.Path(),
					"method", c.Method(),
					"ip", c.IP())
				return response.SendUnauthorized(c, "Invalid token claims")
			}

			role := ""
			if claims.Role != nil {
				role = *claims.Role
			}

			c.Locals("user_id", *claims.UserId)
			c.Locals("user_role", role)

			slog.Debug("AuthMiddleware: authentication successful",
				"user_id", *claims.UserId,
				"role", role,
				"path", c.Path(),
				"method", c.Method())

			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Warn("AuthMiddleware: token rejected",
				"error", err,
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP())
			return response.SendUnauthorized(c, "JWT validation failure")
		},
	})
}

// GetUserFromContext - Helper function to extract user ID from request context
func GetUserFromContext(c *fiber.Ctx) (string, bool) {
	if userID := c.Locals("user_id"); userID != nil {
		if id, ok := userID.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

// GetRoleFromContext returns the caller role, empty when unknown.
func GetRoleFromContext(c *fiber.Ctx) string {
	if role, ok := c.Locals("user_role").(string); ok {
		return role
	}
	return ""
}
