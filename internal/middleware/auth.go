package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/keyligtasan/internal/config"
	"github.com/example/keyligtasan/internal/models"
	"github.com/example/keyligtasan/internal/utils"
)

const (
	userContextKey = "currentUserID"
	roleContextKey = "currentUserRole"
)

// AuthMiddleware validates JWT tokens and loads the authenticated identity
// into request-scoped context. Handlers never read ambient globals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, role, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, userID)
		c.Locals(roleContextKey, role)
		return c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated role is not admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, role, ok := GetCurrentUser(c)
		if !ok || role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// GetCurrentUser extracts the authenticated user ID and role from context.
func GetCurrentUser(c *fiber.Ctx) (uint, string, bool) {
	idValue := c.Locals(userContextKey)
	roleValue := c.Locals(roleContextKey)
	if idValue == nil || roleValue == nil {
		return 0, "", false
	}

	id, okID := idValue.(uint)
	role, okRole := roleValue.(string)
	if !okID || !okRole {
		return 0, "", false
	}

	return id, role, true
}
