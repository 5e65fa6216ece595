package middleware

import (
	"errors"
	"strings"

	"rately/internal/repositories"
	"rately/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Keys under which the resolved identity is stored in the request context.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// AuthRequired verifies the bearer token and re-resolves its subject against
// the user table, so tokens of deleted accounts stop working immediately.
// On success the user's ID, email and role are attached to the request
// context.
func AuthRequired(authService *services.AuthService, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Access token required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Access token required",
			})
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "Token expired",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalRole, user.Role)

		return c.Next()
	}
}

// RequireRoles permits the request only when the authenticated user's role
// is in the allow-list. A pure predicate: it composes per-route and has no
// side effects.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Insufficient permissions",
		})
	}
}
