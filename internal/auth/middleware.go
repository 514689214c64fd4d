package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the Bearer access token and stores the caller's id
// and role on the request for downstream handlers.
func RequireAuth(issuer *TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil || claims.Type != tokenTypeAccess {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", string(claims.Role))
		return c.Next()
	}
}

// RequirePermission rejects callers whose role grants none of the listed
// permissions. Must run after RequireAuth.
func RequirePermission(perms ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleStr, _ := c.Locals("role").(string)
		role, ok := ParseRole(roleStr)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing role")
		}

		for _, p := range perms {
			if role.HasPermission(p) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "permission denied")
	}
}
