package auth_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DraganJovanovic96/FinanceTracker/internal/auth"
)

func newGatedApp(issuer *auth.TokenIssuer) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Get("/admin-only", auth.RequireAuth(issuer), auth.RequirePermission(auth.PermAdminRead),
		func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/any-user", auth.RequireAuth(issuer),
		func(c *fiber.Ctx) error {
			uid, _ := c.Locals("user_id").(string)
			return c.SendString(uid)
		})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRequireAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer(secret)
	app := newGatedApp(issuer)

	tokens, err := issuer.Issue(testUser(auth.RoleUser))
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/any-user", ""))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/any-user", "not-a-jwt"))
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/any-user", tokens.RefreshToken))
	})

	t.Run("valid access token passes", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, get(t, app, "/any-user", tokens.AccessToken))
	})
}

func TestRequirePermission(t *testing.T) {
	issuer := auth.NewTokenIssuer(secret)
	app := newGatedApp(issuer)

	userTokens, err := issuer.Issue(testUser(auth.RoleUser))
	require.NoError(t, err)
	adminTokens, err := issuer.Issue(testUser(auth.RoleAdmin))
	require.NoError(t, err)

	t.Run("user role is rejected on admin route", func(t *testing.T) {
		assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin-only", userTokens.AccessToken))
	})

	t.Run("admin role passes", func(t *testing.T) {
		assert.Equal(t, fiber.StatusOK, get(t, app, "/admin-only", adminTokens.AccessToken))
	})
}
