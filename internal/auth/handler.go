package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Store  UserStore
	Issuer *TokenIssuer
}

type registerRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/v1/auth/register. The role defaults to USER
// when the request leaves it empty.
func (h *Handler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}

	role := RoleUser
	if body.Role != "" {
		parsed, ok := ParseRole(body.Role)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "role must be either ADMIN or USER")
		}
		role = parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	u := &User{
		Email:        body.Email,
		PasswordHash: string(hashed),
		Firstname:    body.Firstname,
		Lastname:     body.Lastname,
		Role:         role,
	}
	if err := h.Store.Create(userContext(c), u); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
	}

	tokens, err := h.Issuer.Issue(u)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}
	return c.JSON(tokens)
}

// Authenticate handles POST /api/v1/auth/authenticate.
func (h *Handler) Authenticate(c *fiber.Ctx) error {
	var body authenticateRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	u, err := h.Store.FindByEmail(userContext(c), strings.TrimSpace(body.Email))
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	tokens, err := h.Issuer.Issue(u)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}
	return c.JSON(tokens)
}

// RefreshToken handles POST /api/v1/auth/refresh-token. It accepts a Bearer
// refresh token and answers with a fresh access token plus the refresh token
// it was given. The user is re-loaded so a changed role or a soft-deleted
// account takes effect immediately.
func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	claims, err := h.Issuer.Parse(parts[1])
	if err != nil || claims.Type != tokenTypeRefresh {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	u, err := h.Store.FindByID(userContext(c), claims.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	access, err := h.Issuer.IssueAccess(u)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}
	return c.JSON(Tokens{AccessToken: access, RefreshToken: parts[1]})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
