package transactions

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// ListAll handles GET /api/v1/transactions/all-transactions. The admin:read
// permission gate runs at the route.
func (h *Handler) ListAll(c *fiber.Ctx) error {
	items, err := h.Service.ListAll(userContext(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions: "+err.Error())
	}
	return c.JSON(items)
}

// ListMine handles GET /api/v1/transactions?type=INCOME|EXPENSE|"".
func (h *Handler) ListMine(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Service.ListForUser(userContext(c), userID, c.Query("type"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions: "+err.Error())
	}
	return c.JSON(items)
}

// Create handles POST /api/v1/transactions.
func (h *Handler) Create(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := validateCreate(&req); err != nil {
		return err
	}

	created, err := h.Service.Create(userContext(c), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Delete handles DELETE /api/v1/transactions/:transactionId.
func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := c.Params("transactionId")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Transaction is not found")
	}

	if err := h.Service.Delete(userContext(c), userID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Update handles PUT /api/v1/transactions.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if _, err := uuid.Parse(req.ID); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Transaction is not found")
	}
	if _, ok := ParseType(req.TransactionType); !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Transaction type must be either INCOME or EXPENSE")
	}

	updated, err := h.Service.Update(userContext(c), req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// validateCreate enforces the create-boundary shape before the service runs.
// The owning user on the persisted record always comes from the token, not
// from the body; the body's user field is required for wire compatibility.
func validateCreate(req *CreateRequest) error {
	if req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
	}
	if strings.TrimSpace(req.Description) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Description must not be empty")
	}
	if _, ok := ParseType(req.TransactionType); !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Transaction type must be either INCOME or EXPENSE")
	}
	if req.User == nil || strings.TrimSpace(req.User.ID) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "User must not be null")
	}
	return nil
}

func currentUserID(c *fiber.Ctx) (string, bool) {
	if v := c.Locals("user_id"); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
