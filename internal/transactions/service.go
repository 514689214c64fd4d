package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Service implements the transaction lifecycle rules on top of a Store.
// Authorization gates (permissions, authentication) run at the route
// boundary before any of these methods; the only check done here is the
// owner check on delete.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListAll returns every transaction, soft-deleted rows included, ordered by
// creation time ascending. The admin:read route gate runs before this.
func (s *Service) ListAll(ctx context.Context) ([]Response, error) {
	ts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(ts), nil
}

// ListForUser returns the user's non-deleted transactions. A type filter is
// applied only when typ is exactly INCOME or EXPENSE; any other value falls
// back to the plain by-user lookup rather than failing.
func (s *Service) ListForUser(ctx context.Context, userID, typ string) ([]Response, error) {
	if t, ok := ParseType(typ); ok {
		ts, err := s.store.FindByTypeAndUser(ctx, t, userID)
		if err != nil {
			return nil, err
		}
		return toResponses(ts), nil
	}

	ts, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(ts), nil
}

// Create persists a new transaction owned by userID. Input shape is
// validated at the handler before this runs; repeated identical creates
// produce additional distinct records.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Response, error) {
	typ, _ := ParseType(req.TransactionType)
	t := &Transaction{
		UserID:          userID,
		Amount:          req.Amount,
		Description:     req.Description,
		TransactionType: typ,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	resp := toResponse(*t)
	return &resp, nil
}

// Delete soft-deletes the transaction after three guard checks: the row must
// exist, must not already be deleted, and must belong to the caller. Delete
// is not idempotent; repeating it on an already-deleted row is an error.
func (s *Service) Delete(ctx context.Context, userID, transactionID string) error {
	t, err := s.store.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Transaction is not found")
		}
		return err
	}
	if t.Deleted {
		return fiber.NewError(fiber.StatusNotFound, "Transaction is already deleted")
	}
	// Owners are compared by user id, never by loaded instance identity.
	if t.UserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Transaction doesn't belong to the user")
	}

	if err := s.store.SoftDelete(ctx, transactionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Transaction is not found")
		}
		return err
	}
	return nil
}

// Update overwrites type, description, amount and the deleted flag from the
// request and refreshes updatedAt. Amount positivity is re-checked here
// because this path does not share the create-boundary validation. There is
// no ownership check on update; delete is the only owner-gated mutation.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Response, error) {
	t, err := s.store.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Transaction is not found")
		}
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, fiber.NewError(fiber.StatusForbidden, "Amount must be positive number")
	}

	typ, _ := ParseType(req.TransactionType)
	t.TransactionType = typ
	t.UpdatedAt = time.Now()
	t.Amount = req.Amount
	t.Description = req.Description
	t.Deleted = req.Deleted

	if err := s.store.Update(ctx, t); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Transaction is not found")
		}
		return nil, err
	}

	resp := toResponse(*t)
	return &resp, nil
}
