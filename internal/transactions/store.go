package transactions

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups when no row matches the given id.
var ErrNotFound = errors.New("transaction not found")

// Store is the persistence contract for transactions. The filtered lookups
// (FindByUser, FindByTypeAndUser) carry an explicit deleted = false
// predicate; FindAll applies no filter and sees soft-deleted rows too.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store
type Store interface {
	// FindAll returns every transaction ordered by creation time ascending,
	// soft-deleted rows included. Used only by the privileged listing.
	FindAll(ctx context.Context) ([]Transaction, error)

	// FindByUser returns the user's non-deleted transactions.
	FindByUser(ctx context.Context, userID string) ([]Transaction, error)

	// FindByTypeAndUser returns the user's non-deleted transactions of the
	// given type, ordered by creation time ascending.
	FindByTypeAndUser(ctx context.Context, typ Type, userID string) ([]Transaction, error)

	// FindByID returns the transaction regardless of its deleted flag, or
	// ErrNotFound.
	FindByID(ctx context.Context, id string) (*Transaction, error)

	// Create inserts t and fills its server-assigned id and timestamps.
	Create(ctx context.Context, t *Transaction) error

	// Update overwrites the mutable columns of an existing row.
	Update(ctx context.Context, t *Transaction) error

	// SoftDelete sets deleted = true on the identified row. ErrNotFound if
	// no row matches.
	SoftDelete(ctx context.Context, id string) error
}
