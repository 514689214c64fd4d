package transactions

import "time"

// Type enumerates the two legal transaction types. No other value is ever
// accepted, neither at the API boundary nor in the store.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// ParseType returns the Type for s and whether s is one of the two legal
// values. The comparison is exact; lowercase or padded input does not match.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeIncome, TypeExpense:
		return Type(s), true
	}
	return "", false
}

// Transaction is a persisted income or expense record. The owner and
// creation timestamp are immutable after insert; deletion is a flag, rows
// are never physically removed.
type Transaction struct {
	ID              string
	UserID          string
	UserEmail       string // joined from users for the transport shape
	Amount          float64
	Description     string
	TransactionType Type
	Deleted         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserRef is the owner reference carried on the wire.
type UserRef struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

type CreateRequest struct {
	TransactionType string   `json:"transactionType"`
	Amount          float64  `json:"amount"`
	Description     string   `json:"description"`
	User            *UserRef `json:"user"`
}

// UpdateRequest deliberately has no user field; ownership is immutable and
// not updatable through this path.
type UpdateRequest struct {
	ID              string  `json:"id"`
	TransactionType string  `json:"transactionType"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	Deleted         bool    `json:"deleted"`
}

type Response struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Deleted         bool      `json:"deleted"`
	TransactionType Type      `json:"transactionType"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	User            *UserRef  `json:"user"`
}

func toResponse(t Transaction) Response {
	return Response{
		ID:              t.ID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		Deleted:         t.Deleted,
		TransactionType: t.TransactionType,
		Amount:          t.Amount,
		Description:     t.Description,
		User:            &UserRef{ID: t.UserID, Email: t.UserEmail},
	}
}

func toResponses(ts []Transaction) []Response {
	out := make([]Response, 0, len(ts))
	for _, t := range ts {
		out = append(out, toResponse(t))
	}
	return out
}
