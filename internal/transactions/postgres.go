package transactions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the production Store backed by a pgx pool.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

const selectColumns = `t.id, t.user_id::text, u.email, t.amount, t.description,
	 t.transaction_type, t.deleted, t.created_at, t.updated_at`

func (s *PostgresStore) FindAll(ctx context.Context) ([]Transaction, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+selectColumns+`
		 FROM transactions t
		 JOIN users u ON u.id = t.user_id
		 ORDER BY t.created_at ASC`)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func (s *PostgresStore) FindByUser(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+selectColumns+`
		 FROM transactions t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.user_id = $1::uuid AND t.deleted = false`,
		userID)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func (s *PostgresStore) FindByTypeAndUser(ctx context.Context, typ Type, userID string) ([]Transaction, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+selectColumns+`
		 FROM transactions t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.user_id = $1::uuid AND t.transaction_type = $2 AND t.deleted = false
		 ORDER BY t.created_at ASC`,
		userID, typ)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Transaction, error) {
	var t Transaction
	err := s.Pool.QueryRow(ctx,
		`SELECT `+selectColumns+`
		 FROM transactions t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.id = $1::uuid`,
		id).Scan(&t.ID, &t.UserID, &t.UserEmail, &t.Amount, &t.Description,
		&t.TransactionType, &t.Deleted, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) Create(ctx context.Context, t *Transaction) error {
	return s.Pool.QueryRow(ctx,
		`INSERT INTO transactions (user_id, amount, description, transaction_type, deleted)
		 VALUES ($1::uuid, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.UserID, t.Amount, t.Description, t.TransactionType, t.Deleted,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (s *PostgresStore) Update(ctx context.Context, t *Transaction) error {
	ct, err := s.Pool.Exec(ctx,
		`UPDATE transactions
		 SET amount = $2, description = $3, transaction_type = $4, deleted = $5, updated_at = $6
		 WHERE id = $1::uuid`,
		t.ID, t.Amount, t.Description, t.TransactionType, t.Deleted, t.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SoftDelete(ctx context.Context, id string) error {
	ct, err := s.Pool.Exec(ctx,
		`UPDATE transactions SET deleted = true WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	defer rows.Close()

	out := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.UserEmail, &t.Amount, &t.Description,
			&t.TransactionType, &t.Deleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
