package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by user lookups when no matching row exists.
var ErrNotFound = errors.New("user not found")

// UserStore is the persistence contract for accounts. Lookups exclude
// soft-deleted users.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go UserStore
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

// PostgresStore is the production UserStore backed by a pgx pool.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	return s.Pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, firstname, lastname, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Email, u.PasswordHash, u.Firstname, u.Lastname, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, `WHERE email = $1 AND deleted = false`, email)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, `WHERE id = $1::uuid AND deleted = false`, id)
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := s.Pool.QueryRow(ctx,
		`SELECT id::text, email, password_hash, firstname, lastname, role, deleted, created_at
		 FROM users `+where,
		arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Firstname, &u.Lastname,
		&u.Role, &u.Deleted, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
