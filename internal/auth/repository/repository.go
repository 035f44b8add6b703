package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"softwaresur_backend/platform/apperr"
)

// Admin is a back-office user. Only rows in this table may read or
// mutate quote requests.
type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	CreatedAt    time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `
		SELECT id, email, password_hash, display_name, created_at
		FROM admins
		WHERE lower(email) = lower($1)`

	var a Admin
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("admin not found")
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return &a, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	query := `
		SELECT id, email, password_hash, display_name, created_at
		FROM admins
		WHERE id = $1`

	var a Admin
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("admin not found")
		}
		return nil, fmt.Errorf("failed to get admin by id: %w", err)
	}
	return &a, nil
}

// Exists reports whether the user ID belongs to a registered admin.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM admins WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}
	return exists, nil
}
