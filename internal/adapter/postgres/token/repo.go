// Package token implements the RefreshToken repository using PostgreSQL.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sudokuhub/backend/internal/adapter/postgres"
	"github.com/sudokuhub/backend/internal/domain"
)

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
VALUES ($1, $2, $3, $4, now())`

const getByHashSQL = `
SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
FROM refresh_tokens
WHERE token_hash = $1
  AND revoked_at IS NULL
  AND expires_at > now()`

const revokeByIDSQL = `
UPDATE refresh_tokens
SET revoked_at = now()
WHERE id = $1 AND revoked_at IS NULL`

const revokeAllByUserSQL = `
UPDATE refresh_tokens
SET revoked_at = now()
WHERE user_id = $1 AND revoked_at IS NULL`

const deleteExpiredSQL = `
DELETE FROM refresh_tokens
WHERE expires_at < now() OR revoked_at IS NOT NULL`

// Create inserts a new refresh token.
func (r *Repo) Create(ctx context.Context, token *domain.RefreshToken) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	id := token.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	if _, err := q.Exec(ctx, createSQL, id, token.UserID, token.TokenHash, token.ExpiresAt); err != nil {
		return fmt.Errorf("create refresh_token: %w", err)
	}

	return nil
}

// GetByHash returns an active (non-revoked, non-expired) refresh token by its hash.
// Returns domain.ErrNotFound if the token does not exist, is revoked, or is expired.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.RefreshToken
	var revokedAt *time.Time
	err := q.QueryRow(ctx, getByHashSQL, tokenHash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &revokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("refresh_token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get refresh_token: %w", err)
	}
	t.RevokedAt = revokedAt

	return &t, nil
}

// RevokeByID revokes a specific refresh token by setting revoked_at.
// Idempotent: revoking an already-revoked token is not an error.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, revokeByIDSQL, id); err != nil {
		return fmt.Errorf("revoke refresh_token: %w", err)
	}

	return nil
}

// RevokeAllByUser revokes all active refresh tokens for a user (logout everywhere).
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, revokeAllByUserSQL, userID); err != nil {
		return fmt.Errorf("revoke refresh_tokens for user: %w", err)
	}

	return nil
}

// DeleteExpired removes expired and revoked tokens; returns the count removed.
// Intended for the periodic cleanup command.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteExpiredSQL)
	if err != nil {
		return 0, fmt.Errorf("delete expired refresh_tokens: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
