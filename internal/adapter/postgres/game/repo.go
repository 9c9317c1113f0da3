// Package game implements the Game repository using PostgreSQL.
// Boards are persisted in their textual codec form and decoded on read;
// a row with an undecodable board is treated as a storage error, never
// returned as a partial game.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sudokuhub/backend/internal/adapter/postgres"
	"github.com/sudokuhub/backend/internal/domain"
)

// ListFilter narrows the game listing. A nil Difficulty means all games.
type ListFilter struct {
	Difficulty *domain.Difficulty
}

// Repo provides game persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new game repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const gameColumns = `id, user_id, difficulty, initial_board, current_board, solution_board, created_at, updated_at`

const getByIDSQL = `
SELECT ` + gameColumns + `
FROM games
WHERE id = $1`

const createSQL = `
INSERT INTO games (id, user_id, difficulty, initial_board, current_board, solution_board, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + gameColumns

const updateCurrentBoardSQL = `
UPDATE games
SET current_board = $2, updated_at = $3
WHERE id = $1
RETURNING ` + gameColumns

const deleteSQL = `
DELETE FROM games
WHERE id = $1`

// GetByID returns a game by primary key. Ownership is NOT checked here: the
// service layer needs to distinguish "missing" from "owned by someone else"
// to redirect instead of erroring.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGame(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, "game", id)
	}

	return g, nil
}

// ListByUser returns a user's games, newest first, optionally filtered.
// Returns an empty slice (not nil) when the user has no games.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*domain.Game, error) {
	builder := psql.
		Select("id", "user_id", "difficulty", "initial_board", "current_board", "solution_board", "created_at", "updated_at").
		From("games").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if filter.Difficulty != nil {
		builder = builder.Where(sq.Eq{"difficulty": filter.Difficulty.String()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := []*domain.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	return games, nil
}

// Create inserts a new game and returns the persisted domain.Game.
func (r *Repo) Create(ctx context.Context, g *domain.Game) (*domain.Game, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanGame(q.QueryRow(ctx, createSQL,
		g.ID, g.UserID, g.Difficulty.String(),
		g.Initial.Encode(), g.Current.Encode(), g.Solution.Encode(),
		g.CreatedAt, g.UpdatedAt))
	if err != nil {
		return nil, mapError(err, "game", g.ID)
	}

	return created, nil
}

// UpdateCurrentBoard persists a new current board for the game.
// Initial and solution boards are immutable and never rewritten.
func (r *Repo) UpdateCurrentBoard(ctx context.Context, id uuid.UUID, current domain.Board) (*domain.Game, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGame(q.QueryRow(ctx, updateCurrentBoardSQL, id, current.Encode(), time.Now()))
	if err != nil {
		return nil, mapError(err, "game", id)
	}

	return g, nil
}

// Delete removes a game. Returns domain.ErrNotFound when no row matched.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return mapError(err, "game", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	var difficulty, initial, current, solution string

	err := row.Scan(&g.ID, &g.UserID, &difficulty, &initial, &current, &solution, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}

	g.Difficulty = domain.Difficulty(difficulty)

	if g.Initial, err = domain.DecodeBoard(initial); err != nil {
		return nil, fmt.Errorf("initial board: %w", err)
	}
	if g.Current, err = domain.DecodeBoard(current); err != nil {
		return nil, fmt.Errorf("current board: %w", err)
	}
	if g.Solution, err = domain.DecodeBoard(solution); err != nil {
		return nil, fmt.Errorf("solution board: %w", err)
	}

	return &g, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
