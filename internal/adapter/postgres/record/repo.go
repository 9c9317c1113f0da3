// Package record implements the SolveRecord repository using PostgreSQL.
// It covers the write-once solve facts plus the two aggregate read queries
// behind the statistics and leaderboard pages. All aggregates run against
// the fixed schema with bound parameters only.
package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sudokuhub/backend/internal/adapter/postgres"
	"github.com/sudokuhub/backend/internal/domain"
)

// Repo provides solve-record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new solve-record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createIfAbsentSQL = `
INSERT INTO solve_records (game_id, user_id, difficulty, solved_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (game_id) DO NOTHING`

const countByDifficultySQL = `
SELECT r.difficulty, COUNT(*) AS total
FROM solve_records r
JOIN users u ON r.user_id = u.id
WHERE r.user_id = $1
GROUP BY r.difficulty`

const leaderboardSQL = `
SELECT u.username, COUNT(*) AS total
FROM solve_records r
JOIN users u ON r.user_id = u.id
GROUP BY u.username
ORDER BY total DESC, u.username ASC`

// CreateIfAbsent records a solve, keyed by game. Observing the same solved
// game again is a no-op, which keeps solve counting idempotent.
func (r *Repo) CreateIfAbsent(ctx context.Context, rec *domain.SolveRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createIfAbsentSQL, rec.GameID, rec.UserID, rec.Difficulty.String(), rec.SolvedAt)
	if err != nil {
		return fmt.Errorf("create solve_record: %w", err)
	}

	return nil
}

// CountByDifficulty returns the user's solve counts grouped by difficulty.
// Difficulties with zero solves are absent from the map.
func (r *Repo) CountByDifficulty(ctx context.Context, userID uuid.UUID) (map[domain.Difficulty]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, countByDifficultySQL, userID)
	if err != nil {
		return nil, fmt.Errorf("count solves by difficulty: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Difficulty]int)
	for rows.Next() {
		var difficulty string
		var total int
		if err := rows.Scan(&difficulty, &total); err != nil {
			return nil, fmt.Errorf("count solves by difficulty: %w", err)
		}
		counts[domain.Difficulty(difficulty)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count solves by difficulty: %w", err)
	}

	return counts, nil
}

// Leaderboard returns solve counts per user across all difficulties,
// ordered by count descending with username ascending as the tiebreak.
// Returns an empty slice (not nil) when nothing has been solved yet.
func (r *Repo) Leaderboard(ctx context.Context) ([]domain.LeaderboardRow, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, leaderboardSQL)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	board := []domain.LeaderboardRow{}
	for rows.Next() {
		var row domain.LeaderboardRow
		if err := rows.Scan(&row.Username, &row.Solved); err != nil {
			return nil, fmt.Errorf("leaderboard: %w", err)
		}
		board = append(board, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	return board, nil
}
