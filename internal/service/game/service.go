// Package game implements the puzzle lifecycle: creation from the upstream
// generator, board saves, solution checks, hints, resets, and deletion.
//
// Solving is terminal. Once a game's current board equals its solution, the
// mutating operations stop rewriting the board and replay the stored state,
// so a finished game can be revisited but never un-solved.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	gamerepo "github.com/sudokuhub/backend/internal/adapter/postgres/game"
	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/internal/provider"
	"github.com/sudokuhub/backend/pkg/ctxutil"
)

// gameRepo defines the game repository interface needed by the game service.
type gameRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter gamerepo.ListFilter) ([]*domain.Game, error)
	Create(ctx context.Context, g *domain.Game) (*domain.Game, error)
	UpdateCurrentBoard(ctx context.Context, id uuid.UUID, current domain.Board) (*domain.Game, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// recordRepo defines the solve-record repository interface needed by the game service.
type recordRepo interface {
	CreateIfAbsent(ctx context.Context, rec *domain.SolveRecord) error
}

// puzzleGenerator defines the upstream puzzle provider interface.
type puzzleGenerator interface {
	Generate(ctx context.Context, difficulty domain.Difficulty) (*provider.GeneratedPuzzle, error)
}

// txManager defines the transaction manager interface needed by the game service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements puzzle operations.
type Service struct {
	log       *slog.Logger
	games     gameRepo
	records   recordRepo
	generator puzzleGenerator
	tx        txManager
}

// NewService creates a new game service instance.
func NewService(
	logger *slog.Logger,
	games gameRepo,
	records recordRepo,
	generator puzzleGenerator,
	tx txManager,
) *Service {
	return &Service{
		log:       logger.With("service", "game"),
		games:     games,
		records:   records,
		generator: generator,
		tx:        tx,
	}
}

// loadOwned fetches a game and verifies it belongs to the context user.
// A game owned by someone else returns ErrForbidden, not ErrNotFound, so the
// transport can redirect instead of rendering a 404.
func (s *Service) loadOwned(ctx context.Context, gameID uuid.UUID) (*domain.Game, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	g, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("game %s: %w", gameID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get game: %w", err)
	}

	if g.UserID != userID {
		return nil, fmt.Errorf("game %s: %w", gameID, domain.ErrForbidden)
	}

	return g, nil
}

// saveAndRecord persists the new current board and, when it completes the
// puzzle, writes the solve record in the same transaction.
func (s *Service) saveAndRecord(ctx context.Context, g *domain.Game, current domain.Board) (*domain.Game, error) {
	solved := current.Equal(g.Solution)

	var updated *domain.Game
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.games.UpdateCurrentBoard(txCtx, g.ID, current)
		if err != nil {
			return fmt.Errorf("update board: %w", err)
		}

		if solved {
			rec := &domain.SolveRecord{
				GameID:     g.ID,
				UserID:     g.UserID,
				Difficulty: g.Difficulty,
				SolvedAt:   time.Now(),
			}
			if err := s.records.CreateIfAbsent(txCtx, rec); err != nil {
				return fmt.Errorf("record solve: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if solved {
		s.log.InfoContext(ctx, "puzzle solved",
			slog.String("game_id", g.ID.String()),
			slog.String("difficulty", g.Difficulty.String()))
	}

	return updated, nil
}
