package game

import (
	"context"
	"sync"

	"github.com/google/uuid"

	gamerepo "github.com/sudokuhub/backend/internal/adapter/postgres/game"
	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/internal/provider"
)

var _ gameRepo = &gameRepoMock{}

type gameRepoMock struct {
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	ListByUserFunc         func(ctx context.Context, userID uuid.UUID, filter gamerepo.ListFilter) ([]*domain.Game, error)
	CreateFunc             func(ctx context.Context, g *domain.Game) (*domain.Game, error)
	UpdateCurrentBoardFunc func(ctx context.Context, id uuid.UUID, current domain.Board) (*domain.Game, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
}

func (m *gameRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *gameRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, filter gamerepo.ListFilter) ([]*domain.Game, error) {
	return m.ListByUserFunc(ctx, userID, filter)
}

func (m *gameRepoMock) Create(ctx context.Context, g *domain.Game) (*domain.Game, error) {
	return m.CreateFunc(ctx, g)
}

func (m *gameRepoMock) UpdateCurrentBoard(ctx context.Context, id uuid.UUID, current domain.Board) (*domain.Game, error) {
	return m.UpdateCurrentBoardFunc(ctx, id, current)
}

func (m *gameRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

var _ recordRepo = &recordRepoMock{}

type recordRepoMock struct {
	mu      sync.Mutex
	records []*domain.SolveRecord

	CreateIfAbsentFunc func(ctx context.Context, rec *domain.SolveRecord) error
}

func (m *recordRepoMock) CreateIfAbsent(ctx context.Context, rec *domain.SolveRecord) error {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, rec)
	}
	m.mu.Lock()
	m.records = append(m.records, rec)
	m.mu.Unlock()
	return nil
}

func (m *recordRepoMock) recorded() []*domain.SolveRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records
}

var _ puzzleGenerator = &puzzleGeneratorMock{}

type puzzleGeneratorMock struct {
	GenerateFunc func(ctx context.Context, difficulty domain.Difficulty) (*provider.GeneratedPuzzle, error)
}

func (m *puzzleGeneratorMock) Generate(ctx context.Context, difficulty domain.Difficulty) (*provider.GeneratedPuzzle, error) {
	return m.GenerateFunc(ctx, difficulty)
}

var _ txManager = &txManagerMock{}

type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
