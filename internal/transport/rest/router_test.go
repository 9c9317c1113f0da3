package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/internal/service/game"
)

func testRouter(games *gameServiceMock, stats *statsServiceMock) http.Handler {
	return NewRouter(RouterDeps{
		Auth:   NewAuthHandler(&authServiceMock{}, testLogger()),
		Game:   NewGameHandler(games, testLogger()),
		Stats:  NewStatsHandler(stats, testLogger()),
		Health: NewHealthHandler(&dbPingerMock{}, "test"),
	})
}

// /puzzles/statistics must route to the stats handler, not match
// /puzzles/{id}.
func TestRouter_StatisticsNotShadowedByID(t *testing.T) {
	t.Parallel()

	statsCalled := false
	stats := &statsServiceMock{
		PuzzleStatsFunc: func(context.Context) (map[domain.Difficulty]int, error) {
			statsCalled = true
			return map[domain.Difficulty]int{}, nil
		},
	}
	games := &gameServiceMock{
		GetFunc: func(context.Context, uuid.UUID) (game.View, error) {
			t.Fatal("statistics must not hit the game handler")
			return game.View{}, nil
		},
	}

	rec := httptest.NewRecorder()
	testRouter(games, stats).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/puzzles/statistics", nil))

	if !statsCalled {
		t.Fatal("stats handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
}

func TestRouter_GetPuzzleByID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	games := &gameServiceMock{
		GetFunc: func(_ context.Context, got uuid.UUID) (game.View, error) {
			if got != id {
				t.Errorf("id: got %s, want %s", got, id)
			}
			return sampleView(), nil
		},
	}

	rec := httptest.NewRecorder()
	testRouter(games, &statsServiceMock{}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/puzzles/"+id.String(), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
}

// The create routes and the per-game action routes must coexist in one mux:
// a wildcard create pattern would make registration panic, taking the whole
// route table down with it.
func TestRouter_CreateAndGameActionsCoexist(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	games := &gameServiceMock{
		CreateFunc: func(_ context.Context, input game.CreateInput) (game.View, error) {
			if input.Difficulty != "easy" {
				t.Errorf("difficulty: got %q, want easy", input.Difficulty)
			}
			return sampleView(), nil
		},
		SaveFunc: func(_ context.Context, got uuid.UUID, _ domain.CellEdits) (game.View, error) {
			if got != id {
				t.Errorf("id: got %s, want %s", got, id)
			}
			return sampleView(), nil
		},
	}
	router := testRouter(games, &statsServiceMock{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/puzzles/create/easy", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, want 201", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/puzzles/"+id.String()+"/save", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("save status: got %d, want 200", rec.Code)
	}

	// Difficulties outside the closed set have no route at all.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/puzzles/create/impossible", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown difficulty status: got %d, want 404", rec.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter(&gameServiceMock{}, &statsServiceMock{}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodDelete, "/puzzles", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want 405", rec.Code)
	}
}
