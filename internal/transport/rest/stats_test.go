package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sudokuhub/backend/internal/domain"
)

type statsServiceMock struct {
	PuzzleStatsFunc func(ctx context.Context) (map[domain.Difficulty]int, error)
	LeaderboardFunc func(ctx context.Context) ([]domain.LeaderboardRow, error)
}

func (m *statsServiceMock) PuzzleStats(ctx context.Context) (map[domain.Difficulty]int, error) {
	return m.PuzzleStatsFunc(ctx)
}

func (m *statsServiceMock) Leaderboard(ctx context.Context) ([]domain.LeaderboardRow, error) {
	return m.LeaderboardFunc(ctx)
}

func TestStatsHandler_PuzzleStats(t *testing.T) {
	t.Parallel()

	svc := &statsServiceMock{
		PuzzleStatsFunc: func(context.Context) (map[domain.Difficulty]int, error) {
			return map[domain.Difficulty]int{
				domain.DifficultyEasy: 2,
				domain.DifficultyHard: 1,
			}, nil
		},
	}
	h := NewStatsHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.PuzzleStats(rec, httptest.NewRequest(http.MethodGet, "/puzzles/statistics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["easy"] != 2 || resp["hard"] != 1 {
		t.Errorf("counts: got %v", resp)
	}
	if _, ok := resp["medium"]; ok {
		t.Error("unattempted difficulty must be absent from the response")
	}
}

func TestStatsHandler_PuzzleStats_Anonymous(t *testing.T) {
	t.Parallel()

	svc := &statsServiceMock{
		PuzzleStatsFunc: func(context.Context) (map[domain.Difficulty]int, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewStatsHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.PuzzleStats(rec, httptest.NewRequest(http.MethodGet, "/puzzles/statistics", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestStatsHandler_Leaderboard(t *testing.T) {
	t.Parallel()

	svc := &statsServiceMock{
		LeaderboardFunc: func(context.Context) ([]domain.LeaderboardRow, error) {
			return []domain.LeaderboardRow{
				{Username: "alice", Solved: 5},
				{Username: "bob", Solved: 5},
				{Username: "carol", Solved: 2},
			}, nil
		},
	}
	h := NewStatsHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.Leaderboard(rec, httptest.NewRequest(http.MethodGet, "/puzzles/leaderboard", nil))

	var resp []leaderboardEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 3 || resp[0].Username != "alice" || resp[2].Solved != 2 {
		t.Errorf("leaderboard: got %v", resp)
	}
}

func TestStatsHandler_Leaderboard_Empty(t *testing.T) {
	t.Parallel()

	svc := &statsServiceMock{
		LeaderboardFunc: func(context.Context) ([]domain.LeaderboardRow, error) {
			return []domain.LeaderboardRow{}, nil
		},
	}
	h := NewStatsHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.Leaderboard(rec, httptest.NewRequest(http.MethodGet, "/puzzles/leaderboard", nil))

	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("empty leaderboard must encode as [], got %q", body)
	}
}
