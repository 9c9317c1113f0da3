// Package sugoku is the outbound HTTP adapter for the sugoku puzzle service
// (https://github.com/bertoort/sugoku). It fetches fresh boards and their
// solutions during game creation.
package sugoku

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sudokuhub/backend/internal/config"
	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/internal/provider"
)

// Client fetches puzzle boards and solutions from the sugoku API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from config. The request timeout bounds each
// attempt against the service; creation fails visibly when it elapses.
func NewClient(cfg config.SugokuConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "sugoku"),
	}
}

// Generate fetches a new board of the given difficulty and its solution.
// Any transport failure or malformed payload maps to domain.ErrUnavailable
// so the caller can surface a retryable error without persisting anything.
func (c *Client) Generate(ctx context.Context, difficulty domain.Difficulty) (*provider.GeneratedPuzzle, error) {
	board, err := c.GetBoard(ctx, difficulty)
	if err != nil {
		return nil, err
	}

	solution, err := c.Solve(ctx, board)
	if err != nil {
		return nil, err
	}

	return &provider.GeneratedPuzzle{
		Board:      board,
		Solution:   solution,
		Difficulty: difficulty,
	}, nil
}

// GetBoard fetches a fresh puzzle board of the given difficulty.
func (c *Client) GetBoard(ctx context.Context, difficulty domain.Difficulty) (domain.Board, error) {
	reqURL := c.baseURL + "/board?difficulty=" + url.QueryEscape(difficulty.String())

	c.log.DebugContext(ctx, "sugoku board request", slog.String("difficulty", difficulty.String()))

	body, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	})
	if err != nil {
		return domain.Board{}, err
	}

	var payload struct {
		Board [][]int `json:"board"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Board{}, fmt.Errorf("sugoku: decode board payload: %v: %w", err, domain.ErrUnavailable)
	}

	board, err := toBoard(payload.Board)
	if err != nil {
		return domain.Board{}, fmt.Errorf("sugoku: board payload: %v: %w", err, domain.ErrUnavailable)
	}

	return board, nil
}

// Solve submits a board and returns the full solution grid. The request body
// is the service's percent-encoded nested-array form, sent urlencoded.
func (c *Client) Solve(ctx context.Context, board domain.Board) (domain.Board, error) {
	form := "board=" + EncodeBoardParam(board)

	body, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/solve", strings.NewReader(form))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return domain.Board{}, err
	}

	var payload struct {
		Solution [][]int `json:"solution"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Board{}, fmt.Errorf("sugoku: decode solution payload: %v: %w", err, domain.ErrUnavailable)
	}

	solution, err := toBoard(payload.Solution)
	if err != nil {
		return domain.Board{}, fmt.Errorf("sugoku: solution payload: %v: %w", err, domain.ErrUnavailable)
	}

	return solution, nil
}

// doWithRetry builds and executes the request, retrying once on 5xx or
// network errors. Each attempt builds a fresh request so POST bodies can be
// re-read.
func (c *Client) doWithRetry(ctx context.Context, build func() (*http.Request, error)) ([]byte, error) {
	resp, err := c.do(build)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if shouldRetry && ctx.Err() == nil {
		reason := "network error"
		if err == nil {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
			resp.Body.Close()
		}
		c.log.WarnContext(ctx, "sugoku retry", slog.String("reason", reason))

		time.Sleep(500 * time.Millisecond)
		resp, err = c.do(build)
	}

	if err != nil {
		c.log.ErrorContext(ctx, "sugoku request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("sugoku: request failed: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sugoku: unexpected status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sugoku: read body: %v: %w", err, domain.ErrUnavailable)
	}

	return body, nil
}

func (c *Client) do(build func() (*http.Request, error)) (*http.Response, error) {
	req, err := build()
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

// toBoard validates the raw grid from the API and converts it to a Board.
func toBoard(rows [][]int) (domain.Board, error) {
	if len(rows) != domain.BoardSize {
		return domain.Board{}, fmt.Errorf("%d rows, want %d", len(rows), domain.BoardSize)
	}

	var b domain.Board
	for i, row := range rows {
		if len(row) != domain.BoardSize {
			return domain.Board{}, fmt.Errorf("row %d has %d cells, want %d", i, len(row), domain.BoardSize)
		}
		for j, v := range row {
			if v < 0 || v > 9 {
				return domain.Board{}, fmt.Errorf("cell (%d,%d) value %d out of range", i, j, v)
			}
			b[i][j] = v
		}
	}

	return b, nil
}
