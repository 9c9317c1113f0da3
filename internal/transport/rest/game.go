package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/sudokuhub/backend/internal/domain"
	"github.com/sudokuhub/backend/internal/service/game"
)

// gameService defines the minimal interface needed by GameHandler.
type gameService interface {
	Create(ctx context.Context, input game.CreateInput) (game.View, error)
	Get(ctx context.Context, gameID uuid.UUID) (game.View, error)
	List(ctx context.Context, input game.ListInput) ([]game.View, error)
	Save(ctx context.Context, gameID uuid.UUID, edits domain.CellEdits) (game.View, error)
	Check(ctx context.Context, gameID uuid.UUID, edits domain.CellEdits) (game.CheckResult, error)
	Hint(ctx context.Context, gameID uuid.UUID, edits domain.CellEdits) (game.View, error)
	Reset(ctx context.Context, gameID uuid.UUID) (game.View, error)
	Delete(ctx context.Context, gameID uuid.UUID) error
}

// GameHandler serves puzzle REST endpoints.
type GameHandler struct {
	svc gameService
	log *slog.Logger
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(svc gameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{svc: svc, log: logger.With("handler", "game")}
}

// gameResponse is the wire form of a puzzle. The solution grid is
// deliberately absent: clients only ever see boards and masks.
type gameResponse struct {
	ID         string    `json:"id"`
	Difficulty string    `json:"difficulty"`
	Board      [][]int   `json:"board"`
	Locked     [][]bool  `json:"locked"`
	Solved     bool      `json:"solved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type checkResponse struct {
	gameResponse
	Errors [][]bool `json:"errors"`
}

type listResponse struct {
	Puzzles []gameResponse `json:"puzzles"`
}

// List handles GET /puzzles. An optional ?difficulty= query narrows the list.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.List(r.Context(), game.ListInput{
		Difficulty: r.URL.Query().Get("difficulty"),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := listResponse{Puzzles: make([]gameResponse, 0, len(views))}
	for _, v := range views {
		resp.Puzzles = append(resp.Puzzles, toGameResponse(v))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /puzzles/create/{difficulty}. The router registers one
// literal pattern per difficulty, so the value is read from the path tail,
// not a wildcard.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Create(r.Context(), game.CreateInput{
		Difficulty: path.Base(r.URL.Path),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGameResponse(view))
}

// Get handles GET /puzzles/{id}.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGameResponse(view))
}

// Save handles POST /puzzles/{id}/save with form-encoded cell edits.
func (h *GameHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Save(r.Context(), id, cellEdits(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGameResponse(view))
}

// Check handles POST /puzzles/{id}/check: saves the edits and returns the
// error overlay alongside the board.
func (h *GameHandler) Check(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Check(r.Context(), id, cellEdits(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		gameResponse: toGameResponse(result.View),
		Errors:       maskRows(result.Errors),
	})
}

// Hint handles POST /puzzles/{id}/hint.
func (h *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Hint(r.Context(), id, cellEdits(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGameResponse(view))
}

// Reset handles POST /puzzles/{id}/reset.
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Reset(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGameResponse(view))
}

// Delete handles POST /puzzles/{id}/delete.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleError maps service errors to responses. Accessing someone else's
// puzzle redirects to the list instead of erroring, so a stale or guessed
// link lands the user back on their own puzzles.
func (h *GameHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		http.Redirect(w, r, "/puzzles", http.StatusSeeOther)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "puzzle not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "puzzle generator unavailable, try again later")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} path segment; a malformed UUID is a 404 because no
// puzzle can have that identifier.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "puzzle not found")
		return uuid.Nil, false
	}
	return id, true
}

// cellEdits collects the "(row,col)" form fields of the posted board. Keys
// that are not cell coordinates (submit buttons, CSRF fields) are skipped.
func cellEdits(r *http.Request) domain.CellEdits {
	if err := r.ParseForm(); err != nil {
		return nil
	}

	edits := make(domain.CellEdits, len(r.PostForm))
	for key, values := range r.PostForm {
		cell, ok := domain.ParseCellKey(key)
		if !ok || len(values) == 0 {
			continue
		}
		edits[cell] = values[0]
	}
	return edits
}

func toGameResponse(v game.View) gameResponse {
	return gameResponse{
		ID:         v.Game.ID.String(),
		Difficulty: v.Game.Difficulty.String(),
		Board:      boardRows(v.Game.Current),
		Locked:     maskRows(v.Locked),
		Solved:     v.Solved,
		CreatedAt:  v.Game.CreatedAt,
		UpdatedAt:  v.Game.UpdatedAt,
	}
}

func boardRows(b domain.Board) [][]int {
	rows := make([][]int, domain.BoardSize)
	for i := range b {
		rows[i] = b[i][:]
	}
	return rows
}

func maskRows(m domain.Mask) [][]bool {
	rows := make([][]bool, domain.BoardSize)
	for i := range m {
		rows[i] = m[i][:]
	}
	return rows
}
