package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type sessionUseCase interface {
	NewGame(ctx context.Context) (string, tictactoe.SessionView, error)
	GetGame(ctx context.Context, id string) (tictactoe.SessionView, error)
	EndGame(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, cell int) (tictactoe.SessionView, error)
	JumpTo(ctx context.Context, id string, step int) (tictactoe.SessionView, error)
	ToggleOrder(ctx context.Context, id string) (tictactoe.SessionView, error)
}

type Handlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

type sessionResponse struct {
	ID string `json:"id"`
	tictactoe.SessionView
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Step *int `json:"step"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHandlers(logger *slog.Logger, sessions sessionUseCase) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, view, err := that.sessions.NewGame(r.Context())
	if err != nil {
		that.writeError(w, "CreateSession", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, sessionResponse{ID: id, SessionView: view})
}

func (that *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := that.sessions.GetGame(r.Context(), id)
	if err != nil {
		that.writeError(w, "GetSession", err)
		return
	}

	if raw := r.URL.Query().Get("order"); raw != "" {
		order, err := tictactoe.ParseOrder(raw)
		if err != nil {
			that.writeError(w, "GetSession", err)
			return
		}
		view = view.WithOrder(order)
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{ID: id, SessionView: view})
}

func (that *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "DeleteSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handlers) ApplyMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req moveRequest
	if err := decode(r, &req); err != nil || req.Cell == nil {
		that.writeError(w, "ApplyMove", fmt.Errorf("%w: cell is required", apperror.ErrMalformedRequest))
		return
	}

	view, err := that.sessions.MakeMove(r.Context(), id, *req.Cell)
	if err != nil {
		that.writeError(w, "ApplyMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{ID: id, SessionView: view})
}

func (that *Handlers) JumpTo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req jumpRequest
	if err := decode(r, &req); err != nil || req.Step == nil {
		that.writeError(w, "JumpTo", fmt.Errorf("%w: step is required", apperror.ErrMalformedRequest))
		return
	}

	view, err := that.sessions.JumpTo(r.Context(), id, *req.Step)
	if err != nil {
		that.writeError(w, "JumpTo", err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{ID: id, SessionView: view})
}

func (that *Handlers) ToggleOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := that.sessions.ToggleOrder(r.Context(), id)
	if err != nil {
		that.writeError(w, "ToggleOrder", err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{ID: id, SessionView: view})
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}

	return nil
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	} else {
		that.logger.Debug("request rejected", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidStep),
		errors.Is(err, apperror.ErrInvalidOrder),
		errors.Is(err, apperror.ErrMalformedRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrTooManySessions):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
