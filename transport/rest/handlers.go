package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
)

type handlers struct {
	logger  *slog.Logger
	session uSession
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type resetRequest struct {
	ClearScores bool `json:"clear_scores"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
	State any    `json:"state,omitempty"`
}

func (that *handlers) rules(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, map[string][]string{"rules": that.session.Rules()})
}

func (that *handlers) state(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.session.Snapshot())
}

func (that *handlers) placeMark(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !that.decode(w, r, &req) {
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	snapshot, err := that.session.PlaceMark(r.Context(), *req.Cell)
	if err != nil {
		that.writeError(w, err, snapshot)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *handlers) toggleAI(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.session.ToggleAI(r.Context()))
}

func (that *handlers) setDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if !that.decode(w, r, &req) {
		return
	}

	snapshot, err := that.session.SetDifficulty(r.Context(), entity.Difficulty(req.Difficulty))
	if err != nil {
		that.writeError(w, err, snapshot)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *handlers) reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if r.ContentLength != 0 && !that.decode(w, r, &req) {
		return
	}

	that.writeJSON(w, http.StatusOK, that.session.ResetGame(r.Context(), req.ClearScores))
}

func (that *handlers) renamePlayer(w http.ResponseWriter, r *http.Request) {
	side, err := entity.ParseMark(chi.URLParam(r, "side"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	var req renameRequest
	if !that.decode(w, r, &req) {
		return
	}

	snapshot, err := that.session.RenamePlayer(r.Context(), side, req.Name)
	if err != nil {
		that.writeError(w, err, snapshot)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}

	return true
}

// writeError - rejected moves are a conflict with the current state, bad settings are a bad request.
func (that *handlers) writeError(w http.ResponseWriter, err error, state any) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidMove):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidName),
		errors.Is(err, apperror.ErrUnknownDifficulty),
		errors.Is(err, apperror.ErrUnknownSide):
		status = http.StatusBadRequest
	default:
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error(), State: state})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("could not write response", "error", err)
	}
}
