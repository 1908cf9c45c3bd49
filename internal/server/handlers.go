package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/templates"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errStatus(err), map[string]string{"error": err.Error()})
}

// errStatus maps domain sentinels to HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, templates.ErrValidation),
		errors.Is(err, session.ErrInvalidTemplate):
		return http.StatusBadRequest
	case errors.Is(err, templates.ErrTemplateNotFound),
		errors.Is(err, templates.ErrExerciseNotFound),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrExerciseNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrExerciseInProgress),
		errors.Is(err, session.ErrExerciseCompleted),
		errors.Is(err, session.ErrExerciseNotInProgress),
		errors.Is(err, session.ErrExerciseNotCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
