package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/history"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.history.Load(r.Context()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, history.ComputeStats(s.history.Load(r.Context()), time.Now()))
}

func (s *Server) handleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, history.ComputeExerciseProgress(s.history.Load(r.Context())))
}

func (s *Server) handleWeeklyView(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "offset must be an integer"})
			return
		}
		offset = n
	}
	writeJSON(w, http.StatusOK, history.ComputeWeeklyView(s.history.Load(r.Context()), offset, time.Now()))
}
