package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/session"
	"github.com/go-chi/chi/v5"
)

// sessionView is the session state returned to clients, including the
// rest countdown.
type sessionView struct {
	models.LiveSession
	RestTimer models.RestTimer `json:"restTimer"`
}

func view(s *session.Session) sessionView {
	return sessionView{LiveSession: s.Snapshot(), RestTimer: s.RestState()}
}

// handleStartSession instantiates a live session either from a stored
// template id or from a full template payload handed over by the caller.
// The payload round-trips field-for-field, so a client-side template works
// identically to a stored one.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string                  `json:"templateId"`
		Template   *models.WorkoutTemplate `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, session.ErrInvalidTemplate)
		return
	}

	var tmpl models.WorkoutTemplate
	switch {
	case req.Template != nil:
		tmpl = *req.Template
	case req.TemplateID != "":
		t, err := s.templates.Get(r.Context(), req.TemplateID)
		if err != nil {
			writeError(w, err)
			return
		}
		tmpl = t
	default:
		writeError(w, session.ErrInvalidTemplate)
		return
	}

	// Starting a new session supersedes any checkpointed one.
	if err := s.progress.Clear(r.Context()); err != nil {
		s.log.Warn("clearing checkpoint failed", "error", err)
	}

	live := session.New(tmpl)
	s.sessions.Add(live)
	writeJSON(w, http.StatusCreated, view(live))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(live))
}

func (s *Server) handleDisposeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Dispose(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	if err := s.progress.Clear(r.Context()); err != nil {
		s.log.Warn("clearing checkpoint failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	live.Reset()
	writeJSON(w, http.StatusOK, view(live))
}

func (s *Server) handleStartExercise(w http.ResponseWriter, r *http.Request) {
	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := live.StartExercise(chi.URLParam(r, "exerciseID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(live))
}

func (s *Server) handleCompleteSet(w http.ResponseWriter, r *http.Request) {
	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := live.CompleteSet(chi.URLParam(r, "exerciseID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(live))
}

// handleFinishExercise finalizes an exercise. Finishing with unfinished
// sets is a soft gate: the request must carry confirmIncomplete, matching
// the confirmation dialog the engine itself never shows. When the last
// exercise finishes, the produced record is appended to history and the
// checkpoint is cleared, in that order.
func (s *Server) handleFinishExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompletedWeight   string `json:"completedWeight"`
		ConfirmIncomplete bool   `json:"confirmIncomplete"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	exerciseID := chi.URLParam(r, "exerciseID")
	if !req.ConfirmIncomplete {
		for _, ex := range live.Snapshot().Exercises {
			if ex.ID == exerciseID && ex.InProgress && ex.CompletedSets < ex.Sets {
				writeJSON(w, http.StatusConflict, map[string]string{
					"error": "exercise has unfinished sets; retry with confirmIncomplete",
				})
				return
			}
		}
	}

	record, err := live.FinishExercise(exerciseID, req.CompletedWeight)
	if err != nil {
		writeError(w, err)
		return
	}

	if record != nil {
		if err := s.history.Append(r.Context(), *record); err != nil {
			// Optimistic update: the session is done regardless, the
			// write failure is reported but not rolled back.
			s.log.Error("appending history failed", "error", err)
		}
		if err := s.progress.Clear(r.Context()); err != nil {
			s.log.Warn("clearing checkpoint failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, struct {
		sessionView
		Record *models.CompletedWorkout `json:"record,omitempty"`
	}{view(live), record})
}

func (s *Server) handleRedoExercise(w http.ResponseWriter, r *http.Request) {
	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := live.RedoExercise(chi.URLParam(r, "exerciseID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(live))
}

func (s *Server) handleStartRest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExerciseID string `json:"exerciseId"`
		Duration   int    `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := live.StartRest(req.ExerciseID, req.Duration); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, live.RestState())
}

func (s *Server) handleSkipRest(w http.ResponseWriter, r *http.Request) {
	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	live.SkipRest()
	writeJSON(w, http.StatusOK, view(live))
}

func (s *Server) handleStopRest(w http.ResponseWriter, r *http.Request) {
	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	live.StopRest()
	writeJSON(w, http.StatusOK, live.RestState())
}

func (s *Server) handleAddRestTime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seconds int `json:"seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	live.AddRestTime(req.Seconds)
	writeJSON(w, http.StatusOK, live.RestState())
}

func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request) {
	live, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	cp := live.Checkpoint()
	if err := s.progress.Save(r.Context(), cp); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cp)
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]*models.Checkpoint{
		"checkpoint": s.progress.Load(r.Context()),
	})
}

func (s *Server) handleClearProgress(w http.ResponseWriter, r *http.Request) {
	if err := s.progress.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
