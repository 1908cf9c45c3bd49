// Package server exposes the application over HTTP: template CRUD, live
// session control, the progress checkpoint and history statistics.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/checkpoint"
	"github.com/claude/liftlog/internal/history"
	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/templates"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	templates *templates.Repository
	sessions  *session.Manager
	progress  *checkpoint.Store
	history   *history.Service
	log       *slog.Logger
	apiKey    string
	router    chi.Router
}

// New creates a new Server with all routes configured.
func New(repo *templates.Repository, sessions *session.Manager, progress *checkpoint.Store, hist *history.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		templates: repo,
		sessions:  sessions,
		progress:  progress,
		history:   hist,
		log:       log,
		apiKey:    apiKey,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Read-only views
		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Get("/history", s.handleHistory)
		r.Get("/stats", s.handleStats)
		r.Get("/stats/exercises", s.handleExerciseProgress)
		r.Get("/stats/weekly", s.handleWeeklyView)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Get("/progress", s.handleGetProgress)

		// Mutations (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))

			r.Post("/templates", s.handleCreateTemplate)
			r.Put("/templates/{id}", s.handleUpdateTemplate)
			r.Delete("/templates/{id}", s.handleDeleteTemplate)
			r.Post("/templates/{id}/exercises", s.handleAddExercise)
			r.Put("/templates/{id}/exercises/{exerciseID}", s.handleUpdateExercise)
			r.Delete("/templates/{id}/exercises/{exerciseID}", s.handleRemoveExercise)

			r.Post("/sessions", s.handleStartSession)
			r.Delete("/sessions/{id}", s.handleDisposeSession)
			r.Post("/sessions/{id}/reset", s.handleResetSession)
			r.Post("/sessions/{id}/checkpoint", s.handleSaveProgress)
			r.Post("/sessions/{id}/exercises/{exerciseID}/start", s.handleStartExercise)
			r.Post("/sessions/{id}/exercises/{exerciseID}/complete-set", s.handleCompleteSet)
			r.Post("/sessions/{id}/exercises/{exerciseID}/finish", s.handleFinishExercise)
			r.Post("/sessions/{id}/exercises/{exerciseID}/redo", s.handleRedoExercise)
			r.Post("/sessions/{id}/rest/start", s.handleStartRest)
			r.Post("/sessions/{id}/rest/skip", s.handleSkipRest)
			r.Post("/sessions/{id}/rest/stop", s.handleStopRest)
			r.Post("/sessions/{id}/rest/add-time", s.handleAddRestTime)

			r.Delete("/progress", s.handleClearProgress)
		})
	})
}
