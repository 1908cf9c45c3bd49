// Package session implements the live workout session engine: the
// per-exercise state machine, elapsed-time tracking, the rest countdown
// and the hand-off of finished sessions into history records.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrExerciseNotFound      = errors.New("exercise not found")
	ErrExerciseInProgress    = errors.New("exercise already in progress")
	ErrExerciseCompleted     = errors.New("exercise already completed")
	ErrExerciseNotInProgress = errors.New("exercise not in progress")
	ErrExerciseNotCompleted  = errors.New("exercise not completed")
	ErrInvalidTemplate       = errors.New("invalid template data")
)

// Session is one live execution of a workout template. All state changes
// go through its methods; callers own the handle and must Dispose it when
// the session is abandoned or finished.
type Session struct {
	mu sync.Mutex

	state       models.LiveSession
	completedAt time.Time
	rest        restState
	done        chan struct{}
	disposed    bool

	now func() time.Time
}

// New instantiates a session from a template. Every exercise starts
// pending with currentSet=1 and no completed sets. A template without
// exercises still yields a session; it just can never complete.
func New(t models.WorkoutTemplate) *Session {
	return newSession(t, time.Now)
}

func newSession(t models.WorkoutTemplate, now func() time.Time) *Session {
	start := now()
	restTime := t.DefaultRestTime
	if restTime <= 0 {
		restTime = models.DefaultRestSeconds
	}

	exercises := make([]models.LiveExercise, len(t.Exercises))
	for i, ex := range t.Exercises {
		exercises[i] = models.LiveExercise{
			Exercise:      ex,
			CurrentSet:    1,
			CompletedSets: 0,
		}
	}

	return &Session{
		state: models.LiveSession{
			ID:              uuid.New().String(),
			TemplateID:      t.ID,
			Name:            t.Name,
			Date:            start.Format("2006-01-02"),
			Exercises:       exercises,
			DefaultRestTime: restTime,
			StartedAt:       start,
		},
		done: make(chan struct{}),
		now:  now,
	}
}

// ID returns the session's own identifier.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ID
}

// Snapshot returns a copy of the session state with elapsed time filled
// in. The copy is safe to serialize concurrently with mutations.
func (s *Session) Snapshot() models.LiveSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Exercises = make([]models.LiveExercise, len(s.state.Exercises))
	copy(snap.Exercises, s.state.Exercises)
	snap.ElapsedSeconds = s.elapsedLocked()
	return snap
}

// Elapsed returns whole seconds since the session start, frozen at the
// instant the session completed.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Session) elapsedLocked() int {
	if s.state.Completed {
		return int(s.completedAt.Sub(s.state.StartedAt).Seconds())
	}
	return int(s.now().Sub(s.state.StartedAt).Seconds())
}

// StartExercise transitions an exercise from pending to in-progress and
// stamps its start time. Exercises that already started must go through
// finish or redo instead.
func (s *Session) StartExercise(exerciseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex := s.findLocked(exerciseID)
	if ex == nil {
		return ErrExerciseNotFound
	}
	if ex.Completed {
		return ErrExerciseCompleted
	}
	if ex.InProgress {
		return ErrExerciseInProgress
	}

	started := s.now()
	ex.InProgress = true
	ex.StartedAt = &started
	ex.CurrentSet = 1
	ex.CompletedSets = 0
	return nil
}

// CompleteSet records one finished set. Once the target count is reached
// further calls are no-ops, so a manual tap racing an expiring rest timer
// can never overcount.
func (s *Session) CompleteSet(exerciseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeSetLocked(exerciseID)
}

func (s *Session) completeSetLocked(exerciseID string) error {
	ex := s.findLocked(exerciseID)
	if ex == nil {
		return ErrExerciseNotFound
	}
	if ex.CompletedSets >= ex.Sets {
		return nil
	}
	ex.CompletedSets++
	if ex.CurrentSet < ex.Sets {
		ex.CurrentSet++
	}
	return nil
}

// FinishExercise finalizes an in-progress exercise with the declared
// weight. Confirmation for finishing with unfinished sets is the caller's
// concern; the engine accepts the declared outcome as-is. When the last
// exercise finishes the session flips to completed, the rest countdown is
// cancelled and the history record is returned exactly once.
func (s *Session) FinishExercise(exerciseID, completedWeight string) (*models.CompletedWorkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex := s.findLocked(exerciseID)
	if ex == nil {
		return nil, ErrExerciseNotFound
	}
	if !ex.InProgress {
		return nil, ErrExerciseNotInProgress
	}

	ex.InProgress = false
	ex.Completed = true
	ex.CompletedWeight = completedWeight

	for i := range s.state.Exercises {
		if !s.state.Exercises[i].Completed {
			return nil, nil
		}
	}

	s.state.Completed = true
	s.completedAt = s.now()
	s.stopRestLocked()
	return s.recordLocked(), nil
}

// RedoExercise re-enters a completed exercise: the declared weight is
// cleared, set counters restart and the session is no longer complete.
func (s *Session) RedoExercise(exerciseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex := s.findLocked(exerciseID)
	if ex == nil {
		return ErrExerciseNotFound
	}
	if !ex.Completed {
		return ErrExerciseNotCompleted
	}

	started := s.now()
	ex.Completed = false
	ex.InProgress = true
	ex.StartedAt = &started
	ex.CompletedWeight = ""
	ex.CompletedSets = 0
	ex.CurrentSet = 1

	s.state.Completed = false
	s.completedAt = time.Time{}
	return nil
}

// Reset returns every exercise to pending and restarts the elapsed-time
// origin. Any running rest countdown is cancelled.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Exercises {
		ex := &s.state.Exercises[i]
		ex.Completed = false
		ex.InProgress = false
		ex.StartedAt = nil
		ex.CompletedWeight = ""
		ex.CompletedSets = 0
		ex.CurrentSet = 1
	}
	s.state.Completed = false
	s.completedAt = time.Time{}
	s.state.StartedAt = s.now()
	s.stopRestLocked()
}

// Dispose halts all periodic work tied to the session. The handle must
// not be used afterwards.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	s.stopRestLocked()
	close(s.done)
}

// Checkpoint builds the durable snapshot of the in-flight session.
func (s *Session) Checkpoint() models.Checkpoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercises := make([]models.LiveExercise, len(s.state.Exercises))
	copy(exercises, s.state.Exercises)

	return models.Checkpoint{
		ID:              s.state.TemplateID,
		Name:            s.state.Name,
		Exercises:       exercises,
		DefaultRestTime: s.state.DefaultRestTime,
		ElapsedTime:     s.elapsedLocked(),
		SavedAt:         s.now().Format(time.RFC3339),
	}
}

func (s *Session) findLocked(exerciseID string) *models.LiveExercise {
	for i := range s.state.Exercises {
		if s.state.Exercises[i].ID == exerciseID {
			return &s.state.Exercises[i]
		}
	}
	return nil
}

// recordLocked folds the completed session into an immutable history
// record. Duration truncates to whole minutes.
func (s *Session) recordLocked() *models.CompletedWorkout {
	results := make([]models.ExerciseResult, len(s.state.Exercises))
	for i, ex := range s.state.Exercises {
		results[i] = models.ExerciseResult{
			ID:              ex.ID,
			Name:            ex.Name,
			Sets:            ex.Sets,
			Reps:            ex.Reps,
			TargetWeight:    ex.Weight,
			CompletedWeight: ex.CompletedWeight,
			CompletedSets:   ex.CompletedSets,
			Notes:           ex.ProgressionNotes,
		}
	}

	elapsed := int(s.completedAt.Sub(s.state.StartedAt).Seconds())
	return &models.CompletedWorkout{
		ID:               uuid.New().String(),
		TemplateID:       s.state.TemplateID,
		Name:             s.state.Name,
		Date:             s.state.Date,
		StartTime:        s.state.StartedAt.Format(time.RFC3339),
		EndTime:          s.completedAt.Format(time.RFC3339),
		TotalTimeMinutes: elapsed / 60,
		Exercises:        results,
	}
}
