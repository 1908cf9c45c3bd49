package session

import (
	"time"

	"github.com/claude/liftlog/internal/models"
)

// restState is the single rest countdown of a session. cancel belongs to
// the currently running tick goroutine; closing it guarantees no further
// tick is delivered before any other state mutation happens.
type restState struct {
	target    string
	remaining int
	duration  int
	running   bool
	cancel    chan struct{}
}

// StartRest begins a rest countdown targeting an exercise, cancelling any
// countdown already running. A non-positive duration falls back to the
// session's default rest time.
func (s *Session) StartRest(exerciseID string, durationSeconds int) error {
	return s.beginRest(exerciseID, durationSeconds, true)
}

// beginRest sets up the countdown state. Tests drive tickRest directly
// instead of spawning the tick goroutine.
func (s *Session) beginRest(exerciseID string, durationSeconds int, spawn bool) error {
	s.mu.Lock()

	if s.findLocked(exerciseID) == nil {
		s.mu.Unlock()
		return ErrExerciseNotFound
	}
	if durationSeconds <= 0 {
		durationSeconds = s.state.DefaultRestTime
	}

	s.stopRestLocked()
	cancel := make(chan struct{})
	s.rest = restState{
		target:    exerciseID,
		remaining: durationSeconds,
		duration:  durationSeconds,
		running:   true,
		cancel:    cancel,
	}
	s.mu.Unlock()

	if spawn {
		go s.runRest(cancel)
	}
	return nil
}

func (s *Session) runRest(cancel chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.tickRest() {
				return
			}
		case <-cancel:
			return
		case <-s.done:
			return
		}
	}
}

// tickRest advances the countdown by one second. It reports true when the
// countdown finished. Expiry stops the timer before completing the set,
// so the completion side effect fires at most once.
func (s *Session) tickRest() bool {
	s.mu.Lock()
	if !s.rest.running {
		s.mu.Unlock()
		return true
	}

	s.rest.remaining--
	if s.rest.remaining > 0 {
		s.mu.Unlock()
		return false
	}

	target := s.rest.target
	s.rest = restState{}
	s.completeSetLocked(target)
	s.mu.Unlock()
	return true
}

// SkipRest completes the target's set immediately and stops the
// countdown, mirroring the side effect of a natural expiry.
func (s *Session) SkipRest() {
	s.mu.Lock()
	target := s.rest.target
	s.stopRestLocked()
	if target != "" {
		s.completeSetLocked(target)
	}
	s.mu.Unlock()
}

// AddRestTime extends both the remaining time and the configured duration
// by the given seconds, running or not.
func (s *Session) AddRestTime(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rest.target == "" {
		return
	}
	s.rest.remaining += seconds
	s.rest.duration += seconds
}

// StopRest cancels the countdown without completing any set.
func (s *Session) StopRest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopRestLocked()
}

// RestState returns a snapshot of the rest countdown.
func (s *Session) RestState() models.RestTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.RestTimer{
		TargetExerciseID: s.rest.target,
		Remaining:        s.rest.remaining,
		Duration:         s.rest.duration,
		Running:          s.rest.running,
	}
}

func (s *Session) stopRestLocked() {
	if s.rest.cancel != nil {
		close(s.rest.cancel)
	}
	s.rest = restState{}
}
