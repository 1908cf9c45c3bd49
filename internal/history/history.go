// Package history keeps the append-only record of completed workouts and
// derives statistics from it: aggregate totals, streaks, per-exercise
// progression and the weekly grid.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
)

// Service loads and appends completed workout records.
type Service struct {
	kv  store.KV
	log *slog.Logger
}

// NewService creates a history service over the given store.
func NewService(kv store.KV, log *slog.Logger) *Service {
	return &Service{kv: kv, log: log}
}

// Load returns all completed workouts in append order. A missing key or a
// parse failure yields an empty history; the failure is logged.
func (s *Service) Load(ctx context.Context) []models.CompletedWorkout {
	raw, ok, err := s.kv.Get(ctx, store.KeyHistory)
	if err != nil {
		s.log.Warn("reading history failed", "error", err)
		return []models.CompletedWorkout{}
	}
	if !ok {
		return []models.CompletedWorkout{}
	}

	var history []models.CompletedWorkout
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.log.Warn("parsing history failed", "error", err)
		return []models.CompletedWorkout{}
	}
	return history
}

// Append adds one record to the history and persists the whole array.
// Existing records are never touched.
func (s *Service) Append(ctx context.Context, record models.CompletedWorkout) error {
	history := append(s.Load(ctx), record)

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("serializing history: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyHistory, string(data)); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
