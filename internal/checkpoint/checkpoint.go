// Package checkpoint persists the single in-flight session snapshot so a
// workout can resume after the app is closed. At most one checkpoint
// exists; each save overwrites the previous one wholesale.
package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
)

// Store reads and writes the checkpoint key.
type Store struct {
	kv  store.KV
	log *slog.Logger
}

// NewStore creates a checkpoint store over the given KV backend.
func NewStore(kv store.KV, log *slog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Save writes the checkpoint, replacing any previous one.
func (s *Store) Save(ctx context.Context, cp models.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("serializing checkpoint: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyProgress, string(data)); err != nil {
		return fmt.Errorf("saving checkpoint: %w", err)
	}
	return nil
}

// Load returns the stored checkpoint, or nil when none exists. A
// malformed checkpoint is treated as absent, not as an error.
func (s *Store) Load(ctx context.Context) *models.Checkpoint {
	raw, ok, err := s.kv.Get(ctx, store.KeyProgress)
	if err != nil {
		s.log.Warn("reading checkpoint failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var cp models.Checkpoint
	if err := json.Unmarshal([]byte(raw), &cp); err != nil {
		s.log.Warn("parsing checkpoint failed", "error", err)
		return nil
	}
	return &cp
}

// Clear removes the checkpoint. Called when a session is completed,
// abandoned or superseded.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, store.KeyProgress); err != nil {
		return fmt.Errorf("clearing checkpoint: %w", err)
	}
	return nil
}
