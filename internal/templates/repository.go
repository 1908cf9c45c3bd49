// Package templates implements CRUD over workout templates. Every mutation
// loads the full list, applies a pure transformation and saves the whole
// list back; there is no incremental persistence.
package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
	"github.com/google/uuid"
)

var (
	// ErrValidation marks user-facing field constraint violations. The
	// wrapped message names the violated constraint.
	ErrValidation = errors.New("validation error")

	// ErrTemplateNotFound is returned when a template id does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrExerciseNotFound is returned when an exercise id does not exist
	// within the addressed template.
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Repository manages the persisted template list.
type Repository struct {
	kv  store.KV
	log *slog.Logger
}

// NewRepository creates a Repository over the given store.
func NewRepository(kv store.KV, log *slog.Logger) *Repository {
	return &Repository{kv: kv, log: log}
}

// List returns all templates in insertion order. A missing key or a parse
// failure yields an empty list; the failure is logged, never fatal.
func (r *Repository) List(ctx context.Context) []models.WorkoutTemplate {
	raw, ok, err := r.kv.Get(ctx, store.KeyTemplates)
	if err != nil {
		r.log.Warn("reading templates failed", "error", err)
		return []models.WorkoutTemplate{}
	}
	if !ok {
		return []models.WorkoutTemplate{}
	}

	var list []models.WorkoutTemplate
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		r.log.Warn("parsing templates failed", "error", err)
		return []models.WorkoutTemplate{}
	}

	for i := range list {
		normalize(&list[i])
	}
	return list
}

// Get returns the template with the given id.
func (r *Repository) Get(ctx context.Context, id string) (models.WorkoutTemplate, error) {
	for _, t := range r.List(ctx) {
		if t.ID == id {
			return t, nil
		}
	}
	return models.WorkoutTemplate{}, ErrTemplateNotFound
}

// Save serializes the full list and overwrites the persisted key.
func (r *Repository) Save(ctx context.Context, list []models.WorkoutTemplate) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("serializing templates: %w", err)
	}
	if err := r.kv.Set(ctx, store.KeyTemplates, string(data)); err != nil {
		return fmt.Errorf("saving templates: %w", err)
	}
	return nil
}

// Create validates and appends a new template, returning it with its
// generated id.
func (r *Repository) Create(ctx context.Context, name, description string, defaultRestTime int) (models.WorkoutTemplate, error) {
	if name == "" {
		return models.WorkoutTemplate{}, fmt.Errorf("%w: template name is required", ErrValidation)
	}
	if defaultRestTime <= 0 {
		defaultRestTime = models.DefaultRestSeconds
	}

	t := models.WorkoutTemplate{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     description,
		Exercises:       []models.Exercise{},
		EstimatedTime:   models.DefaultEstimatedTime,
		DefaultRestTime: defaultRestTime,
	}

	list := append(r.List(ctx), t)
	if err := r.Save(ctx, list); err != nil {
		return models.WorkoutTemplate{}, err
	}
	return t, nil
}

// Update edits a template's metadata. Exercises are untouched.
func (r *Repository) Update(ctx context.Context, id, name, description string, defaultRestTime, estimatedTime int) (models.WorkoutTemplate, error) {
	if name == "" {
		return models.WorkoutTemplate{}, fmt.Errorf("%w: template name is required", ErrValidation)
	}

	var updated models.WorkoutTemplate
	err := r.transform(ctx, id, func(t *models.WorkoutTemplate) error {
		t.Name = name
		t.Description = description
		if defaultRestTime > 0 {
			t.DefaultRestTime = defaultRestTime
		}
		if estimatedTime > 0 {
			t.EstimatedTime = estimatedTime
		}
		updated = *t
		return nil
	})
	return updated, err
}

// Delete removes a template.
func (r *Repository) Delete(ctx context.Context, id string) error {
	list := r.List(ctx)
	kept := list[:0]
	found := false
	for _, t := range list {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrTemplateNotFound
	}
	return r.Save(ctx, kept)
}

// AddExercise validates and appends an exercise to a template, returning
// it with its generated id.
func (r *Repository) AddExercise(ctx context.Context, templateID string, ex models.Exercise) (models.Exercise, error) {
	if err := validateExercise(ex); err != nil {
		return models.Exercise{}, err
	}
	ex.ID = uuid.New().String()

	err := r.transform(ctx, templateID, func(t *models.WorkoutTemplate) error {
		t.Exercises = append(t.Exercises, ex)
		return nil
	})
	if err != nil {
		return models.Exercise{}, err
	}
	return ex, nil
}

// UpdateExercise replaces the fields of an existing exercise, keeping its
// id and position.
func (r *Repository) UpdateExercise(ctx context.Context, templateID, exerciseID string, ex models.Exercise) (models.Exercise, error) {
	if err := validateExercise(ex); err != nil {
		return models.Exercise{}, err
	}
	ex.ID = exerciseID

	err := r.transform(ctx, templateID, func(t *models.WorkoutTemplate) error {
		for i := range t.Exercises {
			if t.Exercises[i].ID == exerciseID {
				t.Exercises[i] = ex
				return nil
			}
		}
		return ErrExerciseNotFound
	})
	if err != nil {
		return models.Exercise{}, err
	}
	return ex, nil
}

// RemoveExercise deletes an exercise from a template.
func (r *Repository) RemoveExercise(ctx context.Context, templateID, exerciseID string) error {
	return r.transform(ctx, templateID, func(t *models.WorkoutTemplate) error {
		for i := range t.Exercises {
			if t.Exercises[i].ID == exerciseID {
				t.Exercises = append(t.Exercises[:i], t.Exercises[i+1:]...)
				return nil
			}
		}
		return ErrExerciseNotFound
	})
}

// transform applies fn to the addressed template and saves the whole list.
// fn returning an error aborts without writing.
func (r *Repository) transform(ctx context.Context, templateID string, fn func(*models.WorkoutTemplate) error) error {
	list := r.List(ctx)
	for i := range list {
		if list[i].ID == templateID {
			if err := fn(&list[i]); err != nil {
				return err
			}
			return r.Save(ctx, list)
		}
	}
	return ErrTemplateNotFound
}

func validateExercise(ex models.Exercise) error {
	if ex.Name == "" {
		return fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if ex.Sets < models.MinSets || ex.Sets > models.MaxSets {
		return fmt.Errorf("%w: sets must be between %d and %d", ErrValidation, models.MinSets, models.MaxSets)
	}
	if ex.Reps < models.MinReps || ex.Reps > models.MaxReps {
		return fmt.Errorf("%w: reps must be between %d and %d", ErrValidation, models.MinReps, models.MaxReps)
	}
	return nil
}

// normalize fills in fields older persisted records may lack. Applying it
// to a complete record changes nothing.
func normalize(t *models.WorkoutTemplate) {
	if t.DefaultRestTime == 0 {
		t.DefaultRestTime = models.DefaultRestSeconds
	}
	for i := range t.Exercises {
		ex := &t.Exercises[i]
		if ex.Sets == 0 {
			ex.Sets = models.DefaultSets
		}
		if ex.Reps == 0 {
			ex.Reps = models.DefaultReps
		}
	}
}
