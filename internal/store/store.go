// Package store provides the key/value persistence layer. All application
// state lives as JSON strings under well-known keys; backends only need
// get/set/remove semantics.
package store

import "context"

// Keys under which application state is persisted.
const (
	KeyTemplates = "workout_templates"
	KeyProgress  = "workout_progress"
	KeyHistory   = "completed_workouts"
)

// KV is the abstract string-keyed store the application is built on.
// Get returns ok=false when the key is absent; absence is not an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
