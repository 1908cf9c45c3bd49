package models

import "time"

// LiveExercise is a template exercise plus the per-session execution state
// tracked by the session engine. Completed and InProgress are mutually
// exclusive; CompletedSets never exceeds Sets.
type LiveExercise struct {
	Exercise
	CurrentSet      int        `json:"currentSet"`
	CompletedSets   int        `json:"completedSets"`
	Completed       bool       `json:"completed"`
	InProgress      bool       `json:"inProgress"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	CompletedWeight string     `json:"completedWeight,omitempty"`
}

// LiveSession is one timed execution of a template. DefaultRestTime is
// copied from the template at start and stays fixed for the session.
type LiveSession struct {
	ID              string         `json:"id"`
	TemplateID      string         `json:"templateId"`
	Name            string         `json:"name"`
	Date            string         `json:"date"`
	Exercises       []LiveExercise `json:"exercises"`
	Completed       bool           `json:"completed"`
	DefaultRestTime int            `json:"defaultRestTime"`
	StartedAt       time.Time      `json:"startedAt"`
	ElapsedSeconds  int            `json:"elapsedSeconds"`
}

// RestTimer is the state of the single rest countdown of a session.
// TargetExerciseID is empty when no countdown is active.
type RestTimer struct {
	TargetExerciseID string `json:"targetExerciseId,omitempty"`
	Remaining        int    `json:"remaining"`
	Duration         int    `json:"duration"`
	Running          bool   `json:"running"`
}

// Checkpoint is the durable snapshot of an in-flight session. ID holds the
// originating template id; resume rebuilds a fresh session from it.
type Checkpoint struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Exercises       []LiveExercise `json:"exercises"`
	DefaultRestTime int            `json:"defaultRestTime"`
	ElapsedTime     int            `json:"elapsedTime"`
	SavedAt         string         `json:"savedAt"`
}
