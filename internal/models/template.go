package models

// Exercise is one entry in a workout template. Targets are what the user
// plans to do; actual performance is recorded per session.
type Exercise struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	MuscleGroup      string `json:"muscleGroup"`
	Instructions     string `json:"instructions"`
	Sets             int    `json:"sets"`
	Reps             int    `json:"reps"`
	Weight           string `json:"weight"`
	ProgressionNotes string `json:"progressionNotes"`
}

// WorkoutTemplate is a reusable, user-authored workout definition.
// Exercise order is significant for display and is preserved through
// serialization.
type WorkoutTemplate struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Exercises       []Exercise `json:"exercises"`
	EstimatedTime   int        `json:"estimatedTime"`
	DefaultRestTime int        `json:"defaultRestTime"`
}

// Template field bounds enforced by the repository.
const (
	MinSets = 1
	MaxSets = 20
	MinReps = 1
	MaxReps = 100

	DefaultSets          = 3
	DefaultReps          = 12
	DefaultRestSeconds   = 60
	DefaultEstimatedTime = 30
)
