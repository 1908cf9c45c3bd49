package models

// ExerciseResult is the per-exercise outcome recorded in a completed
// workout.
type ExerciseResult struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Sets            int    `json:"sets"`
	Reps            int    `json:"reps"`
	TargetWeight    string `json:"targetWeight,omitempty"`
	CompletedWeight string `json:"completedWeight,omitempty"`
	CompletedSets   int    `json:"completedSets"`
	Notes           string `json:"notes,omitempty"`
}

// CompletedWorkout is the immutable history entry produced when a session
// finishes. Records are append-only and never mutated in place.
type CompletedWorkout struct {
	ID               string           `json:"id"`
	TemplateID       string           `json:"templateId"`
	Name             string           `json:"name"`
	Date             string           `json:"date"`
	StartTime        string           `json:"startTime"`
	EndTime          string           `json:"endTime"`
	TotalTimeMinutes int              `json:"totalTimeMinutes"`
	Exercises        []ExerciseResult `json:"exercises"`
}

// WorkoutStats are aggregate statistics over the full history.
type WorkoutStats struct {
	TotalWorkouts       int    `json:"totalWorkouts"`
	TotalTime           int    `json:"totalTime"`
	AverageTime         int    `json:"averageTimePerWorkout"`
	MostFrequentWorkout string `json:"mostFrequentWorkout"`
	CurrentStreak       int    `json:"currentStreak"`
	LongestStreak       int    `json:"longestStreak"`
	ThisWeekWorkouts    int    `json:"thisWeekWorkouts"`
	ThisMonthWorkouts   int    `json:"thisMonthWorkouts"`
}

// ProgressPoint is one historical observation of an exercise.
type ProgressPoint struct {
	Date          string `json:"date"`
	Weight        string `json:"weight"`
	Sets          int    `json:"sets"`
	CompletedSets int    `json:"completedSets"`
}

// ExerciseProgress is the per-exercise progression derived from history,
// keyed by exercise name across all records.
type ExerciseProgress struct {
	Name          string          `json:"name"`
	History       []ProgressPoint `json:"history"`
	MaxWeight     float64         `json:"maxWeight"`
	LastWeight    float64         `json:"lastWeight"`
	TotalWorkouts int             `json:"totalWorkouts"`
	Improvement   int             `json:"improvement"`
}

// WeekDay is one cell of the weekly grid.
type WeekDay struct {
	Date       string             `json:"date"`
	Weekday    string             `json:"weekday"`
	Workouts   []CompletedWorkout `json:"workouts"`
	HasWorkout bool               `json:"hasWorkout"`
	IsToday    bool               `json:"isToday"`
}

// WeeklyStats is the Sunday-start seven-day view for a given week offset.
// Totals cover only the requested window, unlike the rolling counts in
// WorkoutStats.
type WeeklyStats struct {
	Title         string    `json:"title"`
	Days          []WeekDay `json:"days"`
	TotalWorkouts int       `json:"totalWorkouts"`
	TotalMinutes  int       `json:"totalMinutes"`
	CurrentStreak int       `json:"currentStreak"`
}
