package history

import (
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func workoutOn(date, name string, minutes int) models.CompletedWorkout {
	return models.CompletedWorkout{
		ID:               "w-" + date + "-" + name,
		Name:             name,
		Date:             date,
		TotalTimeMinutes: minutes,
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.Now())
	if stats != (models.WorkoutStats{}) {
		t.Errorf("stats = %+v, want zero value", stats)
	}
}

func TestComputeStatsTotals(t *testing.T) {
	today := day(t, "2026-03-18")
	history := []models.CompletedWorkout{
		workoutOn("2026-03-01", "Push Day", 40),
		workoutOn("2026-03-10", "Pull Day", 50),
		workoutOn("2026-03-17", "Push Day", 45),
	}

	stats := ComputeStats(history, today)
	if stats.TotalWorkouts != 3 {
		t.Errorf("totalWorkouts = %d, want 3", stats.TotalWorkouts)
	}
	if stats.TotalTime != 135 {
		t.Errorf("totalTime = %d, want 135", stats.TotalTime)
	}
	if stats.AverageTime != 45 {
		t.Errorf("averageTime = %d, want 45", stats.AverageTime)
	}
	if stats.MostFrequentWorkout != "Push Day" {
		t.Errorf("mostFrequent = %q, want Push Day", stats.MostFrequentWorkout)
	}
}

func TestComputeStatsAverageRounds(t *testing.T) {
	today := day(t, "2026-03-18")
	history := []models.CompletedWorkout{
		workoutOn("2026-03-01", "A", 40),
		workoutOn("2026-03-02", "A", 45),
	}

	// 85/2 = 42.5 rounds to 43.
	if got := ComputeStats(history, today).AverageTime; got != 43 {
		t.Errorf("averageTime = %d, want 43", got)
	}
}

func TestComputeStatsRollingWindows(t *testing.T) {
	today := day(t, "2026-03-18")
	history := []models.CompletedWorkout{
		workoutOn("2026-02-10", "A", 30), // outside both windows
		workoutOn("2026-02-20", "A", 30), // this month only
		workoutOn("2026-03-11", "A", 30), // exactly seven days back, counts
		workoutOn("2026-03-17", "A", 30),
		workoutOn("2026-03-18", "A", 30),
	}

	stats := ComputeStats(history, today)
	if stats.ThisWeekWorkouts != 3 {
		t.Errorf("thisWeek = %d, want 3", stats.ThisWeekWorkouts)
	}
	if stats.ThisMonthWorkouts != 4 {
		t.Errorf("thisMonth = %d, want 4", stats.ThisMonthWorkouts)
	}
}

// TestCurrentStreak covers the anchor rules: records on today, today-1 and
// today-2 with a gap at today-3 make a streak of 3, a today-only gap still
// anchors at yesterday, and a two-day gap breaks the streak.
func TestCurrentStreak(t *testing.T) {
	today := day(t, "2026-03-18")
	history := []models.CompletedWorkout{
		workoutOn("2026-03-18", "A", 30),
		workoutOn("2026-03-17", "A", 30),
		workoutOn("2026-03-16", "A", 30),
		workoutOn("2026-03-14", "A", 30), // gap at 03-15 ends the walk
	}
	if got := currentStreak(history, today); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}

	// No workout today yet: the streak anchored at yesterday survives.
	noToday := history[1:]
	if got := currentStreak(noToday, today); got != 2 {
		t.Errorf("streak without today = %d, want 2", got)
	}

	// Latest record two days back: streak is over.
	stale := history[2:]
	if got := currentStreak(stale, today); got != 0 {
		t.Errorf("stale streak = %d, want 0", got)
	}

	if got := currentStreak(nil, today); got != 0 {
		t.Errorf("empty streak = %d, want 0", got)
	}
}

// TestCurrentStreakDuplicateDates verifies two workouts on the same day
// count as one streak day.
func TestCurrentStreakDuplicateDates(t *testing.T) {
	today := day(t, "2026-03-18")
	history := []models.CompletedWorkout{
		workoutOn("2026-03-18", "A", 30),
		workoutOn("2026-03-18", "B", 30),
		workoutOn("2026-03-17", "A", 30),
	}
	if got := currentStreak(history, today); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

func TestLongestStreak(t *testing.T) {
	history := []models.CompletedWorkout{
		// A run of 2, then a gap, then a run of 4.
		workoutOn("2026-01-05", "A", 30),
		workoutOn("2026-01-06", "A", 30),
		workoutOn("2026-02-01", "A", 30),
		workoutOn("2026-02-02", "A", 30),
		workoutOn("2026-02-02", "B", 30), // duplicate date
		workoutOn("2026-02-03", "A", 30),
		workoutOn("2026-02-04", "A", 30),
	}
	if got := longestStreak(history); got != 4 {
		t.Errorf("longest = %d, want 4", got)
	}
	if got := longestStreak(nil); got != 0 {
		t.Errorf("empty longest = %d, want 0", got)
	}
}

func TestParseWeight(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"80kg", 80},
		{"12kg cada braço", 12},
		{"22.5kg", 22.5},
		{"100", 100},
		{"15.", 15},
		{"bodyweight", 0},
		{"", 0},
		{".5", 0},    // no leading digit
		{"1.2.3", 1.2}, // second dot ends the number
	}
	for _, tc := range cases {
		if got := ParseWeight(tc.in); got != tc.want {
			t.Errorf("ParseWeight(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// TestExerciseProgressImprovement checks the first-to-last improvement
// percentage: 50kg then 60kg is a 20 percent gain.
func TestExerciseProgressImprovement(t *testing.T) {
	history := []models.CompletedWorkout{
		{
			Date: "2026-03-01",
			Exercises: []models.ExerciseResult{
				{Name: "Bench Press", Sets: 3, CompletedSets: 3, CompletedWeight: "50kg"},
			},
		},
		{
			Date: "2026-03-08",
			Exercises: []models.ExerciseResult{
				{Name: "Bench Press", Sets: 3, CompletedSets: 3, CompletedWeight: "60kg"},
			},
		},
	}

	progress := ComputeExerciseProgress(history)
	if len(progress) != 1 {
		t.Fatalf("progress = %d entries, want 1", len(progress))
	}
	p := progress[0]
	if p.Improvement != 20 {
		t.Errorf("improvement = %d, want 20", p.Improvement)
	}
	if p.MaxWeight != 60 || p.LastWeight != 60 {
		t.Errorf("maxWeight=%v lastWeight=%v, want 60/60", p.MaxWeight, p.LastWeight)
	}
	if p.TotalWorkouts != 2 {
		t.Errorf("totalWorkouts = %d, want 2", p.TotalWorkouts)
	}
}

// TestExerciseProgressFallbackWeight verifies the target weight stands in
// when no completed weight was recorded.
func TestExerciseProgressFallbackWeight(t *testing.T) {
	history := []models.CompletedWorkout{
		{
			Date: "2026-03-01",
			Exercises: []models.ExerciseResult{
				{Name: "Squat", TargetWeight: "100kg"},
			},
		},
	}

	progress := ComputeExerciseProgress(history)
	if progress[0].History[0].Weight != "100kg" {
		t.Errorf("weight = %q, want target weight fallback", progress[0].History[0].Weight)
	}
	if progress[0].MaxWeight != 100 {
		t.Errorf("maxWeight = %v, want 100", progress[0].MaxWeight)
	}
}

// TestExerciseProgressOrdering verifies per-exercise history is
// chronological even when records arrive out of order, and that exercises
// sort by workout count descending.
func TestExerciseProgressOrdering(t *testing.T) {
	history := []models.CompletedWorkout{
		{
			Date: "2026-03-10",
			Exercises: []models.ExerciseResult{
				{Name: "Row", CompletedWeight: "70kg"},
			},
		},
		{
			Date: "2026-03-01",
			Exercises: []models.ExerciseResult{
				{Name: "Row", CompletedWeight: "60kg"},
				{Name: "Curl", CompletedWeight: "20kg"},
			},
		},
		{
			Date: "2026-03-05",
			Exercises: []models.ExerciseResult{
				{Name: "Row", CompletedWeight: "65kg"},
			},
		},
	}

	progress := ComputeExerciseProgress(history)
	if len(progress) != 2 {
		t.Fatalf("progress = %d entries, want 2", len(progress))
	}
	if progress[0].Name != "Row" || progress[1].Name != "Curl" {
		t.Fatalf("order = %q,%q, want Row first (more workouts)", progress[0].Name, progress[1].Name)
	}

	row := progress[0]
	for i := 1; i < len(row.History); i++ {
		if row.History[i-1].Date > row.History[i].Date {
			t.Fatalf("history not chronological: %+v", row.History)
		}
	}
	// Improvement measured first to last chronologically: 60 to 70.
	if row.Improvement != 17 {
		t.Errorf("improvement = %d, want 17", row.Improvement)
	}
}

// TestExerciseProgressZeroFirstWeight verifies no improvement is computed
// when the first observation has no parseable weight.
func TestExerciseProgressZeroFirstWeight(t *testing.T) {
	history := []models.CompletedWorkout{
		{Date: "2026-03-01", Exercises: []models.ExerciseResult{{Name: "Plank"}}},
		{Date: "2026-03-08", Exercises: []models.ExerciseResult{{Name: "Plank", CompletedWeight: "10kg"}}},
	}

	if got := ComputeExerciseProgress(history)[0].Improvement; got != 0 {
		t.Errorf("improvement = %d, want 0 when first weight is 0", got)
	}
}
