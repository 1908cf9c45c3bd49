package history

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

const dateLayout = "2006-01-02"

// ComputeStats aggregates the full history relative to today. ThisWeek
// and ThisMonth are rolling windows (last 7 days, last calendar month),
// unlike the fixed window of the weekly view.
func ComputeStats(history []models.CompletedWorkout, today time.Time) models.WorkoutStats {
	if len(history) == 0 {
		return models.WorkoutStats{}
	}

	totalTime := 0
	counts := make(map[string]int)
	for _, w := range history {
		totalTime += w.TotalTimeMinutes
		counts[w.Name]++
	}

	mostFrequent := ""
	best := 0
	for name, n := range counts {
		if n > best {
			best = n
			mostFrequent = name
		}
	}

	weekAgo := today.AddDate(0, 0, -7).Format(dateLayout)
	monthAgo := today.AddDate(0, -1, 0).Format(dateLayout)
	thisWeek, thisMonth := 0, 0
	for _, w := range history {
		if w.Date >= weekAgo {
			thisWeek++
		}
		if w.Date >= monthAgo {
			thisMonth++
		}
	}

	return models.WorkoutStats{
		TotalWorkouts:       len(history),
		TotalTime:           totalTime,
		AverageTime:         int(math.Round(float64(totalTime) / float64(len(history)))),
		MostFrequentWorkout: mostFrequent,
		CurrentStreak:       currentStreak(history, today),
		LongestStreak:       longestStreak(history),
		ThisWeekWorkouts:    thisWeek,
		ThisMonthWorkouts:   thisMonth,
	}
}

// currentStreak counts consecutive days with at least one workout,
// walking backward from today, or from yesterday when today is empty.
func currentStreak(history []models.CompletedWorkout, today time.Time) int {
	dates := distinctDates(history)
	if len(dates) == 0 {
		return 0
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}

	day := today
	if !set[day.Format(dateLayout)] {
		day = day.AddDate(0, 0, -1)
		if !set[day.Format(dateLayout)] {
			return 0
		}
	}

	streak := 0
	for set[day.Format(dateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak scans the sorted distinct dates counting runs of
// consecutive calendar days.
func longestStreak(history []models.CompletedWorkout) int {
	dates := distinctDates(history)
	if len(dates) == 0 {
		return 0
	}

	longest, run := 0, 0
	var prev time.Time
	for i, d := range dates {
		day, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if i > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
		prev = day
	}
	if run > longest {
		longest = run
	}
	return longest
}

func distinctDates(history []models.CompletedWorkout) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, w := range history {
		if !seen[w.Date] {
			seen[w.Date] = true
			dates = append(dates, w.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

// ComputeExerciseProgress groups exercise results by name across all
// records and derives per-exercise progression, sorted by occurrence
// count descending.
func ComputeExerciseProgress(history []models.CompletedWorkout) []models.ExerciseProgress {
	byName := make(map[string]*models.ExerciseProgress)
	var order []string

	for _, w := range history {
		for _, ex := range w.Exercises {
			p, ok := byName[ex.Name]
			if !ok {
				p = &models.ExerciseProgress{Name: ex.Name}
				byName[ex.Name] = p
				order = append(order, ex.Name)
			}

			weight := ex.CompletedWeight
			if weight == "" {
				weight = ex.TargetWeight
			}
			p.History = append(p.History, models.ProgressPoint{
				Date:          w.Date,
				Weight:        weight,
				Sets:          ex.Sets,
				CompletedSets: ex.CompletedSets,
			})
			p.TotalWorkouts++
		}
	}

	progress := make([]models.ExerciseProgress, 0, len(order))
	for _, name := range order {
		p := byName[name]
		sort.SliceStable(p.History, func(i, j int) bool {
			return p.History[i].Date < p.History[j].Date
		})

		var first, last float64
		for i, point := range p.History {
			w := ParseWeight(point.Weight)
			if w > p.MaxWeight {
				p.MaxWeight = w
			}
			if i == 0 {
				first = w
			}
			last = w
		}
		p.LastWeight = last
		if first > 0 {
			p.Improvement = int(math.Round((last - first) / first * 100))
		}
		progress = append(progress, *p)
	}

	sort.SliceStable(progress, func(i, j int) bool {
		return progress[i].TotalWorkouts > progress[j].TotalWorkouts
	})
	return progress
}

// ParseWeight reduces a free-text weight like "80kg" or "12kg cada braço"
// to its leading numeric value. Strings without a leading number parse
// as 0; units are ignored entirely.
func ParseWeight(s string) float64 {
	end := 0
	sawDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !sawDot && end > 0 {
			sawDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}

	value, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return value
}
