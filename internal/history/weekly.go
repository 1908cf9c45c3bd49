package history

import (
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// ComputeWeeklyView builds the Sunday-start seven-day grid for the week
// at the given offset from the current week. Totals cover only the
// requested window; the rolling counts live in ComputeStats.
func ComputeWeeklyView(history []models.CompletedWorkout, weekOffset int, today time.Time) models.WeeklyStats {
	base := today.AddDate(0, 0, 7*weekOffset)
	weekStart := base.AddDate(0, 0, -int(base.Weekday()))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())

	byDate := make(map[string][]models.CompletedWorkout)
	for _, w := range history {
		byDate[w.Date] = append(byDate[w.Date], w)
	}

	todayStr := today.Format(dateLayout)
	days := make([]models.WeekDay, 7)
	totalWorkouts, totalMinutes := 0, 0
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		date := day.Format(dateLayout)
		workouts := byDate[date]
		for _, w := range workouts {
			totalMinutes += w.TotalTimeMinutes
		}
		totalWorkouts += len(workouts)

		days[i] = models.WeekDay{
			Date:       date,
			Weekday:    day.Weekday().String(),
			Workouts:   workouts,
			HasWorkout: len(workouts) > 0,
			IsToday:    date == todayStr,
		}
	}

	return models.WeeklyStats{
		Title:         weekTitle(weekOffset, weekStart),
		Days:          days,
		TotalWorkouts: totalWorkouts,
		TotalMinutes:  totalMinutes,
		CurrentStreak: currentStreak(history, today),
	}
}

func weekTitle(offset int, weekStart time.Time) string {
	switch offset {
	case 0:
		return "This Week"
	case -1:
		return "Last Week"
	case 1:
		return "Next Week"
	}
	weekEnd := weekStart.AddDate(0, 0, 6)
	return fmt.Sprintf("%s to %s", weekStart.Format("Jan 2"), weekEnd.Format("Jan 2, 2006"))
}
