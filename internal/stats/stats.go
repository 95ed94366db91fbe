// ABOUTME: Statistics engine over the gym tables.
// ABOUTME: Shared period helpers and the result types returned to consumers.
package stats

import (
	"time"

	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/models"
)

// Default windows used when a caller passes a non-positive period.
const (
	DefaultDistributionDays = 30
	DefaultRecentPRDays     = 30
	DefaultWeeks            = 8
	DefaultProgressionDays  = 90
)

// now is the clock used for period boundaries and PR timestamps.
var now = time.Now

// periodStart returns the lower started_at bound for a window of days, or ""
// for all time.
func periodStart(days int) string {
	if days <= 0 {
		return ""
	}
	return calc.DaysAgo(now(), days)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// MuscleVolume is one muscle group's share of lifted volume.
type MuscleVolume struct {
	Muscle     string  `json:"muscle"`
	Volume     float64 `json:"volume"`
	Percentage int     `json:"percentage"`
}

// CardioShare is one activity type's share of cardio time.
type CardioShare struct {
	Type       models.CardioActivityType `json:"type"`
	Label      string                    `json:"label"`
	Duration   int                       `json:"duration"`
	Percentage int                       `json:"percentage"`
}

// WeeklyCount is the number of qualifying workouts started in a week.
type WeeklyCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// WeeklyMinutes is the cardio minutes logged in a week.
type WeeklyMinutes struct {
	Week    string `json:"week"`
	Minutes int    `json:"minutes"`
}

// ProgressPoint is the best estimated 1RM for an exercise on one day.
type ProgressPoint struct {
	Date string  `json:"date"`
	E1RM float64 `json:"e1rm"`
}

// LastSession summarizes the most recently finished workout.
type LastSession struct {
	WorkoutID       int64     `json:"workout_id"`
	Name            string    `json:"name"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Volume          float64   `json:"volume"`
	Exercises       int       `json:"exercises"`
}

// DashboardStats is the home screen summary.
type DashboardStats struct {
	LastSession     *LastSession `json:"last_session"`
	SessionsPerWeek int          `json:"sessions_per_week"`
	WorkoutDays     int          `json:"workout_days"`
	CycleDays       int          `json:"cycle_days"`
	Streak          int          `json:"streak"`
}
