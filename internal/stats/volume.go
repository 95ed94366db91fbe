// ABOUTME: Period totals over qualifying finished workouts.
// ABOUTME: Strength and cardio qualify independently; a mixed workout counts for both.
package stats

import (
	"context"
	"fmt"
	"math"

	"github.com/harperreed/gym/internal/db"
)

// strengthWorkouts selects finished workouts with at least one weighted set.
// Binds: since, since ("" means all time).
const strengthWorkouts = `
	WITH qualifying AS (
		SELECT DISTINCT w.id, w.started_at
		FROM workouts w
		JOIN exercises e ON e.workout_id = w.id
		JOIN sets s ON s.exercise_id = e.id
		WHERE w.finished_at IS NOT NULL
		  AND s.weight > 0
		  AND (? = '' OR w.started_at >= ?)
	)`

// cardioWorkouts selects finished workouts with at least one cardio activity.
// Binds: since, since ("" means all time).
const cardioWorkouts = `
	WITH qualifying AS (
		SELECT DISTINCT w.id, w.started_at
		FROM workouts w
		JOIN cardio_activities c ON c.workout_id = w.id
		WHERE w.finished_at IS NOT NULL
		  AND (? = '' OR w.started_at >= ?)
	)`

// GetTotalStrengthVolume sums weight x reps over strength workouts started in
// the last days, rounded. A non-positive days covers all time.
func GetTotalStrengthVolume(ctx context.Context, conn db.DBTX, days int) (float64, error) {
	since := periodStart(days)
	var volume float64
	err := conn.QueryRowContext(ctx, strengthWorkouts+`
		SELECT COALESCE(SUM(s.weight * s.reps), 0)
		FROM sets s
		JOIN exercises e ON e.id = s.exercise_id
		WHERE e.workout_id IN (SELECT id FROM qualifying) AND s.weight > 0`,
		since, since).Scan(&volume)
	if err != nil {
		return 0, fmt.Errorf("failed to sum strength volume: %w", err)
	}
	return math.Round(volume), nil
}

// GetStrengthWorkoutCount counts strength workouts started in the last days.
func GetStrengthWorkoutCount(ctx context.Context, conn db.DBTX, days int) (int, error) {
	return countQualifying(ctx, conn, strengthWorkouts, days)
}

// GetCardioWorkoutCount counts cardio workouts started in the last days.
func GetCardioWorkoutCount(ctx context.Context, conn db.DBTX, days int) (int, error) {
	return countQualifying(ctx, conn, cardioWorkouts, days)
}

func countQualifying(ctx context.Context, conn db.DBTX, cte string, days int) (int, error) {
	since := periodStart(days)
	var n int
	if err := conn.QueryRowContext(ctx, cte+` SELECT COUNT(*) FROM qualifying`, since, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count workouts: %w", err)
	}
	return n, nil
}

// GetTotalCardioDuration sums cardio seconds over cardio workouts started in the last days.
func GetTotalCardioDuration(ctx context.Context, conn db.DBTX, days int) (int, error) {
	return sumCardio(ctx, conn, "c.duration_seconds", days)
}

// GetTotalCardioCalories sums recorded calories over cardio workouts started in the last days.
func GetTotalCardioCalories(ctx context.Context, conn db.DBTX, days int) (int, error) {
	return sumCardio(ctx, conn, "c.calories_burned", days)
}

// sumCardio totals one numeric cardio column. column is a fixed identifier.
func sumCardio(ctx context.Context, conn db.DBTX, column string, days int) (int, error) {
	since := periodStart(days)
	var total int
	err := conn.QueryRowContext(ctx, cardioWorkouts+`
		SELECT COALESCE(SUM(`+column+`), 0)
		FROM cardio_activities c
		WHERE c.workout_id IN (SELECT id FROM qualifying)`,
		since, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum cardio: %w", err)
	}
	return total, nil
}
