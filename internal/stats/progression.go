// ABOUTME: Per-exercise history: e1RM progression and the list of logged names.
// ABOUTME: Progression keeps the best estimated 1RM per calendar day.
package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
)

// GetE1RMProgression returns the best e1RM per UTC day for the exercise over
// the last days, oldest first. A non-positive days uses 90.
func GetE1RMProgression(ctx context.Context, conn db.DBTX, exerciseName string, days int) ([]ProgressPoint, error) {
	since := periodStart(orDefault(days, DefaultProgressionDays))
	rows, err := conn.QueryContext(ctx, `
		SELECT substr(w.started_at, 1, 10), s.weight, s.reps
		FROM sets s
		JOIN exercises e ON e.id = s.exercise_id
		JOIN workouts w ON w.id = e.workout_id
		WHERE lower(trim(e.name)) = ?
		  AND w.finished_at IS NOT NULL
		  AND w.started_at >= ?
		  AND s.weight > 0`,
		models.NormalizeExerciseName(exerciseName), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query progression: %w", err)
	}
	defer rows.Close()

	best := map[string]float64{}
	for rows.Next() {
		var (
			date   string
			weight float64
			reps   int
		)
		if err := rows.Scan(&date, &weight, &reps); err != nil {
			return nil, fmt.Errorf("failed to scan progression set: %w", err)
		}
		if e := calc.CalculateE1RM(weight, reps); e > best[date] {
			best[date] = e
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]ProgressPoint, 0, len(best))
	for date, e := range best {
		if e > 0 {
			out = append(out, ProgressPoint{Date: date, E1RM: e})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// GetExercisesList returns the distinct exercise names used in finished workouts.
func GetExercisesList(ctx context.Context, conn db.DBTX) ([]string, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT DISTINCT e.name FROM exercises e
		WHERE e.workout_id IN (SELECT id FROM workouts WHERE finished_at IS NOT NULL)
		ORDER BY e.name COLLATE NOCASE, e.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan exercise name: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
