// ABOUTME: Cardio mix over a period, by activity type.
// ABOUTME: Each type's share is a whole-number percentage of total seconds.
package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
)

// GetCardioDistribution returns cardio time per activity type for finished
// workouts started in the last days, largest first. A non-positive days uses 30.
func GetCardioDistribution(ctx context.Context, conn db.DBTX, days int) ([]CardioShare, error) {
	since := periodStart(orDefault(days, DefaultDistributionDays))
	rows, err := conn.QueryContext(ctx, `
		SELECT c.activity_type, SUM(c.duration_seconds)
		FROM cardio_activities c
		JOIN workouts w ON w.id = c.workout_id
		WHERE w.finished_at IS NOT NULL AND w.started_at >= ?
		GROUP BY c.activity_type`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query cardio distribution: %w", err)
	}
	defer rows.Close()

	var (
		out   []CardioShare
		total int
	)
	for rows.Next() {
		var (
			kind     string
			duration int
		)
		if err := rows.Scan(&kind, &duration); err != nil {
			return nil, fmt.Errorf("failed to scan cardio share: %w", err)
		}
		t := models.CardioActivityType(kind)
		out = append(out, CardioShare{Type: t, Label: models.ActivityLabel(t), Duration: duration})
		total += duration
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Percentage = calc.Percent(float64(out[i].Duration), float64(total))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Duration != out[j].Duration {
			return out[i].Duration > out[j].Duration
		}
		return out[i].Type < out[j].Type
	})
	if out == nil {
		out = []CardioShare{}
	}
	return out, nil
}
