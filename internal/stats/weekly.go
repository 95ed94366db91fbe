// ABOUTME: Weekly series for history charts, bucketed by Monday week start.
// ABOUTME: Only weeks with activity are returned, in chronological order.
package stats

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
)

// GetWeeklyStrengthWorkouts counts strength workouts per week over the last
// weeks. A non-positive weeks uses 8.
func GetWeeklyStrengthWorkouts(ctx context.Context, conn db.DBTX, weeks int) ([]WeeklyCount, error) {
	since := periodStart(orDefault(weeks, DefaultWeeks) * 7)
	rows, err := conn.QueryContext(ctx, strengthWorkouts+` SELECT started_at FROM qualifying`, since, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly workouts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var startedAt string
		if err := rows.Scan(&startedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workout start: %w", err)
		}
		t, err := calc.ParseTimestamp(startedAt)
		if err != nil {
			return nil, err
		}
		counts[calc.WeekStart(t)]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]WeeklyCount, 0, len(counts))
	for week, n := range counts {
		out = append(out, WeeklyCount{Week: week, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

// GetWeeklyCardioMinutes sums cardio minutes per week over the last weeks.
// A non-positive weeks uses 8.
func GetWeeklyCardioMinutes(ctx context.Context, conn db.DBTX, weeks int) ([]WeeklyMinutes, error) {
	since := periodStart(orDefault(weeks, DefaultWeeks) * 7)
	rows, err := conn.QueryContext(ctx, `
		SELECT w.started_at, c.duration_seconds
		FROM cardio_activities c
		JOIN workouts w ON w.id = c.workout_id
		WHERE w.finished_at IS NOT NULL AND w.started_at >= ?`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly cardio: %w", err)
	}
	defer rows.Close()

	seconds := map[string]int{}
	for rows.Next() {
		var (
			startedAt string
			duration  int
		)
		if err := rows.Scan(&startedAt, &duration); err != nil {
			return nil, fmt.Errorf("failed to scan cardio duration: %w", err)
		}
		t, err := calc.ParseTimestamp(startedAt)
		if err != nil {
			return nil, err
		}
		seconds[calc.WeekStart(t)] += duration
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]WeeklyMinutes, 0, len(seconds))
	for week, s := range seconds {
		out = append(out, WeeklyMinutes{Week: week, Minutes: int(math.Round(float64(s) / 60))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}
