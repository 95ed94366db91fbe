// ABOUTME: Dashboard summary: last session, weekly frequency and streak.
// ABOUTME: Frequency follows the active program's cycle when one is set.
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
)

// DefaultSessionName is shown for a finished workout without a note.
const DefaultSessionName = "Workout Session"

// GetDashboardStats composes the last session, sessions per week and the streak.
func GetDashboardStats(ctx context.Context, conn db.DBTX) (*DashboardStats, error) {
	out := &DashboardStats{}

	last, err := lastSession(ctx, conn)
	if err != nil {
		return nil, err
	}
	out.LastSession = last

	program, err := db.GetActiveProgram(ctx, conn)
	if err != nil {
		return nil, err
	}
	if program != nil {
		out.WorkoutDays = program.WorkoutDayCount()
		out.CycleDays = len(program.Days)
		out.SessionsPerWeek = out.WorkoutDays
	} else {
		weekAgo := calc.FormatTimestamp(now().AddDate(0, 0, -7))
		var n int
		err := conn.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM workouts WHERE finished_at >= ?`, weekAgo).Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("failed to count recent workouts: %w", err)
		}
		out.SessionsPerWeek = n
		out.WorkoutDays = n
		out.CycleDays = 7
	}

	dates, err := finishedDates(ctx, conn)
	if err != nil {
		return nil, err
	}
	out.Streak = ComputeStreak(dates, now())

	return out, nil
}

func lastSession(ctx context.Context, conn db.DBTX) (*LastSession, error) {
	var id int64
	err := conn.QueryRowContext(ctx, `
		SELECT id FROM workouts
		WHERE finished_at IS NOT NULL
		ORDER BY finished_at DESC, id DESC
		LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last workout: %w", err)
	}

	detail, err := db.GetWorkoutWithExercises(ctx, conn, id)
	if err != nil || detail == nil {
		return nil, err
	}

	name := DefaultSessionName
	if detail.HasNote() {
		name = *detail.Note
	}
	return &LastSession{
		WorkoutID:       detail.ID,
		Name:            name,
		Date:            *detail.FinishedAt,
		DurationMinutes: int(math.Round(detail.Duration().Minutes())),
		Volume:          detail.Volume(),
		Exercises:       len(detail.Exercises),
	}, nil
}

func finishedDates(ctx context.Context, conn db.DBTX) ([]string, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT DISTINCT substr(finished_at, 1, 10) AS day
		FROM workouts
		WHERE finished_at IS NOT NULL
		ORDER BY day DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query finished dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan finished date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// ComputeStreak counts consecutive UTC calendar days with a finished workout,
// ending today or yesterday. dates are YYYY-MM-DD strings in any order and may
// repeat. A streak that last touched the day before yesterday is 0.
func ComputeStreak(dates []string, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(dates))
	uniq := make([]string, 0, len(dates))
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			uniq = append(uniq, d)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(uniq)))

	day := today.UTC()
	todayStr := calc.UTCDate(day)
	yesterdayStr := calc.UTCDate(day.AddDate(0, 0, -1))
	if uniq[0] != todayStr && uniq[0] != yesterdayStr {
		return 0
	}

	cursor, err := time.Parse(calc.DateLayout, uniq[0])
	if err != nil {
		return 0
	}
	streak := 1
	for _, d := range uniq[1:] {
		cursor = cursor.AddDate(0, 0, -1)
		if d != cursor.Format(calc.DateLayout) {
			break
		}
		streak++
	}
	return streak
}
