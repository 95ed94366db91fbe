// ABOUTME: Shared parsing and formatting helpers for CLI commands.
// ABOUTME: IDs, durations, optional flag values and column padding.
package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
)

const timeDisplayLayout = "2006-01-02 15:04"

// parseID parses a positive row id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

// parseIDs parses a list of ids, keeping their order.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseDurationSeconds accepts plain seconds ("90"), m:ss or h:mm:ss ("25:30"),
// or a Go duration ("25m", "1h5m").
func parseDurationSeconds(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return n, nil
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		total := 0
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("invalid duration: %s", s)
			}
			total = total*60 + n
		}
		return total, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid duration: %s (use seconds, mm:ss or 25m)", s)
	}
	return int(d.Seconds()), nil
}

// parseDate parses YYYY-MM-DD in local time.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// workoutOrCurrent resolves an optional workout id argument, falling back to
// the workout in progress.
func workoutOrCurrent(ctx context.Context, arg string) (int64, error) {
	if arg != "" {
		id, err := parseID(arg)
		if err != nil {
			return 0, err
		}
		w, err := db.GetWorkout(ctx, dbConn, id)
		if err != nil {
			return 0, err
		}
		if w == nil {
			return 0, fmt.Errorf("workout not found: %d", id)
		}
		return id, nil
	}
	w, err := db.GetInProgressWorkout(ctx, dbConn)
	if err != nil {
		return 0, err
	}
	if w == nil {
		return 0, errors.New("no workout in progress (start one with 'gym workout start')")
	}
	return w.ID, nil
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func formatSet(s models.Set) string {
	if s.IsPlaceholder() {
		return "-"
	}
	return fmt.Sprintf("%g x %d", s.Weight, s.Reps)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
