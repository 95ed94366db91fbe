// ABOUTME: Pure calculation helpers for strength and cardio numbers.
// ABOUTME: Estimated 1RM, duration/distance formatting and date bucketing.
package calc

import (
	"fmt"
	"math"
	"time"
)

// TimestampLayout is the persisted timestamp format: UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the calendar-date format used for buckets and streaks.
const DateLayout = "2006-01-02"

// brzyckiMaxReps is the highest rep count the Brzycki formula is used for.
const brzyckiMaxReps = 10

// CalculateE1RM estimates a one-rep max from a weight x reps set.
// Non-positive inputs yield 0 and a single rep returns the weight unchanged.
func CalculateE1RM(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	r := float64(reps)
	var est float64
	if reps <= brzyckiMaxReps {
		est = weight * 36 / (37 - r)
	} else {
		est = weight * (1 + r/30)
	}
	return RoundTo(est, 1)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Percent returns part/total as a whole-number percentage, or 0 for an empty total.
func Percent(part, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}

// FormatDuration renders seconds as m:ss, or h:mm:ss from one hour up.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatDistance renders meters as kilometers with two decimals from 1000 m up.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.2f km", meters/1000)
	}
	return fmt.Sprintf("%d m", int(math.Round(meters)))
}

// WeekStart returns the Monday of t's UTC week as YYYY-MM-DD.
func WeekStart(t time.Time) string {
	u := t.UTC()
	offset := (int(u.Weekday()) + 6) % 7
	monday := time.Date(u.Year(), u.Month(), u.Day()-offset, 0, 0, 0, 0, time.UTC)
	return monday.Format(DateLayout)
}

// DaysAgo returns local midnight n days before now, formatted as a UTC timestamp.
func DaysAgo(now time.Time, n int) string {
	local := now.Local()
	midnight := time.Date(local.Year(), local.Month(), local.Day()-n, 0, 0, 0, 0, time.Local)
	return FormatTimestamp(midnight)
}

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp. It accepts the canonical layout,
// RFC 3339 and SQLite's default datetime format.
func ParseTimestamp(s string) (time.Time, error) {
	layouts := []string{TimestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05", DateLayout}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp %q", s)
}

// UTCDate returns the UTC calendar date of t as YYYY-MM-DD.
func UTCDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
