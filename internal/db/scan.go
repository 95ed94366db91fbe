// ABOUTME: Row scanning and nullable-column helpers shared by the repositories.
// ABOUTME: Converts between sql.Null* values, pointers and persisted timestamps.
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/gym/internal/calc"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func timestamp(t time.Time) string {
	return calc.FormatTimestamp(t)
}

func parseTime(s string) (time.Time, error) {
	t, err := calc.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored time: %w", err)
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt64(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// optionalText maps blank strings to NULL.
func optionalText(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
