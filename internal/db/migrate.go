// ABOUTME: Additive, self-healing schema migrations for older databases.
// ABOUTME: Probes pragma_table_info and adds any missing columns in place.
package db

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type columnMigration struct {
	table      string
	column     string
	definition string
}

// Columns added after the first schema revision. Definitions must be valid for
// ALTER TABLE ADD COLUMN, so references default to NULL.
var columnMigrations = []columnMigration{
	{"workouts", "program_id", "INTEGER REFERENCES programs(id) ON DELETE SET NULL"},
	{"workouts", "program_day_index", "INTEGER"},
	{"programs", "image_index", "INTEGER NOT NULL DEFAULT -1"},
	{"programs", "image_uri", "TEXT"},
	{"cardio_activities", "calories_burned", "INTEGER"},
	{"program_days", "template_id", "INTEGER REFERENCES templates(id) ON DELETE SET NULL"},
}

var postMigrationIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_workouts_program ON workouts(program_id, finished_at)",
}

// applyMigrations adds missing columns. Failures are logged and skipped.
func applyMigrations(ctx context.Context, conn DBTX) {
	for _, m := range columnMigrations {
		log := logrus.WithFields(logrus.Fields{"table": m.table, "column": m.column})

		exists, err := columnExists(ctx, conn, m.table, m.column)
		if err != nil {
			log.WithError(err).Warn("failed to inspect column")
			continue
		}
		if exists {
			continue
		}

		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.column, m.definition)
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			log.WithError(err).Warn("failed to add column")
			continue
		}
		log.Info("added missing column")
	}

	for _, stmt := range postMigrationIndexes {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			logrus.WithError(err).Warn("failed to create index")
		}
	}
}

func columnExists(ctx context.Context, conn DBTX, table, column string) (bool, error) {
	var count int
	err := conn.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to read table info: %w", err)
	}
	return count > 0, nil
}

// ColumnInfo describes one column of a gym table.
type ColumnInfo struct {
	Table        string  `json:"table"`
	Column       string  `json:"column"`
	Type         string  `json:"type"`
	NotNull      bool    `json:"not_null"`
	DefaultValue *string `json:"default_value,omitempty"`
	PrimaryKey   bool    `json:"primary_key"`
}

// ListColumns returns the live column layout of every gym table.
func ListColumns(ctx context.Context, conn DBTX) ([]ColumnInfo, error) {
	var out []ColumnInfo
	for _, table := range gymTables {
		rows, err := conn.QueryContext(ctx,
			`SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?) ORDER BY cid`, table)
		if err != nil {
			return nil, fmt.Errorf("failed to list columns for %s: %w", table, err)
		}
		for rows.Next() {
			var (
				c       ColumnInfo
				notNull int
				pk      int
				dflt    *string
			)
			if err := rows.Scan(&c.Column, &c.Type, &notNull, &dflt, &pk); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan column: %w", err)
			}
			c.Table = table
			c.NotNull = notNull != 0
			c.PrimaryKey = pk != 0
			c.DefaultValue = dflt
			out = append(out, c)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return out, nil
}
