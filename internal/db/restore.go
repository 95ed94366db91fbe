// ABOUTME: Low-level inserts that keep stored timestamps, used when restoring a snapshot.
// ABOUTME: Also lists every workout id so a full history can be walked in order.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/gym/internal/models"
)

// ListWorkoutIDs returns the ids of all workouts, finished or not, oldest first.
func ListWorkoutIDs(ctx context.Context, conn DBTX) ([]int64, error) {
	rows, err := conn.QueryContext(ctx, `SELECT id FROM workouts ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan workout id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RestoreWorkout inserts a workout with its original start and finish times.
// An unfinished workout is rejected with ErrWorkoutInProgress when another one is open.
func RestoreWorkout(ctx context.Context, conn DBTX, w models.Workout) (int64, error) {
	var id int64
	err := WithTx(ctx, conn, func(tx DBTX) error {
		if w.FinishedAt == nil {
			existing, err := GetInProgressWorkout(ctx, tx)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrWorkoutInProgress
			}
		}

		var finishedAt any
		if w.FinishedAt != nil {
			finishedAt = timestamp(*w.FinishedAt)
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO workouts (started_at, finished_at, note, program_id, program_day_index)
			VALUES (?, ?, ?, ?, ?)`,
			timestamp(w.StartedAt), finishedAt, optionalText(deref(w.Note)), w.ProgramID, w.ProgramDayIndex)
		if err != nil {
			return fmt.Errorf("failed to restore workout: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RestoreTemplate inserts a template row keeping its creation time.
func RestoreTemplate(ctx context.Context, conn DBTX, t models.Template) (int64, error) {
	res, err := conn.ExecContext(ctx,
		`INSERT INTO templates (name, created_at) VALUES (?, ?)`,
		strings.TrimSpace(t.Name), timestamp(t.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("failed to restore template: %w", err)
	}
	return res.LastInsertId()
}

// RestoreProgram inserts an inactive program row keeping its creation time.
// Activation goes through SetActiveProgram so only one program is ever active.
func RestoreProgram(ctx context.Context, conn DBTX, p models.Program) (int64, error) {
	res, err := conn.ExecContext(ctx, `
		INSERT INTO programs (name, description, created_at, is_active, image_index, image_uri)
		VALUES (?, ?, ?, 0, ?, ?)`,
		strings.TrimSpace(p.Name), p.Description, timestamp(p.CreatedAt), p.ImageIndex, p.ImageURI)
	if err != nil {
		return 0, fmt.Errorf("failed to restore program: %w", err)
	}
	return res.LastInsertId()
}
