// ABOUTME: Exercise CRUD within a workout, plus explicit reordering.
// ABOUTME: New exercises are appended at the current sibling count.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/gym/internal/models"
)

const exerciseColumns = `id, workout_id, name, order_index, note`

// AddExercise appends an exercise to the workout and returns its id.
func AddExercise(ctx context.Context, conn DBTX, workoutID int64, name, note string) (int64, error) {
	res, err := conn.ExecContext(ctx, `
		INSERT INTO exercises (workout_id, name, order_index, note)
		VALUES (?, ?, (SELECT COUNT(*) FROM exercises WHERE workout_id = ?), ?)`,
		workoutID, strings.TrimSpace(name), workoutID, optionalText(note))
	if err != nil {
		return 0, fmt.Errorf("failed to add exercise: %w", err)
	}
	return res.LastInsertId()
}

// GetExercise returns the exercise or nil when it does not exist.
func GetExercise(ctx context.Context, conn DBTX, id int64) (*models.Exercise, error) {
	row := conn.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id)
	ex, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return ex, nil
}

// UpdateExerciseNote replaces the exercise note. A blank note is stored as NULL.
func UpdateExerciseNote(ctx context.Context, conn DBTX, id int64, note string) error {
	_, err := conn.ExecContext(ctx, `UPDATE exercises SET note = ? WHERE id = ?`, optionalText(note), id)
	if err != nil {
		return fmt.Errorf("failed to update exercise note: %w", err)
	}
	return nil
}

// DeleteExercise removes the exercise and its sets. Sibling order is not compacted.
func DeleteExercise(ctx context.Context, conn DBTX, id int64) error {
	_, err := conn.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete exercise: %w", err)
	}
	return nil
}

// ReorderExercises rewrites order_index for every exercise of the workout to
// match ids. ids must list each exercise of the workout exactly once.
func ReorderExercises(ctx context.Context, conn DBTX, workoutID int64, ids []int64) error {
	return WithTx(ctx, conn, func(tx DBTX) error {
		return reorder(ctx, tx, "exercises", "workout_id", workoutID, ids)
	})
}

// reorder assigns dense order_index values to the children of one parent.
// table and parentColumn are fixed identifiers supplied by this package.
func reorder(ctx context.Context, tx DBTX, table, parentColumn string, parentID int64, ids []int64) error {
	var count int
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ?`, table, parentColumn), parentID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if count != len(ids) {
		return ErrOrderMismatch
	}

	seen := make(map[int64]bool, len(ids))
	update := fmt.Sprintf(`UPDATE %s SET order_index = ? WHERE id = ? AND %s = ?`, table, parentColumn)
	for i, id := range ids {
		if seen[id] {
			return ErrOrderMismatch
		}
		seen[id] = true

		res, err := tx.ExecContext(ctx, update, i, id, parentID)
		if err != nil {
			return fmt.Errorf("failed to reorder %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to reorder %s: %w", table, err)
		}
		if n != 1 {
			return ErrOrderMismatch
		}
	}
	return nil
}

func getExercisesForWorkout(ctx context.Context, conn DBTX, workoutID int64) ([]models.Exercise, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT `+exerciseColumns+` FROM exercises
		WHERE workout_id = ?
		ORDER BY order_index, id`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exercises: %w", err)
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		out = append(out, *ex)
	}
	return out, rows.Err()
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var (
		ex   models.Exercise
		note sql.NullString
	)
	if err := row.Scan(&ex.ID, &ex.WorkoutID, &ex.Name, &ex.OrderIndex, &note); err != nil {
		return nil, err
	}
	ex.Note = nullString(note)
	return &ex, nil
}
