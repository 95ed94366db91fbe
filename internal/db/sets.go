// ABOUTME: Set CRUD within an exercise, plus explicit reordering.
// ABOUTME: A set of 0 weight and 0 reps is an unfilled placeholder.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

const setColumns = `s.id, s.exercise_id, s.weight, s.reps, s.order_index`

// AddSet appends a set to the exercise and returns its id.
func AddSet(ctx context.Context, conn DBTX, exerciseID int64, weight float64, reps int) (int64, error) {
	res, err := conn.ExecContext(ctx, `
		INSERT INTO sets (exercise_id, weight, reps, order_index)
		VALUES (?, ?, ?, (SELECT COUNT(*) FROM sets WHERE exercise_id = ?))`,
		exerciseID, weight, reps, exerciseID)
	if err != nil {
		return 0, fmt.Errorf("failed to add set: %w", err)
	}
	return res.LastInsertId()
}

// GetSet returns the set or nil when it does not exist.
func GetSet(ctx context.Context, conn DBTX, id int64) (*models.Set, error) {
	row := conn.QueryRowContext(ctx, `SELECT `+setColumns+` FROM sets s WHERE s.id = ?`, id)
	s, err := scanSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get set: %w", err)
	}
	return s, nil
}

// UpdateSet overwrites weight and reps in place.
func UpdateSet(ctx context.Context, conn DBTX, id int64, weight float64, reps int) error {
	_, err := conn.ExecContext(ctx, `UPDATE sets SET weight = ?, reps = ? WHERE id = ?`, weight, reps, id)
	if err != nil {
		return fmt.Errorf("failed to update set: %w", err)
	}
	return nil
}

// DeleteSet removes a set. Sibling order is not compacted.
func DeleteSet(ctx context.Context, conn DBTX, id int64) error {
	_, err := conn.ExecContext(ctx, `DELETE FROM sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete set: %w", err)
	}
	return nil
}

// ReorderSets rewrites order_index for every set of the exercise to match ids.
func ReorderSets(ctx context.Context, conn DBTX, exerciseID int64, ids []int64) error {
	return WithTx(ctx, conn, func(tx DBTX) error {
		return reorder(ctx, tx, "sets", "exercise_id", exerciseID, ids)
	})
}

// getSetsForWorkout loads every set of the workout grouped by exercise id.
func getSetsForWorkout(ctx context.Context, conn DBTX, workoutID int64) (map[int64][]models.Set, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT `+setColumns+`
		FROM sets s
		JOIN exercises e ON e.id = s.exercise_id
		WHERE e.workout_id = ?
		ORDER BY s.exercise_id, s.order_index, s.id`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sets: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]models.Set)
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan set: %w", err)
		}
		out[s.ExerciseID] = append(out[s.ExerciseID], *s)
	}
	return out, rows.Err()
}

func scanSet(row rowScanner) (*models.Set, error) {
	var s models.Set
	if err := row.Scan(&s.ID, &s.ExerciseID, &s.Weight, &s.Reps, &s.OrderIndex); err != nil {
		return nil, err
	}
	return &s, nil
}
