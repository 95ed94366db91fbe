// ABOUTME: Personal record detection and lookups.
// ABOUTME: Records are appended only when a set strictly beats the best e1RM.
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/sirupsen/logrus"
)

const recordColumns = `id, exercise_name, weight, reps, estimated_1rm, achieved_at, workout_id`

// CheckAndRecordPR records a new personal record when the set's e1RM strictly
// exceeds the best recorded for the exercise name. It returns the new record,
// or nil when the set is not a PR or is incomplete.
func CheckAndRecordPR(ctx context.Context, conn db.DBTX, exerciseName string, weight float64, reps int, workoutID int64) (*models.PersonalRecord, error) {
	if weight <= 0 || reps <= 0 {
		return nil, nil
	}

	e1rm := calc.CalculateE1RM(weight, reps)
	name := models.NormalizeExerciseName(exerciseName)

	var best sql.NullFloat64
	err := conn.QueryRowContext(ctx,
		`SELECT MAX(estimated_1rm) FROM personal_records WHERE exercise_name = ? COLLATE NOCASE`,
		name).Scan(&best)
	if err != nil {
		return nil, fmt.Errorf("failed to read best record: %w", err)
	}
	if best.Valid && e1rm <= best.Float64 {
		return nil, nil
	}

	achievedAt := now().UTC()
	res, err := conn.ExecContext(ctx, `
		INSERT INTO personal_records (exercise_name, weight, reps, estimated_1rm, achieved_at, workout_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		name, weight, reps, e1rm, calc.FormatTimestamp(achievedAt), workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to record personal record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"exercise": name,
		"e1rm":     e1rm,
		"workout":  workoutID,
	}).Info("new personal record")

	return &models.PersonalRecord{
		ID:           id,
		ExerciseName: name,
		Weight:       weight,
		Reps:         reps,
		Estimated1RM: e1rm,
		AchievedAt:   achievedAt.Truncate(time.Millisecond),
		WorkoutID:    workoutID,
	}, nil
}

// IsSetCompletion reports whether an edit turns a placeholder set into a filled one.
func IsSetCompletion(prevWeight float64, prevReps int, newWeight float64, newReps int) bool {
	return prevWeight == 0 && prevReps == 0 && newWeight > 0 && newReps > 0
}

// RecordSetUpdate updates a set and checks for a personal record only when the
// edit completes a placeholder set. It returns the new record, if any.
func RecordSetUpdate(ctx context.Context, conn db.DBTX, setID int64, weight float64, reps int) (*models.PersonalRecord, error) {
	var record *models.PersonalRecord
	err := db.WithTx(ctx, conn, func(tx db.DBTX) error {
		prev, err := db.GetSet(ctx, tx, setID)
		if err != nil {
			return err
		}
		if prev == nil {
			return db.ErrSetNotFound
		}
		if err := db.UpdateSet(ctx, tx, setID, weight, reps); err != nil {
			return err
		}
		if !IsSetCompletion(prev.Weight, prev.Reps, weight, reps) {
			return nil
		}

		ex, err := db.GetExercise(ctx, tx, prev.ExerciseID)
		if err != nil || ex == nil {
			return err
		}
		record, err = CheckAndRecordPR(ctx, tx, ex.Name, weight, reps, ex.WorkoutID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetExercisePR returns the best record for the exercise name, or nil.
func GetExercisePR(ctx context.Context, conn db.DBTX, exerciseName string) (*models.PersonalRecord, error) {
	row := conn.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM personal_records
		WHERE exercise_name = ? COLLATE NOCASE
		ORDER BY estimated_1rm DESC, id ASC
		LIMIT 1`, models.NormalizeExerciseName(exerciseName))
	pr, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pr, nil
}

// GetAllPRs returns the best record of every exercise, ordered by name.
func GetAllPRs(ctx context.Context, conn db.DBTX) ([]models.PersonalRecord, error) {
	return queryRecords(ctx, conn, `
		SELECT `+recordColumns+` FROM (
			SELECT pr.*, ROW_NUMBER() OVER (
				PARTITION BY lower(pr.exercise_name)
				ORDER BY pr.estimated_1rm DESC, pr.id ASC
			) AS rn
			FROM personal_records pr
		)
		WHERE rn = 1
		ORDER BY exercise_name`)
}

// GetRecentPRs returns records achieved within the last days, newest first.
// A non-positive days uses 30.
func GetRecentPRs(ctx context.Context, conn db.DBTX, days int) ([]models.PersonalRecord, error) {
	since := periodStart(orDefault(days, DefaultRecentPRDays))
	return queryRecords(ctx, conn, `
		SELECT `+recordColumns+` FROM personal_records
		WHERE achieved_at >= ?
		ORDER BY achieved_at DESC, id DESC`, since)
}

// GetPRHistory returns every stored record in the order they were achieved.
func GetPRHistory(ctx context.Context, conn db.DBTX) ([]models.PersonalRecord, error) {
	return queryRecords(ctx, conn, `
		SELECT `+recordColumns+` FROM personal_records
		ORDER BY achieved_at, id`)
}

// RestoreRecord inserts a record exactly as given, keeping its achieved time.
// Used when importing history; no PR comparison is made.
func RestoreRecord(ctx context.Context, conn db.DBTX, pr models.PersonalRecord) (int64, error) {
	res, err := conn.ExecContext(ctx, `
		INSERT INTO personal_records (exercise_name, weight, reps, estimated_1rm, achieved_at, workout_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		models.NormalizeExerciseName(pr.ExerciseName), pr.Weight, pr.Reps, pr.Estimated1RM,
		calc.FormatTimestamp(pr.AchievedAt), pr.WorkoutID)
	if err != nil {
		return 0, fmt.Errorf("failed to restore personal record: %w", err)
	}
	return res.LastInsertId()
}

func queryRecords(ctx context.Context, conn db.DBTX, query string, args ...any) ([]models.PersonalRecord, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal records: %w", err)
	}
	defer rows.Close()

	out := []models.PersonalRecord{}
	for rows.Next() {
		pr, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *pr)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.PersonalRecord, error) {
	var (
		pr         models.PersonalRecord
		achievedAt string
	)
	err := row.Scan(&pr.ID, &pr.ExerciseName, &pr.Weight, &pr.Reps, &pr.Estimated1RM, &achievedAt, &pr.WorkoutID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan personal record: %w", err)
	}
	if pr.AchievedAt, err = calc.ParseTimestamp(achievedAt); err != nil {
		return nil, err
	}
	return &pr, nil
}
