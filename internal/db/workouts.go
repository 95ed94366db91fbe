// ABOUTME: Workout lifecycle operations: create, finish, delete and lookups.
// ABOUTME: Enforces at most one unfinished workout and builds nested detail views.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/gym/internal/models"
)

const defaultRecentLimit = 50

const workoutColumns = `w.id, w.started_at, w.finished_at, w.note, w.program_id, w.program_day_index`

const workoutListQuery = `
	SELECT ` + workoutColumns + `, p.name, pd.name
	FROM workouts w
	LEFT JOIN programs p ON p.id = w.program_id
	LEFT JOIN program_days pd ON pd.program_id = w.program_id AND pd.day_index = w.program_day_index`

// CreateWorkout starts a new workout. It fails with ErrWorkoutInProgress when
// an unfinished workout already exists.
func CreateWorkout(ctx context.Context, conn DBTX, programID *int64, dayIndex *int) (int64, error) {
	var id int64
	err := WithTx(ctx, conn, func(tx DBTX) error {
		existing, err := GetInProgressWorkout(ctx, tx)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrWorkoutInProgress
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO workouts (started_at, finished_at, note, program_id, program_day_index)
			VALUES (?, NULL, NULL, ?, ?)`,
			timestamp(now()), programID, dayIndex)
		if err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FinishWorkout stamps finished_at and stores the note. A blank note is stored as NULL.
func FinishWorkout(ctx context.Context, conn DBTX, id int64, note string) error {
	_, err := conn.ExecContext(ctx,
		`UPDATE workouts SET finished_at = ?, note = ? WHERE id = ?`,
		timestamp(now()), optionalText(note), id)
	if err != nil {
		return fmt.Errorf("failed to finish workout: %w", err)
	}
	return nil
}

// UpdateWorkoutNote replaces the workout note without touching its state.
func UpdateWorkoutNote(ctx context.Context, conn DBTX, id int64, note string) error {
	_, err := conn.ExecContext(ctx, `UPDATE workouts SET note = ? WHERE id = ?`, optionalText(note), id)
	if err != nil {
		return fmt.Errorf("failed to update workout note: %w", err)
	}
	return nil
}

// DeleteWorkout removes a workout; exercises, sets and cardio cascade.
func DeleteWorkout(ctx context.Context, conn DBTX, id int64) error {
	_, err := conn.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil
}

// GetWorkout returns the workout or nil when it does not exist.
func GetWorkout(ctx context.Context, conn DBTX, id int64) (*models.Workout, error) {
	row := conn.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts w WHERE w.id = ?`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return w, nil
}

// GetInProgressWorkout returns the newest unfinished workout, or nil.
func GetInProgressWorkout(ctx context.Context, conn DBTX) (*models.Workout, error) {
	row := conn.QueryRowContext(ctx, `
		SELECT `+workoutColumns+` FROM workouts w
		WHERE w.finished_at IS NULL
		ORDER BY w.started_at DESC, w.id DESC
		LIMIT 1`)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get in-progress workout: %w", err)
	}
	return w, nil
}

// IsWorkoutEmpty reports whether the workout has a blank note and no exercises.
// Cardio activities do not count. A missing workout is treated as empty.
func IsWorkoutEmpty(ctx context.Context, conn DBTX, id int64) (bool, error) {
	var (
		note          sql.NullString
		exerciseCount int
	)
	err := conn.QueryRowContext(ctx, `
		SELECT w.note, (SELECT COUNT(*) FROM exercises e WHERE e.workout_id = w.id)
		FROM workouts w WHERE w.id = ?`, id).Scan(&note, &exerciseCount)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check workout contents: %w", err)
	}
	return strings.TrimSpace(note.String) == "" && exerciseCount == 0, nil
}

// GetRecentWorkouts lists finished workouts, most recently finished first.
// A non-positive limit uses the default of 50.
func GetRecentWorkouts(ctx context.Context, conn DBTX, limit int) ([]models.WorkoutListItem, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := conn.QueryContext(ctx, workoutListQuery+`
		WHERE w.finished_at IS NOT NULL
		ORDER BY w.finished_at DESC, w.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	var items []models.WorkoutListItem
	for rows.Next() {
		item, err := scanWorkoutListItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetWorkoutWithExercises returns the workout with its ordered exercises, their
// ordered sets and its cardio activities. It returns nil when the workout is missing.
func GetWorkoutWithExercises(ctx context.Context, conn DBTX, id int64) (*models.WorkoutDetail, error) {
	row := conn.QueryRowContext(ctx, workoutListQuery+` WHERE w.id = ?`, id)
	item, err := scanWorkoutListItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	exercises, err := getExercisesForWorkout(ctx, conn, id)
	if err != nil {
		return nil, err
	}
	sets, err := getSetsForWorkout(ctx, conn, id)
	if err != nil {
		return nil, err
	}
	cardio, err := GetCardioForWorkout(ctx, conn, id)
	if err != nil {
		return nil, err
	}

	detail := &models.WorkoutDetail{
		WorkoutListItem: *item,
		Exercises:       make([]models.ExerciseWithSets, 0, len(exercises)),
		Cardio:          cardio,
	}
	for _, ex := range exercises {
		detail.Exercises = append(detail.Exercises, models.ExerciseWithSets{
			Exercise: ex,
			Sets:     nonNilSets(sets[ex.ID]),
		})
	}
	if detail.Cardio == nil {
		detail.Cardio = []models.CardioActivity{}
	}
	return detail, nil
}

func nonNilSets(s []models.Set) []models.Set {
	if s == nil {
		return []models.Set{}
	}
	return s
}

func scanWorkout(row rowScanner) (*models.Workout, error) {
	var (
		w          models.Workout
		startedAt  string
		finishedAt sql.NullString
		note       sql.NullString
		programID  sql.NullInt64
		dayIndex   sql.NullInt64
	)
	if err := row.Scan(&w.ID, &startedAt, &finishedAt, &note, &programID, &dayIndex); err != nil {
		return nil, err
	}
	return fillWorkout(&w, startedAt, finishedAt, note, programID, dayIndex)
}

func scanWorkoutListItem(row rowScanner) (*models.WorkoutListItem, error) {
	var (
		item        models.WorkoutListItem
		startedAt   string
		finishedAt  sql.NullString
		note        sql.NullString
		programID   sql.NullInt64
		dayIndex    sql.NullInt64
		programName sql.NullString
		dayName     sql.NullString
	)
	err := row.Scan(&item.ID, &startedAt, &finishedAt, &note, &programID, &dayIndex, &programName, &dayName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan workout: %w", err)
	}
	if _, err := fillWorkout(&item.Workout, startedAt, finishedAt, note, programID, dayIndex); err != nil {
		return nil, err
	}
	item.ProgramName = nullString(programName)
	item.DayName = nullString(dayName)
	return &item, nil
}

func fillWorkout(w *models.Workout, startedAt string, finishedAt, note sql.NullString, programID, dayIndex sql.NullInt64) (*models.Workout, error) {
	var err error
	if w.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, err
	}
	if w.FinishedAt, err = parseNullTime(finishedAt); err != nil {
		return nil, err
	}
	w.Note = nullString(note)
	w.ProgramID = nullInt64(programID)
	w.ProgramDayIndex = nullInt(dayIndex)
	return w, nil
}
