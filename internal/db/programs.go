// ABOUTME: Program, program day and day-exercise operations.
// ABOUTME: Covers destructive day resync, the active flag and cycle advancement.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/gym/internal/models"
)

// ProgramInput carries the editable program fields. A nil ImageIndex stores -1.
type ProgramInput struct {
	Name        string
	Description *string
	ImageIndex  *int
	ImageURI    *string
}

func (in ProgramInput) imageIndex() int {
	if in.ImageIndex == nil {
		return models.NoImage
	}
	return *in.ImageIndex
}

// ProgramDayInput describes one day for ReplaceProgramDays. Days are stored in slice order.
type ProgramDayInput struct {
	Name       string
	TemplateID *int64
	Exercises  []models.ExercisePattern
}

const programColumns = `id, name, description, created_at, is_active, image_index, image_uri`

// CreateProgram inserts an inactive program and returns its id.
func CreateProgram(ctx context.Context, conn DBTX, in ProgramInput) (int64, error) {
	res, err := conn.ExecContext(ctx, `
		INSERT INTO programs (name, description, created_at, is_active, image_index, image_uri)
		VALUES (?, ?, ?, 0, ?, ?)`,
		strings.TrimSpace(in.Name), in.Description, timestamp(now()), in.imageIndex(), in.ImageURI)
	if err != nil {
		return 0, fmt.Errorf("failed to create program: %w", err)
	}
	return res.LastInsertId()
}

// AddProgramDay inserts a day at the given cycle position.
func AddProgramDay(ctx context.Context, conn DBTX, programID int64, dayIndex int, name string, templateID *int64) (int64, error) {
	res, err := conn.ExecContext(ctx, `
		INSERT INTO program_days (program_id, template_id, day_index, name)
		VALUES (?, ?, ?, ?)`,
		programID, templateID, dayIndex, strings.TrimSpace(name))
	if err != nil {
		return 0, fmt.Errorf("failed to add program day: %w", err)
	}
	return res.LastInsertId()
}

// AddProgramDayExercise appends an exercise slot to a day. A non-positive defaultSets uses 3.
func AddProgramDayExercise(ctx context.Context, conn DBTX, dayID int64, name string, defaultSets int, note string) (int64, error) {
	if defaultSets <= 0 {
		defaultSets = models.DefaultSetCount
	}
	res, err := conn.ExecContext(ctx, `
		INSERT INTO program_day_exercises (program_day_id, name, order_index, default_sets, note)
		VALUES (?, ?, (SELECT COUNT(*) FROM program_day_exercises WHERE program_day_id = ?), ?, ?)`,
		dayID, strings.TrimSpace(name), dayID, defaultSets, optionalText(note))
	if err != nil {
		return 0, fmt.Errorf("failed to add program day exercise: %w", err)
	}
	return res.LastInsertId()
}

// UpdateProgram rewrites the program fields and deletes all of its days and
// day exercises. The caller re-inserts the full day list afterwards.
func UpdateProgram(ctx context.Context, conn DBTX, id int64, in ProgramInput) error {
	return WithTx(ctx, conn, func(tx DBTX) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE programs SET name = ?, description = ?, image_index = ?, image_uri = ?
			WHERE id = ?`,
			strings.TrimSpace(in.Name), in.Description, in.imageIndex(), in.ImageURI, id)
		if err != nil {
			return fmt.Errorf("failed to update program: %w", err)
		}
		return deleteProgramDays(ctx, tx, id)
	})
}

// ReplaceProgramDays deletes every day of the program and inserts days in order,
// assigning day_index from slice position.
func ReplaceProgramDays(ctx context.Context, conn DBTX, programID int64, days []ProgramDayInput) error {
	return WithTx(ctx, conn, func(tx DBTX) error {
		if err := deleteProgramDays(ctx, tx, programID); err != nil {
			return err
		}
		for i, day := range days {
			dayID, err := AddProgramDay(ctx, tx, programID, i, day.Name, day.TemplateID)
			if err != nil {
				return err
			}
			for _, ex := range day.Exercises {
				if _, err := AddProgramDayExercise(ctx, tx, dayID, ex.Name, ex.DefaultSets, deref(ex.Note)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DeleteProgram removes day exercises, then days, then the program.
// Workouts tagged with the program keep their data with program_id cleared.
func DeleteProgram(ctx context.Context, conn DBTX, id int64) error {
	return WithTx(ctx, conn, func(tx DBTX) error {
		if err := deleteProgramDays(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete program: %w", err)
		}
		return nil
	})
}

func deleteProgramDays(ctx context.Context, conn DBTX, programID int64) error {
	_, err := conn.ExecContext(ctx, `
		DELETE FROM program_day_exercises
		WHERE program_day_id IN (SELECT id FROM program_days WHERE program_id = ?)`, programID)
	if err != nil {
		return fmt.Errorf("failed to delete program day exercises: %w", err)
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM program_days WHERE program_id = ?`, programID); err != nil {
		return fmt.Errorf("failed to delete program days: %w", err)
	}
	return nil
}

// SetActiveProgram clears every active flag and sets it on one program.
func SetActiveProgram(ctx context.Context, conn DBTX, id int64) error {
	return WithTx(ctx, conn, func(tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `UPDATE programs SET is_active = 0 WHERE is_active != 0`); err != nil {
			return fmt.Errorf("failed to clear active program: %w", err)
		}
		res, err := tx.ExecContext(ctx, `UPDATE programs SET is_active = 1 WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to set active program: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrProgramNotFound
		}
		return nil
	})
}

// ClearActiveProgram leaves no program active.
func ClearActiveProgram(ctx context.Context, conn DBTX) error {
	if _, err := conn.ExecContext(ctx, `UPDATE programs SET is_active = 0 WHERE is_active != 0`); err != nil {
		return fmt.Errorf("failed to clear active program: %w", err)
	}
	return nil
}

// GetAllPrograms lists programs with the active one first, then newest first.
func GetAllPrograms(ctx context.Context, conn DBTX) ([]models.Program, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT `+programColumns+` FROM programs ORDER BY is_active DESC, created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var out []models.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetActiveProgram returns the active program with its days, or nil.
func GetActiveProgram(ctx context.Context, conn DBTX) (*models.ProgramWithDays, error) {
	row := conn.QueryRowContext(ctx,
		`SELECT `+programColumns+` FROM programs WHERE is_active = 1 ORDER BY id LIMIT 1`)
	return loadProgram(ctx, conn, row)
}

// GetProgramByID returns the program with its days, or nil.
func GetProgramByID(ctx context.Context, conn DBTX, id int64) (*models.ProgramWithDays, error) {
	row := conn.QueryRowContext(ctx, `SELECT `+programColumns+` FROM programs WHERE id = ?`, id)
	return loadProgram(ctx, conn, row)
}

// GetProgramDayExercises returns the ordered exercise slots of one day.
func GetProgramDayExercises(ctx context.Context, conn DBTX, dayID int64) ([]models.ProgramDayExercise, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT id, program_day_id, name, order_index, default_sets, note
		FROM program_day_exercises
		WHERE program_day_id = ?
		ORDER BY order_index, id`, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to get program day exercises: %w", err)
	}
	defer rows.Close()

	out := []models.ProgramDayExercise{}
	for rows.Next() {
		e, err := scanProgramDayExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// GetProgramDay returns a single day without its exercises, or nil.
func GetProgramDay(ctx context.Context, conn DBTX, dayID int64) (*models.ProgramDay, error) {
	var (
		d          models.ProgramDay
		templateID sql.NullInt64
	)
	err := conn.QueryRowContext(ctx,
		`SELECT id, program_id, template_id, day_index, name FROM program_days WHERE id = ?`, dayID).
		Scan(&d.ID, &d.ProgramID, &templateID, &d.DayIndex, &d.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program day: %w", err)
	}
	d.TemplateID = nullInt64(templateID)
	return &d, nil
}

// CreateWorkoutFromProgramDay starts a workout tagged with the program and day
// index and materializes the day's exercises. A day with no exercises but a
// linked template expands the template instead.
func CreateWorkoutFromProgramDay(ctx context.Context, conn DBTX, dayID, programID int64, dayIndex int) (int64, error) {
	var workoutID int64
	err := WithTx(ctx, conn, func(tx DBTX) error {
		day, err := GetProgramDay(ctx, tx, dayID)
		if err != nil {
			return err
		}
		if day == nil {
			return ErrProgramDayNotFound
		}

		exercises, err := GetProgramDayExercises(ctx, tx, dayID)
		if err != nil {
			return err
		}
		patterns := (&models.ProgramDayWithExercises{Exercises: exercises}).Patterns()
		if len(patterns) == 0 && day.TemplateID != nil {
			tmpl, err := GetTemplateWithExercises(ctx, tx, *day.TemplateID)
			if err != nil {
				return err
			}
			if tmpl != nil {
				patterns = tmpl.Patterns()
			}
		}

		workoutID, err = CreateWorkout(ctx, tx, &programID, &dayIndex)
		if err != nil {
			return err
		}
		return expandPatterns(ctx, tx, workoutID, patterns)
	})
	if err != nil {
		return 0, err
	}
	return workoutID, nil
}

// GetNextProgramDay returns the active program and the day after the one used
// by its most recently finished workout, wrapping around the cycle. With no
// prior workout the first day is next. It returns nil when no program is
// active or the active program has no days.
func GetNextProgramDay(ctx context.Context, conn DBTX) (*models.NextProgramDay, error) {
	program, err := GetActiveProgram(ctx, conn)
	if err != nil {
		return nil, err
	}
	if program == nil || len(program.Days) == 0 {
		return nil, nil
	}

	var lastIndex sql.NullInt64
	err = conn.QueryRowContext(ctx, `
		SELECT program_day_index FROM workouts
		WHERE program_id = ? AND finished_at IS NOT NULL
		ORDER BY finished_at DESC, id DESC
		LIMIT 1`, program.ID).Scan(&lastIndex)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get last program workout: %w", err)
	}

	next := 0
	if lastIndex.Valid {
		next = (int(lastIndex.Int64) + 1) % len(program.Days)
	}

	day := program.Days[next]
	for _, d := range program.Days {
		if d.DayIndex == next {
			day = d
			break
		}
	}
	return &models.NextProgramDay{Program: *program, NextDay: day}, nil
}

func loadProgram(ctx context.Context, conn DBTX, row *sql.Row) (*models.ProgramWithDays, error) {
	p, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	days, err := getProgramDays(ctx, conn, p.ID)
	if err != nil {
		return nil, err
	}
	return &models.ProgramWithDays{Program: *p, Days: days}, nil
}

func getProgramDays(ctx context.Context, conn DBTX, programID int64) ([]models.ProgramDayWithExercises, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT d.id, d.program_id, d.template_id, d.day_index, d.name, t.id, t.name, t.created_at
		FROM program_days d
		LEFT JOIN templates t ON t.id = d.template_id
		WHERE d.program_id = ?
		ORDER BY d.day_index, d.id`, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to get program days: %w", err)
	}

	days := []models.ProgramDayWithExercises{}
	for rows.Next() {
		var (
			d          models.ProgramDayWithExercises
			templateID sql.NullInt64
			tID        sql.NullInt64
			tName      sql.NullString
			tCreatedAt sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.ProgramID, &templateID, &d.DayIndex, &d.Name, &tID, &tName, &tCreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan program day: %w", err)
		}
		d.TemplateID = nullInt64(templateID)
		if tID.Valid {
			created, err := parseTime(tCreatedAt.String)
			if err != nil {
				rows.Close()
				return nil, err
			}
			d.Template = &models.Template{ID: tID.Int64, Name: tName.String, CreatedAt: created}
		}
		d.Exercises = []models.ProgramDayExercise{}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	exRows, err := conn.QueryContext(ctx, `
		SELECT e.id, e.program_day_id, e.name, e.order_index, e.default_sets, e.note
		FROM program_day_exercises e
		JOIN program_days d ON d.id = e.program_day_id
		WHERE d.program_id = ?
		ORDER BY e.program_day_id, e.order_index, e.id`, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to get program day exercises: %w", err)
	}
	defer exRows.Close()

	byDay := make(map[int64]int, len(days))
	for i := range days {
		byDay[days[i].ID] = i
	}
	for exRows.Next() {
		e, err := scanProgramDayExercise(exRows)
		if err != nil {
			return nil, err
		}
		if i, ok := byDay[e.ProgramDayID]; ok {
			days[i].Exercises = append(days[i].Exercises, *e)
		}
	}
	return days, exRows.Err()
}

func scanProgram(row rowScanner) (*models.Program, error) {
	var (
		p           models.Program
		description sql.NullString
		createdAt   string
		isActive    int
		imageURI    sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &description, &createdAt, &isActive, &p.ImageIndex, &imageURI); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan program: %w", err)
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	p.Description = nullString(description)
	p.IsActive = isActive != 0
	p.ImageURI = nullString(imageURI)
	return &p, nil
}

func scanProgramDayExercise(row rowScanner) (*models.ProgramDayExercise, error) {
	var (
		e    models.ProgramDayExercise
		note sql.NullString
	)
	if err := row.Scan(&e.ID, &e.ProgramDayID, &e.Name, &e.OrderIndex, &e.DefaultSets, &note); err != nil {
		return nil, fmt.Errorf("failed to scan program day exercise: %w", err)
	}
	e.Note = nullString(note)
	return &e, nil
}
