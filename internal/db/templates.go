// ABOUTME: Template CRUD and the template <-> workout materialization steps.
// ABOUTME: Templates hold exercise names and set counts, never weights or reps.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/gym/internal/models"
)

// CreateTemplate inserts an empty template and returns its id.
func CreateTemplate(ctx context.Context, conn DBTX, name string) (int64, error) {
	res, err := conn.ExecContext(ctx,
		`INSERT INTO templates (name, created_at) VALUES (?, ?)`,
		strings.TrimSpace(name), timestamp(now()))
	if err != nil {
		return 0, fmt.Errorf("failed to create template: %w", err)
	}
	return res.LastInsertId()
}

// AddTemplateExercise appends an exercise slot. A non-positive defaultSets uses 3.
func AddTemplateExercise(ctx context.Context, conn DBTX, templateID int64, name string, defaultSets int, note string) (int64, error) {
	if defaultSets <= 0 {
		defaultSets = models.DefaultSetCount
	}
	res, err := conn.ExecContext(ctx, `
		INSERT INTO template_exercises (template_id, name, order_index, default_sets, note)
		VALUES (?, ?, (SELECT COUNT(*) FROM template_exercises WHERE template_id = ?), ?, ?)`,
		templateID, strings.TrimSpace(name), templateID, defaultSets, optionalText(note))
	if err != nil {
		return 0, fmt.Errorf("failed to add template exercise: %w", err)
	}
	return res.LastInsertId()
}

// DeleteTemplateExercise removes one exercise slot from a template.
func DeleteTemplateExercise(ctx context.Context, conn DBTX, id int64) error {
	_, err := conn.ExecContext(ctx, `DELETE FROM template_exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template exercise: %w", err)
	}
	return nil
}

// GetAllTemplates lists templates, newest first.
func GetAllTemplates(ctx context.Context, conn DBTX) ([]models.Template, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT id, name, created_at FROM templates ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var out []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// GetTemplateWithExercises returns the template and its ordered exercises, or nil.
func GetTemplateWithExercises(ctx context.Context, conn DBTX, id int64) (*models.TemplateWithExercises, error) {
	row := conn.QueryRowContext(ctx, `SELECT id, name, created_at FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT id, template_id, name, order_index, default_sets, note
		FROM template_exercises
		WHERE template_id = ?
		ORDER BY order_index, id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get template exercises: %w", err)
	}
	defer rows.Close()

	out := &models.TemplateWithExercises{Template: *t, Exercises: []models.TemplateExercise{}}
	for rows.Next() {
		var (
			te   models.TemplateExercise
			note sql.NullString
		)
		if err := rows.Scan(&te.ID, &te.TemplateID, &te.Name, &te.OrderIndex, &te.DefaultSets, &note); err != nil {
			return nil, fmt.Errorf("failed to scan template exercise: %w", err)
		}
		te.Note = nullString(note)
		out.Exercises = append(out.Exercises, te)
	}
	return out, rows.Err()
}

// DeleteTemplate removes a template and its exercise slots.
func DeleteTemplate(ctx context.Context, conn DBTX, id int64) error {
	_, err := conn.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// CreateWorkoutFromTemplate starts a workout and materializes every template
// exercise with its default number of empty sets, in template order.
func CreateWorkoutFromTemplate(ctx context.Context, conn DBTX, templateID int64, programID *int64, dayIndex *int) (int64, error) {
	var workoutID int64
	err := WithTx(ctx, conn, func(tx DBTX) error {
		tmpl, err := GetTemplateWithExercises(ctx, tx, templateID)
		if err != nil {
			return err
		}
		if tmpl == nil {
			return ErrTemplateNotFound
		}
		workoutID, err = CreateWorkout(ctx, tx, programID, dayIndex)
		if err != nil {
			return err
		}
		return expandPatterns(ctx, tx, workoutID, tmpl.Patterns())
	})
	if err != nil {
		return 0, err
	}
	return workoutID, nil
}

// SaveWorkoutAsTemplate snapshots the workout's exercise list into a new
// template. Each slot keeps the exercise's live set count, or 3 when it has none.
func SaveWorkoutAsTemplate(ctx context.Context, conn DBTX, workoutID int64, name string) (int64, error) {
	var templateID int64
	err := WithTx(ctx, conn, func(tx DBTX) error {
		w, err := GetWorkout(ctx, tx, workoutID)
		if err != nil {
			return err
		}
		if w == nil {
			return ErrWorkoutNotFound
		}

		patterns, err := workoutPatterns(ctx, tx, workoutID)
		if err != nil {
			return err
		}

		templateID, err = CreateTemplate(ctx, tx, name)
		if err != nil {
			return err
		}
		for _, p := range patterns {
			if _, err := AddTemplateExercise(ctx, tx, templateID, p.Name, p.DefaultSets, deref(p.Note)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return templateID, nil
}

// workoutPatterns reads the workout's exercises with their live set counts.
func workoutPatterns(ctx context.Context, conn DBTX, workoutID int64) ([]models.ExercisePattern, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT e.name, e.note, (SELECT COUNT(*) FROM sets s WHERE s.exercise_id = e.id)
		FROM exercises e
		WHERE e.workout_id = ?
		ORDER BY e.order_index, e.id`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to read workout exercises: %w", err)
	}
	defer rows.Close()

	var out []models.ExercisePattern
	for rows.Next() {
		var (
			p    models.ExercisePattern
			note sql.NullString
		)
		if err := rows.Scan(&p.Name, &note, &p.DefaultSets); err != nil {
			return nil, fmt.Errorf("failed to scan workout exercise: %w", err)
		}
		p.Note = nullString(note)
		out = append(out, p)
	}
	return out, rows.Err()
}

// expandPatterns creates one exercise per pattern with DefaultSets placeholder sets.
func expandPatterns(ctx context.Context, conn DBTX, workoutID int64, patterns []models.ExercisePattern) error {
	for _, p := range patterns {
		exerciseID, err := AddExercise(ctx, conn, workoutID, p.Name, deref(p.Note))
		if err != nil {
			return err
		}
		for i := 0; i < p.DefaultSets; i++ {
			if _, err := AddSet(ctx, conn, exerciseID, 0, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func scanTemplate(row rowScanner) (*models.Template, error) {
	var (
		t         models.Template
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan template: %w", err)
	}
	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}
