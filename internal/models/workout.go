// ABOUTME: Workout, Exercise and Set models for strength logging.
// ABOUTME: Workouts own ordered exercises, exercises own ordered sets.
package models

import (
	"strings"
	"time"
)

// Workout represents a training session. FinishedAt is nil while in progress.
type Workout struct {
	ID              int64      `json:"id" yaml:"id"`
	StartedAt       time.Time  `json:"started_at" yaml:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	Note            *string    `json:"note,omitempty" yaml:"note,omitempty"`
	ProgramID       *int64     `json:"program_id,omitempty" yaml:"program_id,omitempty"`
	ProgramDayIndex *int       `json:"program_day_index,omitempty" yaml:"program_day_index,omitempty"`
}

// IsFinished reports whether the workout has been finished.
func (w *Workout) IsFinished() bool {
	return w.FinishedAt != nil
}

// HasNote reports whether the workout carries a non-blank note.
func (w *Workout) HasNote() bool {
	return w.Note != nil && strings.TrimSpace(*w.Note) != ""
}

// Duration returns the time between start and finish, or zero while in progress.
func (w *Workout) Duration() time.Duration {
	if w.FinishedAt == nil {
		return 0
	}
	return w.FinishedAt.Sub(w.StartedAt)
}

// WorkoutListItem is a finished workout with the program and day names resolved.
type WorkoutListItem struct {
	Workout     `yaml:",inline"`
	ProgramName *string `json:"program_name,omitempty" yaml:"program_name,omitempty"`
	DayName     *string `json:"day_name,omitempty" yaml:"day_name,omitempty"`
}

// WorkoutDetail is the fully nested view of one workout.
type WorkoutDetail struct {
	WorkoutListItem `yaml:",inline"`
	Exercises       []ExerciseWithSets `json:"exercises" yaml:"exercises"`
	Cardio          []CardioActivity   `json:"cardio" yaml:"cardio"`
}

// Volume returns the sum of weight x reps over every set in the workout.
func (d *WorkoutDetail) Volume() float64 {
	var total float64
	for _, ex := range d.Exercises {
		for _, s := range ex.Sets {
			total += s.Weight * float64(s.Reps)
		}
	}
	return total
}

// SetCount returns the number of sets across all exercises.
func (d *WorkoutDetail) SetCount() int {
	n := 0
	for _, ex := range d.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// Exercise is one movement performed within a workout.
type Exercise struct {
	ID         int64   `json:"id" yaml:"id"`
	WorkoutID  int64   `json:"workout_id" yaml:"workout_id"`
	Name       string  `json:"name" yaml:"name"`
	OrderIndex int     `json:"order_index" yaml:"order_index"`
	Note       *string `json:"note,omitempty" yaml:"note,omitempty"`
}

// ExerciseWithSets is an exercise together with its ordered sets.
type ExerciseWithSets struct {
	Exercise `yaml:",inline"`
	Sets     []Set `json:"sets" yaml:"sets"`
}

// Set is a single weight x reps entry. Zero weight and zero reps marks a placeholder.
type Set struct {
	ID         int64   `json:"id" yaml:"id"`
	ExerciseID int64   `json:"exercise_id" yaml:"exercise_id"`
	Weight     float64 `json:"weight" yaml:"weight"`
	Reps       int     `json:"reps" yaml:"reps"`
	OrderIndex int     `json:"order_index" yaml:"order_index"`
}

// IsPlaceholder reports whether the set has not been filled in yet.
func (s Set) IsPlaceholder() bool {
	return s.Weight == 0 && s.Reps == 0
}

// IsComplete reports whether both weight and reps are filled in.
func (s Set) IsComplete() bool {
	return s.Weight > 0 && s.Reps > 0
}

// NormalizeExerciseName returns the key used to match exercise names across
// workouts, records and the muscle table.
func NormalizeExerciseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
