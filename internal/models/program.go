// ABOUTME: Program models for multi-day training cycles.
// ABOUTME: A program owns ordered days; a day without exercises is a rest day.
package models

import "time"

// NoImage marks a program without a built-in cover image.
const NoImage = -1

// Program is a named rotating training cycle.
type Program struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description *string   `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	IsActive    bool      `json:"is_active" yaml:"is_active"`
	ImageIndex  int       `json:"image_index" yaml:"image_index"`
	ImageURI    *string   `json:"image_uri,omitempty" yaml:"image_uri,omitempty"`
}

// ProgramDay is one position in a program's cycle.
type ProgramDay struct {
	ID         int64  `json:"id" yaml:"id"`
	ProgramID  int64  `json:"program_id" yaml:"program_id"`
	TemplateID *int64 `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	DayIndex   int    `json:"day_index" yaml:"day_index"`
	Name       string `json:"name" yaml:"name"`
}

// ProgramDayExercise is one exercise slot inside a program day.
type ProgramDayExercise struct {
	ID           int64   `json:"id" yaml:"id"`
	ProgramDayID int64   `json:"program_day_id" yaml:"program_day_id"`
	Name         string  `json:"name" yaml:"name"`
	OrderIndex   int     `json:"order_index" yaml:"order_index"`
	DefaultSets  int     `json:"default_sets" yaml:"default_sets"`
	Note         *string `json:"note,omitempty" yaml:"note,omitempty"`
}

// ProgramDayWithExercises is a day with its ordered exercise slots.
type ProgramDayWithExercises struct {
	ProgramDay `yaml:",inline"`
	Exercises  []ProgramDayExercise `json:"exercises" yaml:"exercises"`
	Template   *Template            `json:"template,omitempty" yaml:"template,omitempty"`
}

// IsRestDay reports whether the day has no exercises.
func (d *ProgramDayWithExercises) IsRestDay() bool {
	return len(d.Exercises) == 0
}

// Patterns converts the day's exercises into expansion patterns.
func (d *ProgramDayWithExercises) Patterns() []ExercisePattern {
	out := make([]ExercisePattern, 0, len(d.Exercises))
	for _, e := range d.Exercises {
		out = append(out, ExercisePattern{Name: e.Name, DefaultSets: e.DefaultSets, Note: e.Note})
	}
	return out
}

// ProgramWithDays is a program with its ordered days.
type ProgramWithDays struct {
	Program `yaml:",inline"`
	Days    []ProgramDayWithExercises `json:"days" yaml:"days"`
}

// WorkoutDayCount returns the number of non-rest days in the cycle.
func (p *ProgramWithDays) WorkoutDayCount() int {
	n := 0
	for i := range p.Days {
		if !p.Days[i].IsRestDay() {
			n++
		}
	}
	return n
}

// NextProgramDay is the active program and the day that comes next in its cycle.
type NextProgramDay struct {
	Program ProgramWithDays         `json:"program"`
	NextDay ProgramDayWithExercises `json:"next_day"`
}
