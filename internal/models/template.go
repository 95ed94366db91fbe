// ABOUTME: Template models for reusable workout layouts.
// ABOUTME: A template lists exercise names with a default number of empty sets.
package models

import "time"

// DefaultSetCount is used when a template or program exercise has no set count.
const DefaultSetCount = 3

// Template is a named, reusable list of exercises.
type Template struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TemplateExercise is one exercise slot inside a template.
type TemplateExercise struct {
	ID          int64   `json:"id" yaml:"id"`
	TemplateID  int64   `json:"template_id" yaml:"template_id"`
	Name        string  `json:"name" yaml:"name"`
	OrderIndex  int     `json:"order_index" yaml:"order_index"`
	DefaultSets int     `json:"default_sets" yaml:"default_sets"`
	Note        *string `json:"note,omitempty" yaml:"note,omitempty"`
}

// TemplateWithExercises is a template with its ordered exercise slots.
type TemplateWithExercises struct {
	Template  `yaml:",inline"`
	Exercises []TemplateExercise `json:"exercises" yaml:"exercises"`
}

// ExercisePattern is the shape shared by template and program-day exercises:
// a name, a note and how many empty sets to generate.
type ExercisePattern struct {
	Name        string
	DefaultSets int
	Note        *string
}

// Patterns converts the template's exercises into expansion patterns.
func (t *TemplateWithExercises) Patterns() []ExercisePattern {
	out := make([]ExercisePattern, 0, len(t.Exercises))
	for _, te := range t.Exercises {
		out = append(out, ExercisePattern{Name: te.Name, DefaultSets: te.DefaultSets, Note: te.Note})
	}
	return out
}
