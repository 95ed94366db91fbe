// ABOUTME: PersonalRecord model, an append-only history of e1RM bests.
// ABOUTME: Rows are keyed by normalized exercise name.
package models

import "time"

// PersonalRecord is a set that improved the best estimated one-rep max for an exercise.
type PersonalRecord struct {
	ID           int64     `json:"id" yaml:"id"`
	ExerciseName string    `json:"exercise_name" yaml:"exercise_name"`
	Weight       float64   `json:"weight" yaml:"weight"`
	Reps         int       `json:"reps" yaml:"reps"`
	Estimated1RM float64   `json:"estimated_1rm" yaml:"estimated_1rm"`
	AchievedAt   time.Time `json:"achieved_at" yaml:"achieved_at"`
	WorkoutID    int64     `json:"workout_id" yaml:"workout_id"`
}
