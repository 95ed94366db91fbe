// ABOUTME: Sentinel errors returned by the gym repositories.
// ABOUTME: Callers match them with errors.Is.
package db

import "errors"

var (
	// ErrWorkoutInProgress is returned when a new workout would create a second unfinished one.
	ErrWorkoutInProgress = errors.New("a workout is already in progress")
	// ErrWorkoutNotFound is returned by operations that require an existing workout.
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrTemplateNotFound is returned when expanding a template that does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrProgramNotFound is returned by operations that require an existing program.
	ErrProgramNotFound = errors.New("program not found")
	// ErrProgramDayNotFound is returned when starting from a program day that does not exist.
	ErrProgramDayNotFound = errors.New("program day not found")
	// ErrSetNotFound is returned when updating a set that does not exist.
	ErrSetNotFound = errors.New("set not found")
	// ErrOrderMismatch is returned when a reorder list does not name every sibling exactly once.
	ErrOrderMismatch = errors.New("order list does not match existing items")
)
