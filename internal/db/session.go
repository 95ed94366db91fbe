// ABOUTME: Session policy on top of the workout repository.
// ABOUTME: Empty-workout cleanup and conflict resolution when starting a workout.
package db

import (
	"context"
	"fmt"
)

// FinishedToStartNote is stored on a workout finished to make room for a new one.
const FinishedToStartNote = "Finished to start new session"

// ConflictResolution chooses what happens to a non-empty in-progress workout
// when another one is started.
type ConflictResolution int

const (
	// ResolveNone refuses to start and reports the conflict.
	ResolveNone ConflictResolution = iota
	// ResolveContinue keeps the existing workout and starts nothing.
	ResolveContinue
	// ResolveFinish finishes the existing workout, then starts the new one.
	ResolveFinish
	// ResolveDiscard deletes the existing workout, then starts the new one.
	ResolveDiscard
)

// String returns the lower-case name of the resolution.
func (r ConflictResolution) String() string {
	switch r {
	case ResolveContinue:
		return "continue"
	case ResolveFinish:
		return "finish"
	case ResolveDiscard:
		return "discard"
	default:
		return "none"
	}
}

// ParseConflictResolution maps a name from String back to its value.
func ParseConflictResolution(s string) (ConflictResolution, error) {
	switch s {
	case "", "none":
		return ResolveNone, nil
	case "continue":
		return ResolveContinue, nil
	case "finish":
		return ResolveFinish, nil
	case "discard":
		return ResolveDiscard, nil
	}
	return ResolveNone, fmt.Errorf("unknown conflict resolution %q", s)
}

// ConflictError reports a non-empty in-progress workout blocking a new one.
type ConflictError struct {
	WorkoutID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("workout %d is in progress and not empty", e.WorkoutID)
}

// Unwrap lets errors.Is match ErrWorkoutInProgress.
func (e *ConflictError) Unwrap() error {
	return ErrWorkoutInProgress
}

// StartRequest names what to start from and how to handle an existing session.
// With neither TemplateID nor ProgramDayID set an empty workout is started.
type StartRequest struct {
	TemplateID   *int64
	ProgramDayID *int64
	Resolution   ConflictResolution
}

// StartResult reports what StartWorkout did.
type StartResult struct {
	WorkoutID int64 `json:"workout_id"`
	// Continued is true when the existing workout was kept and returned.
	Continued bool `json:"continued"`
	// FinishedID and DiscardedID name the workout that made room, if any.
	FinishedID  *int64 `json:"finished_id,omitempty"`
	DiscardedID *int64 `json:"discarded_id,omitempty"`
	// CleanedID names an empty in-progress workout that was removed.
	CleanedID *int64 `json:"cleaned_id,omitempty"`
}

// StartWorkout starts a workout, resolving any in-progress one first. An empty
// in-progress workout is deleted silently. A non-empty one is handled according
// to req.Resolution, and ResolveNone returns a *ConflictError.
func StartWorkout(ctx context.Context, conn DBTX, req StartRequest) (*StartResult, error) {
	result := &StartResult{}
	err := WithTx(ctx, conn, func(tx DBTX) error {
		existing, err := GetInProgressWorkout(ctx, tx)
		if err != nil {
			return err
		}

		if existing != nil {
			id := existing.ID
			empty, err := IsWorkoutEmpty(ctx, tx, id)
			if err != nil {
				return err
			}
			switch {
			case empty:
				if err := DeleteWorkout(ctx, tx, id); err != nil {
					return err
				}
				result.CleanedID = &id
			case req.Resolution == ResolveContinue:
				result.WorkoutID = id
				result.Continued = true
				return nil
			case req.Resolution == ResolveFinish:
				if err := FinishWorkout(ctx, tx, id, FinishedToStartNote); err != nil {
					return err
				}
				result.FinishedID = &id
			case req.Resolution == ResolveDiscard:
				if err := DeleteWorkout(ctx, tx, id); err != nil {
					return err
				}
				result.DiscardedID = &id
			default:
				return &ConflictError{WorkoutID: id}
			}
		}

		result.WorkoutID, err = createFromRequest(ctx, tx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func createFromRequest(ctx context.Context, tx DBTX, req StartRequest) (int64, error) {
	switch {
	case req.ProgramDayID != nil:
		day, err := GetProgramDay(ctx, tx, *req.ProgramDayID)
		if err != nil {
			return 0, err
		}
		if day == nil {
			return 0, ErrProgramDayNotFound
		}
		return CreateWorkoutFromProgramDay(ctx, tx, day.ID, day.ProgramID, day.DayIndex)
	case req.TemplateID != nil:
		return CreateWorkoutFromTemplate(ctx, tx, *req.TemplateID, nil, nil)
	default:
		return CreateWorkout(ctx, tx, nil, nil)
	}
}

// AbandonWorkout deletes the workout when it is empty, as when a user backs out
// of a session without finishing it. It reports whether the workout was deleted.
func AbandonWorkout(ctx context.Context, conn DBTX, id int64) (bool, error) {
	deleted := false
	err := WithTx(ctx, conn, func(tx DBTX) error {
		w, err := GetWorkout(ctx, tx, id)
		if err != nil || w == nil {
			return err
		}
		empty, err := IsWorkoutEmpty(ctx, tx, id)
		if err != nil || !empty {
			return err
		}
		if err := DeleteWorkout(ctx, tx, id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}
