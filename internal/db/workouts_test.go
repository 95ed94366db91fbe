// ABOUTME: Tests for workout lifecycle operations.
// ABOUTME: Covers the single in-progress rule, emptiness, listings and cascades.
package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFinishWorkout(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	start := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	setClock(t, start)

	id, err := CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)

	w, err := GetInProgressWorkout(ctx, db)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, id, w.ID)
	assert.True(t, w.StartedAt.Equal(start))
	assert.False(t, w.IsFinished())

	setClock(t, start.Add(50*time.Minute))
	require.NoError(t, FinishWorkout(ctx, db, id, "  "))

	w, err = GetWorkout(ctx, db, id)
	require.NoError(t, err)
	require.NotNil(t, w.FinishedAt)
	assert.Nil(t, w.Note, "blank note stored as NULL")
	assert.Equal(t, 50*time.Minute, w.Duration())

	inProgress, err := GetInProgressWorkout(ctx, db)
	require.NoError(t, err)
	assert.Nil(t, inProgress)
}

func TestCreateWorkoutRejectsSecondInProgress(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)

	_, err = CreateWorkout(ctx, db, nil, nil)
	assert.ErrorIs(t, err, ErrWorkoutInProgress)
	assert.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM workouts WHERE finished_at IS NULL"))
}

func TestGetWorkoutMissing(t *testing.T) {
	db := setupTestDB(t)

	w, err := GetWorkout(context.Background(), db, 999)
	require.NoError(t, err)
	assert.Nil(t, w)

	detail, err := GetWorkoutWithExercises(context.Background(), db, 999)
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestIsWorkoutEmpty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, err := CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)

	empty, err := IsWorkoutEmpty(ctx, db, id)
	require.NoError(t, err)
	assert.True(t, empty)

	// Cardio alone does not make a workout non-empty.
	_, err = AddCardioActivity(ctx, db, id, "rowing", 600, CardioOptions{})
	require.NoError(t, err)
	empty, err = IsWorkoutEmpty(ctx, db, id)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, UpdateWorkoutNote(ctx, db, id, "felt good"))
	empty, err = IsWorkoutEmpty(ctx, db, id)
	require.NoError(t, err)
	assert.False(t, empty)

	require.NoError(t, UpdateWorkoutNote(ctx, db, id, ""))
	exID, err := AddExercise(ctx, db, id, "Squat", "")
	require.NoError(t, err)
	empty, err = IsWorkoutEmpty(ctx, db, id)
	require.NoError(t, err)
	assert.False(t, empty)

	require.NoError(t, DeleteExercise(ctx, db, exID))
	empty, err = IsWorkoutEmpty(ctx, db, id)
	require.NoError(t, err)
	assert.True(t, empty)

	empty, err = IsWorkoutEmpty(ctx, db, 12345)
	require.NoError(t, err)
	assert.True(t, empty, "missing workout counts as empty")
}

func TestGetRecentWorkouts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	programID, err := CreateProgram(ctx, db, ProgramInput{Name: "PPL"})
	require.NoError(t, err)
	_, err = AddProgramDay(ctx, db, programID, 0, "Push", nil)
	require.NoError(t, err)

	setClock(t, base)
	first := startFinished(t, db, "first")

	setClock(t, base.Add(24*time.Hour))
	dayIndex := 0
	second, err := CreateWorkout(ctx, db, &programID, &dayIndex)
	require.NoError(t, err)
	require.NoError(t, FinishWorkout(ctx, db, second, ""))

	setClock(t, base.Add(48*time.Hour))
	_, err = CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)

	items, err := GetRecentWorkouts(ctx, db, 0)
	require.NoError(t, err)
	require.Len(t, items, 2, "in-progress workout is excluded")

	assert.Equal(t, second, items[0].ID)
	require.NotNil(t, items[0].ProgramName)
	assert.Equal(t, "PPL", *items[0].ProgramName)
	require.NotNil(t, items[0].DayName)
	assert.Equal(t, "Push", *items[0].DayName)

	assert.Equal(t, first, items[1].ID)
	assert.Nil(t, items[1].ProgramName)

	items, err = GetRecentWorkouts(ctx, db, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGetWorkoutWithExercises(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, err := CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)

	squat, err := AddExercise(ctx, db, id, "Squat", "low bar")
	require.NoError(t, err)
	bench, err := AddExercise(ctx, db, id, "Bench Press", "")
	require.NoError(t, err)
	_, err = AddSet(ctx, db, squat, 100, 5)
	require.NoError(t, err)
	_, err = AddSet(ctx, db, squat, 110, 3)
	require.NoError(t, err)
	_, err = AddSet(ctx, db, bench, 80, 8)
	require.NoError(t, err)
	_, err = AddCardioActivity(ctx, db, id, "bike", 900, CardioOptions{})
	require.NoError(t, err)

	detail, err := GetWorkoutWithExercises(ctx, db, id)
	require.NoError(t, err)
	require.NotNil(t, detail)

	require.Len(t, detail.Exercises, 2)
	assert.Equal(t, "Squat", detail.Exercises[0].Name)
	assert.Equal(t, "low bar", *detail.Exercises[0].Note)
	require.Len(t, detail.Exercises[0].Sets, 2)
	assert.Equal(t, 110.0, detail.Exercises[0].Sets[1].Weight)
	assert.Equal(t, "Bench Press", detail.Exercises[1].Name)
	assert.Len(t, detail.Exercises[1].Sets, 1)
	require.Len(t, detail.Cardio, 1)
	assert.Equal(t, 900, detail.Cardio[0].DurationSeconds)
	assert.Equal(t, 100.0*5+110*3+80*8, detail.Volume())
}

func TestDeleteWorkoutCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, err := CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)
	exID, err := AddExercise(ctx, db, id, "Deadlift", "")
	require.NoError(t, err)
	_, err = AddSet(ctx, db, exID, 140, 5)
	require.NoError(t, err)
	_, err = AddCardioActivity(ctx, db, id, "walking", 300, CardioOptions{})
	require.NoError(t, err)

	require.NoError(t, DeleteWorkout(ctx, db, id))

	assert.Equal(t, 0, countRows(t, db, "SELECT COUNT(*) FROM exercises"))
	assert.Equal(t, 0, countRows(t, db, "SELECT COUNT(*) FROM sets"))
	assert.Equal(t, 0, countRows(t, db, "SELECT COUNT(*) FROM cardio_activities"))
}
