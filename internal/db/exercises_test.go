// ABOUTME: Tests for exercise and set ordering and CRUD.
// ABOUTME: Append uses the sibling count and reorder rewrites every sibling.
package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddExerciseOrderIndex(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	wID, err := CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)

	a, err := AddExercise(ctx, db, wID, "  Squat ", "")
	require.NoError(t, err)
	b, err := AddExercise(ctx, db, wID, "Bench", "")
	require.NoError(t, err)

	exA, err := GetExercise(ctx, db, a)
	require.NoError(t, err)
	assert.Equal(t, "Squat", exA.Name)
	assert.Equal(t, 0, exA.OrderIndex)

	exB, err := GetExercise(ctx, db, b)
	require.NoError(t, err)
	assert.Equal(t, 1, exB.OrderIndex)

	// Deleting does not compact; the next append uses the current count.
	require.NoError(t, DeleteExercise(ctx, db, a))
	c, err := AddExercise(ctx, db, wID, "Row", "")
	require.NoError(t, err)
	exC, err := GetExercise(ctx, db, c)
	require.NoError(t, err)
	assert.Equal(t, 1, exC.OrderIndex)

	missing, err := GetExercise(ctx, db, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateExerciseNote(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	wID, err := CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)
	id, err := AddExercise(ctx, db, wID, "Squat", "")
	require.NoError(t, err)

	require.NoError(t, UpdateExerciseNote(ctx, db, id, "belt on"))
	ex, err := GetExercise(ctx, db, id)
	require.NoError(t, err)
	require.NotNil(t, ex.Note)
	assert.Equal(t, "belt on", *ex.Note)
}

func TestReorderExercises(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	wID, err := CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)
	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		id, err := AddExercise(ctx, db, wID, name, "")
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, ReorderExercises(ctx, db, wID, []int64{ids[2], ids[0], ids[1]}))

	detail, err := GetWorkoutWithExercises(ctx, db, wID)
	require.NoError(t, err)
	var names []string
	for _, ex := range detail.Exercises {
		names = append(names, ex.Name)
	}
	assert.Equal(t, []string{"C", "A", "B"}, names)

	err = ReorderExercises(ctx, db, wID, []int64{ids[0], ids[1]})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	err = ReorderExercises(ctx, db, wID, []int64{ids[0], ids[0], ids[1]})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	// The update for an id outside the workout touches no rows.
	err = ReorderExercises(ctx, db, wID, []int64{ids[0], ids[1], 9999})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	// A failed reorder leaves the previous order intact.
	detail, err = GetWorkoutWithExercises(ctx, db, wID)
	require.NoError(t, err)
	assert.Equal(t, "C", detail.Exercises[0].Name)
}

func TestSetCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	wID, err := CreateWorkout(ctx, db, nil, nil)
	require.NoError(t, err)
	exID, err := AddExercise(ctx, db, wID, "Squat", "")
	require.NoError(t, err)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := AddSet(ctx, db, exID, 0, 0)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	s, err := GetSet(ctx, db, ids[2])
	require.NoError(t, err)
	assert.Equal(t, 2, s.OrderIndex)
	assert.True(t, s.IsPlaceholder())

	require.NoError(t, UpdateSet(ctx, db, ids[0], 100, 5))
	s, err = GetSet(ctx, db, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.Weight)
	assert.Equal(t, 5, s.Reps)

	require.NoError(t, ReorderSets(ctx, db, exID, []int64{ids[1], ids[2], ids[0]}))
	s, err = GetSet(ctx, db, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 2, s.OrderIndex)

	require.NoError(t, DeleteSet(ctx, db, ids[1]))
	s, err = GetSet(ctx, db, ids[1])
	require.NoError(t, err)
	assert.Nil(t, s)
}
