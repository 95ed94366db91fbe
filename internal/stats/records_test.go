// ABOUTME: Tests for personal record detection and lookup.
// ABOUTME: Records are strictly-greater, case-insensitive and append-only.
package stats

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/gym/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSetUpdateScenario(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	wID, err := db.CreateWorkout(ctx, conn, nil, nil)
	require.NoError(t, err)
	exID, err := db.AddExercise(ctx, conn, wID, "Squat", "")
	require.NoError(t, err)
	var sets []int64
	for i := 0; i < 3; i++ {
		id, err := db.AddSet(ctx, conn, exID, 0, 0)
		require.NoError(t, err)
		sets = append(sets, id)
	}

	pr, err := RecordSetUpdate(ctx, conn, sets[0], 100, 5)
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.Equal(t, "squat", pr.ExerciseName)
	assert.InDelta(t, 112.5, pr.Estimated1RM, 0.001)
	assert.Equal(t, wID, pr.WorkoutID)

	// Same numbers again: the set is no longer a placeholder and e1RM does not improve.
	pr, err = RecordSetUpdate(ctx, conn, sets[0], 100, 5)
	require.NoError(t, err)
	assert.Nil(t, pr)

	pr, err = CheckAndRecordPR(ctx, conn, "Squat", 100, 5, wID)
	require.NoError(t, err)
	assert.Nil(t, pr)

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM personal_records`).Scan(&n))
	assert.Equal(t, 1, n)

	_, err = RecordSetUpdate(ctx, conn, 999, 100, 5)
	assert.ErrorIs(t, err, db.ErrSetNotFound)
}

func TestIsSetCompletion(t *testing.T) {
	assert.True(t, IsSetCompletion(0, 0, 60, 8))
	assert.False(t, IsSetCompletion(0, 0, 60, 0))
	assert.False(t, IsSetCompletion(60, 8, 70, 8))
	assert.False(t, IsSetCompletion(60, 0, 60, 8))
}

func TestCheckAndRecordPR(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	pr, err := CheckAndRecordPR(ctx, conn, "Bench Press", 0, 5, 1)
	require.NoError(t, err)
	assert.Nil(t, pr, "incomplete set is never a record")

	pr, err = CheckAndRecordPR(ctx, conn, "Bench Press", 80, 5, 1)
	require.NoError(t, err)
	require.NotNil(t, pr)

	// Tie on e1RM does not re-record, regardless of name casing.
	pr, err = CheckAndRecordPR(ctx, conn, "  BENCH press ", 80, 5, 2)
	require.NoError(t, err)
	assert.Nil(t, pr)

	pr, err = CheckAndRecordPR(ctx, conn, "bench press", 85, 5, 2)
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.InDelta(t, 95.6, pr.Estimated1RM, 0.001)

	best, err := GetExercisePR(ctx, conn, "Bench Press")
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 85.0, best.Weight)

	none, err := GetExercisePR(ctx, conn, "Curl")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGetAllPRs(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	for _, s := range []setSpec{
		{"Squat", 100, 5},
		{"Squat", 110, 5},
		{"Deadlift", 140, 3},
		{"Bench Press", 80, 8},
	} {
		_, err := CheckAndRecordPR(ctx, conn, s.exercise, s.weight, s.reps, 1)
		require.NoError(t, err)
	}

	all, err := GetAllPRs(ctx, conn)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bench press", all[0].ExerciseName)
	assert.Equal(t, "deadlift", all[1].ExerciseName)
	assert.Equal(t, "squat", all[2].ExerciseName)
	assert.Equal(t, 110.0, all[2].Weight)
}

func TestGetRecentPRs(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	now = func() time.Time { return daysBefore(60) }
	_, err := CheckAndRecordPR(ctx, conn, "Squat", 100, 5, 1)
	require.NoError(t, err)

	now = func() time.Time { return daysBefore(2) }
	_, err = CheckAndRecordPR(ctx, conn, "Squat", 105, 5, 2)
	require.NoError(t, err)

	now = func() time.Time { return fixedNow }
	recent, err := GetRecentPRs(ctx, conn, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 105.0, recent[0].Weight)

	recent, err = GetRecentPRs(ctx, conn, 90)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
