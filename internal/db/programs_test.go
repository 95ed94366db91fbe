// ABOUTME: Tests for programs, the active flag and cycle advancement.
// ABOUTME: Covers destructive resync, ordered deletes and legacy template days.
package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/harperreed/gym/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pattern(name string, sets int) models.ExercisePattern {
	return models.ExercisePattern{Name: name, DefaultSets: sets}
}

// createCycle builds a program with days [workout, rest, workout].
func createCycle(t *testing.T, conn DBTX) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := CreateProgram(ctx, conn, ProgramInput{Name: "A/Rest/B"})
	require.NoError(t, err)
	require.NoError(t, ReplaceProgramDays(ctx, conn, id, []ProgramDayInput{
		{Name: "Day A", Exercises: []models.ExercisePattern{pattern("Squat", 3), pattern("Bench Press", 3)}},
		{Name: "Rest"},
		{Name: "Day B", Exercises: []models.ExercisePattern{pattern("Deadlift", 2)}},
	}))
	return id
}

func TestCreateProgramDefaults(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, err := CreateProgram(ctx, db, ProgramInput{Name: " Strength "})
	require.NoError(t, err)

	p, err := GetProgramByID(ctx, db, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Strength", p.Name)
	assert.Equal(t, models.NoImage, p.ImageIndex)
	assert.False(t, p.IsActive)
	assert.Empty(t, p.Days)

	missing, err := GetProgramByID(ctx, db, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProgramDaysAreOrdered(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	id := createCycle(t, db)

	p, err := GetProgramByID(ctx, db, id)
	require.NoError(t, err)
	require.Len(t, p.Days, 3)
	for i, d := range p.Days {
		assert.Equal(t, i, d.DayIndex)
	}
	assert.Len(t, p.Days[0].Exercises, 2)
	assert.True(t, p.Days[1].IsRestDay())
	assert.Equal(t, "Deadlift", p.Days[2].Exercises[0].Name)
	assert.Equal(t, 2, p.WorkoutDayCount())

	exercises, err := GetProgramDayExercises(ctx, db, p.Days[0].ID)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "Bench Press", exercises[1].Name)
}

func TestSetActiveProgram(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"One", "Two", "Three"} {
		id, err := CreateProgram(ctx, db, ProgramInput{Name: name})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	// Force a corrupted state with several active programs.
	_, err := db.Exec(`UPDATE programs SET is_active = 1`)
	require.NoError(t, err)

	require.NoError(t, SetActiveProgram(ctx, db, ids[1]))
	assert.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM programs WHERE is_active = 1"))

	active, err := GetActiveProgram(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, ids[1], active.ID)

	all, err := GetAllPrograms(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, ids[1], all[0].ID, "active program listed first")

	err = SetActiveProgram(ctx, db, 999)
	assert.ErrorIs(t, err, ErrProgramNotFound)
	assert.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM programs WHERE is_active = 1"), "failed switch rolls back")

	require.NoError(t, ClearActiveProgram(ctx, db))
	active, err = GetActiveProgram(ctx, db)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestGetNextProgramDay(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	next, err := GetNextProgramDay(ctx, db)
	require.NoError(t, err)
	assert.Nil(t, next, "no active program")

	id := createCycle(t, db)
	require.NoError(t, SetActiveProgram(ctx, db, id))

	next, err = GetNextProgramDay(ctx, db)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, 0, next.NextDay.DayIndex)

	wID, err := CreateWorkoutFromProgramDay(ctx, db, next.NextDay.ID, id, next.NextDay.DayIndex)
	require.NoError(t, err)

	// An unfinished workout does not advance the cycle.
	next, err = GetNextProgramDay(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 0, next.NextDay.DayIndex)

	require.NoError(t, FinishWorkout(ctx, db, wID, ""))
	next, err = GetNextProgramDay(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, next.NextDay.DayIndex)
	assert.True(t, next.NextDay.IsRestDay())

	// Finishing the last day wraps back to the first.
	two := 2
	wID, err = CreateWorkout(ctx, db, &id, &two)
	require.NoError(t, err)
	require.NoError(t, FinishWorkout(ctx, db, wID, ""))
	next, err = GetNextProgramDay(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 0, next.NextDay.DayIndex)
}

func TestGetNextProgramDayWithoutDays(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, err := CreateProgram(ctx, db, ProgramInput{Name: "Empty"})
	require.NoError(t, err)
	require.NoError(t, SetActiveProgram(ctx, db, id))

	next, err := GetNextProgramDay(ctx, db)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestCreateWorkoutFromProgramDay(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	id := createCycle(t, db)

	p, err := GetProgramByID(ctx, db, id)
	require.NoError(t, err)

	wID, err := CreateWorkoutFromProgramDay(ctx, db, p.Days[0].ID, id, 0)
	require.NoError(t, err)

	detail, err := GetWorkoutWithExercises(ctx, db, wID)
	require.NoError(t, err)
	require.NotNil(t, detail.ProgramID)
	assert.Equal(t, id, *detail.ProgramID)
	assert.Equal(t, 0, *detail.ProgramDayIndex)
	assert.Equal(t, "Day A", *detail.DayName)
	require.Len(t, detail.Exercises, 2)
	assert.Len(t, detail.Exercises[0].Sets, 3)
}

func TestCreateWorkoutFromLegacyTemplateDay(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tID, err := CreateTemplate(ctx, db, "Legacy")
	require.NoError(t, err)
	_, err = AddTemplateExercise(ctx, db, tID, "Overhead Press", 2, "")
	require.NoError(t, err)

	pID, err := CreateProgram(ctx, db, ProgramInput{Name: "Old style"})
	require.NoError(t, err)
	dayID, err := AddProgramDay(ctx, db, pID, 0, "Press", &tID)
	require.NoError(t, err)

	wID, err := CreateWorkoutFromProgramDay(ctx, db, dayID, pID, 0)
	require.NoError(t, err)

	detail, err := GetWorkoutWithExercises(ctx, db, wID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 1)
	assert.Equal(t, "Overhead Press", detail.Exercises[0].Name)
	assert.Len(t, detail.Exercises[0].Sets, 2)

	p, err := GetProgramByID(ctx, db, pID)
	require.NoError(t, err)
	require.NotNil(t, p.Days[0].Template)
	assert.Equal(t, "Legacy", p.Days[0].Template.Name)
}

func TestUpdateProgramResyncsDays(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	id := createCycle(t, db)

	desc := "four day split"
	img := 2
	require.NoError(t, UpdateProgram(ctx, db, id, ProgramInput{Name: "Split", Description: &desc, ImageIndex: &img}))

	p, err := GetProgramByID(ctx, db, id)
	require.NoError(t, err)
	assert.Equal(t, "Split", p.Name)
	assert.Equal(t, desc, *p.Description)
	assert.Equal(t, 2, p.ImageIndex)
	assert.Empty(t, p.Days, "update removes days for the caller to re-insert")
	assert.Equal(t, 0, countRows(t, db, "SELECT COUNT(*) FROM program_day_exercises"))

	require.NoError(t, ReplaceProgramDays(ctx, db, id, []ProgramDayInput{
		{Name: "Upper", Exercises: []models.ExercisePattern{pattern("Bench Press", 4)}},
	}))
	p, err = GetProgramByID(ctx, db, id)
	require.NoError(t, err)
	require.Len(t, p.Days, 1)
	assert.Equal(t, 4, p.Days[0].Exercises[0].DefaultSets)
}

func TestDeleteProgram(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	id := createCycle(t, db)

	zero := 0
	wID, err := CreateWorkout(ctx, db, &id, &zero)
	require.NoError(t, err)

	require.NoError(t, DeleteProgram(ctx, db, id))

	p, err := GetProgramByID(ctx, db, id)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 0, countRows(t, db, "SELECT COUNT(*) FROM program_days"))
	assert.Equal(t, 0, countRows(t, db, "SELECT COUNT(*) FROM program_day_exercises"))

	var programID sql.NullInt64
	require.NoError(t, db.QueryRow(`SELECT program_id FROM workouts WHERE id = ?`, wID).Scan(&programID))
	assert.False(t, programID.Valid, "workout keeps its data with program cleared")
}
