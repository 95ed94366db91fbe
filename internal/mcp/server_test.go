// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Drives the tool and resource handlers directly against a temp SQLite database.
package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// setupTestServer creates a server over a fresh database in a temp directory.
func setupTestServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()

	conn, err := db.InitDB(filepath.Join(t.TempDir(), "gym.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	server, err := NewServer(conn)
	require.NoError(t, err)
	return server, conn
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), v))
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)
	assert.NotNil(t, server.mcpServer)
	assert.NotNil(t, server.db)

	_, err := NewServer(nil)
	assert.Error(t, err)
}

func TestWorkoutFlow(t *testing.T) {
	server, conn := setupTestServer(t)
	ctx := context.Background()

	res, _, err := server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{})
	require.NoError(t, err)
	var started db.StartResult
	decodeResult(t, res, &started)
	require.NotZero(t, started.WorkoutID)

	res, _, err = server.handleAddExercise(ctx, &mcp.CallToolRequest{}, addExerciseInput{Name: "Bench Press"})
	require.NoError(t, err)
	var added map[string]int64
	decodeResult(t, res, &added)
	assert.Equal(t, started.WorkoutID, added["workout_id"])
	exerciseID := added["exercise_id"]

	res, _, err = server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: exerciseID})
	require.NoError(t, err)
	var placeholder setOutput
	decodeResult(t, res, &placeholder)
	assert.Nil(t, placeholder.PersonalRecord)

	res, _, err = server.handleUpdateSet(ctx, &mcp.CallToolRequest{}, updateSetInput{SetID: placeholder.SetID, Weight: 100, Reps: 5})
	require.NoError(t, err)
	var updated setOutput
	decodeResult(t, res, &updated)
	require.NotNil(t, updated.PersonalRecord)
	assert.Equal(t, 112.5, updated.PersonalRecord.Estimated1RM)

	res, _, err = server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: exerciseID, Weight: 90, Reps: 5})
	require.NoError(t, err)
	var weaker setOutput
	decodeResult(t, res, &weaker)
	assert.Nil(t, weaker.PersonalRecord)

	distance := 3000.0
	res, _, err = server.handleAddCardio(ctx, &mcp.CallToolRequest{}, addCardioInput{
		ActivityType: "rowing", DurationSeconds: 600, DistanceMeters: &distance, Notes: "cooldown",
	})
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(t, res))

	res, _, err = server.handleGetWorkout(ctx, &mcp.CallToolRequest{}, getWorkoutInput{})
	require.NoError(t, err)
	var detail models.WorkoutDetail
	decodeResult(t, res, &detail)
	require.Len(t, detail.Exercises, 1)
	assert.Len(t, detail.Exercises[0].Sets, 2)
	require.Len(t, detail.Cardio, 1)
	assert.Equal(t, models.CardioRowing, detail.Cardio[0].ActivityType)

	res, _, err = server.handleFinishWorkout(ctx, &mcp.CallToolRequest{}, finishWorkoutInput{Note: "solid"})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	w, err := db.GetWorkout(ctx, conn, started.WorkoutID)
	require.NoError(t, err)
	assert.True(t, w.IsFinished())

	res, _, err = server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{})
	require.NoError(t, err)
	var listed []models.WorkoutListItem
	decodeResult(t, res, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, started.WorkoutID, listed[0].ID)
}

func TestStartWorkoutConflict(t *testing.T) {
	server, conn := setupTestServer(t)
	ctx := context.Background()

	first, err := db.CreateWorkout(ctx, conn, nil, nil)
	require.NoError(t, err)
	require.NoError(t, db.UpdateWorkoutNote(ctx, conn, first, "warmup done"))

	res, _, err := server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "resolution")

	res, _, err = server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{Resolution: "finish"})
	require.NoError(t, err)
	var started db.StartResult
	decodeResult(t, res, &started)
	require.NotNil(t, started.FinishedID)
	assert.Equal(t, first, *started.FinishedID)

	res, _, err = server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{Resolution: "sideways"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestToolValidation(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (*mcp.CallToolResult, any, error)
	}{
		{"finish without workout", func() (*mcp.CallToolResult, any, error) {
			return server.handleFinishWorkout(ctx, &mcp.CallToolRequest{}, finishWorkoutInput{})
		}},
		{"missing workout", func() (*mcp.CallToolResult, any, error) {
			return server.handleGetWorkout(ctx, &mcp.CallToolRequest{}, getWorkoutInput{WorkoutID: 99})
		}},
		{"blank exercise name", func() (*mcp.CallToolResult, any, error) {
			return server.handleAddExercise(ctx, &mcp.CallToolRequest{}, addExerciseInput{Name: "  "})
		}},
		{"missing exercise", func() (*mcp.CallToolResult, any, error) {
			return server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: 5, Weight: 50, Reps: 5})
		}},
		{"negative set", func() (*mcp.CallToolResult, any, error) {
			return server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: 5, Weight: -1})
		}},
		{"missing set", func() (*mcp.CallToolResult, any, error) {
			return server.handleUpdateSet(ctx, &mcp.CallToolRequest{}, updateSetInput{SetID: 77, Weight: 50, Reps: 5})
		}},
		{"unknown cardio type", func() (*mcp.CallToolResult, any, error) {
			return server.handleAddCardio(ctx, &mcp.CallToolRequest{}, addCardioInput{ActivityType: "skydiving", DurationSeconds: 60})
		}},
		{"both sources", func() (*mcp.CallToolResult, any, error) {
			one := int64(1)
			return server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{TemplateID: &one, ProgramDayID: &one})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, err := tt.call()
			require.NoError(t, err)
			assert.True(t, res.IsError, resultText(t, res))
		})
	}
}

func TestAddCardioAdvertisedTypes(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	res, _, err := server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	desc := addCardioDescription()
	open, end := strings.Index(desc, "("), strings.Index(desc, ")")
	require.True(t, open >= 0 && end > open, desc)
	advertised := strings.Split(desc[open+1:end], ", ")
	assert.Len(t, advertised, len(models.CardioActivities))

	for _, activity := range advertised {
		res, _, err := server.handleAddCardio(ctx, &mcp.CallToolRequest{}, addCardioInput{ActivityType: activity, DurationSeconds: 60})
		require.NoError(t, err)
		assert.False(t, res.IsError, "advertised type %q rejected: %s", activity, resultText(t, res))
	}
}

func TestTemplatesAndPrograms(t *testing.T) {
	server, conn := setupTestServer(t)
	ctx := context.Background()

	res, _, err := server.handleListTemplates(ctx, &mcp.CallToolRequest{}, noInput{})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "No templates found.")

	templateID, err := db.CreateTemplate(ctx, conn, "Legs")
	require.NoError(t, err)
	_, err = db.AddTemplateExercise(ctx, conn, templateID, "Squat", 5, "")
	require.NoError(t, err)

	res, _, err = server.handleListTemplates(ctx, &mcp.CallToolRequest{}, noInput{})
	require.NoError(t, err)
	var templates []models.TemplateWithExercises
	decodeResult(t, res, &templates)
	require.Len(t, templates, 1)
	assert.Equal(t, 5, templates[0].Exercises[0].DefaultSets)

	res, _, err = server.handleGetNextProgramDay(ctx, &mcp.CallToolRequest{}, noInput{})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "No active program")

	programID, err := db.CreateProgram(ctx, conn, db.ProgramInput{Name: "Base"})
	require.NoError(t, err)
	dayID, err := db.AddProgramDay(ctx, conn, programID, 0, "Day A", nil)
	require.NoError(t, err)
	_, err = db.AddProgramDayExercise(ctx, conn, dayID, "Deadlift", 3, "")
	require.NoError(t, err)
	require.NoError(t, db.SetActiveProgram(ctx, conn, programID))

	res, _, err = server.handleGetNextProgramDay(ctx, &mcp.CallToolRequest{}, noInput{})
	require.NoError(t, err)
	var next models.NextProgramDay
	decodeResult(t, res, &next)
	assert.Equal(t, "Day A", next.NextDay.Name)

	res, _, err = server.handleStartWorkout(ctx, &mcp.CallToolRequest{}, startWorkoutInput{ProgramDayID: &dayID})
	require.NoError(t, err)
	var started db.StartResult
	decodeResult(t, res, &started)

	detail, err := db.GetWorkoutWithExercises(ctx, conn, started.WorkoutID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 1)
	assert.Equal(t, "Deadlift", detail.Exercises[0].Name)
	assert.Len(t, detail.Exercises[0].Sets, 3)
}

func TestStatsTools(t *testing.T) {
	server, conn := setupTestServer(t)
	ctx := context.Background()

	res, _, err := server.handleGetPersonalRecords(ctx, &mcp.CallToolRequest{}, personalRecordsInput{})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "No personal records found.")

	workoutID, err := db.CreateWorkout(ctx, conn, nil, nil)
	require.NoError(t, err)
	exerciseID, err := db.AddExercise(ctx, conn, workoutID, "Squat", "")
	require.NoError(t, err)
	_, _, err = server.handleAddSet(ctx, &mcp.CallToolRequest{}, addSetInput{ExerciseID: exerciseID, Weight: 120, Reps: 5})
	require.NoError(t, err)
	require.NoError(t, db.FinishWorkout(ctx, conn, workoutID, ""))

	res, _, err = server.handleGetPersonalRecords(ctx, &mcp.CallToolRequest{}, personalRecordsInput{Exercise: "SQUAT"})
	require.NoError(t, err)
	var pr models.PersonalRecord
	decodeResult(t, res, &pr)
	assert.Equal(t, "squat", pr.ExerciseName)
	assert.Equal(t, 135.0, pr.Estimated1RM)

	res, _, err = server.handleGetPersonalRecords(ctx, &mcp.CallToolRequest{}, personalRecordsInput{Days: 7})
	require.NoError(t, err)
	var recent []models.PersonalRecord
	decodeResult(t, res, &recent)
	assert.Len(t, recent, 1)

	res, _, err = server.handleGetMuscleDistribution(ctx, &mcp.CallToolRequest{}, daysInput{})
	require.NoError(t, err)
	var dist []map[string]any
	decodeResult(t, res, &dist)
	require.Len(t, dist, 1)

	res, _, err = server.handleGetDashboard(ctx, &mcp.CallToolRequest{}, noInput{})
	require.NoError(t, err)
	var dash map[string]any
	decodeResult(t, res, &dash)
	assert.EqualValues(t, 1, dash["sessions_per_week"])
}

func TestGetSchema(t *testing.T) {
	server, _ := setupTestServer(t)

	res, _, err := server.handleGetSchema(context.Background(), &mcp.CallToolRequest{}, noInput{})
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "## workouts")
	assert.Contains(t, text, "| program_day_index |")
	assert.Contains(t, text, "## personal_records")
}

func TestResources(t *testing.T) {
	server, conn := setupTestServer(t)
	ctx := context.Background()

	workoutID, err := db.CreateWorkout(ctx, conn, nil, nil)
	require.NoError(t, err)
	require.NoError(t, db.FinishWorkout(ctx, conn, workoutID, "easy day"))

	tests := []struct {
		uri     string
		handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)
		key     string
	}{
		{dashboardURI, server.handleDashboardResource, "last_30_days"},
		{recentURI, server.handleRecentResource, "workouts"},
		{recordsURI, server.handleRecordsResource, "records"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			result, err := tt.handler(ctx, &mcp.ReadResourceRequest{})
			require.NoError(t, err)
			require.Len(t, result.Contents, 1)
			assert.Equal(t, tt.uri, result.Contents[0].URI)
			assert.Equal(t, "application/json", result.Contents[0].MIMEType)

			var body map[string]any
			require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &body))
			assert.Contains(t, body, tt.key)
		})
	}
}
