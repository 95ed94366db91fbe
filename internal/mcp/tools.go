// ABOUTME: MCP tool implementations for the gym tracker.
// ABOUTME: Workout logging, templates, programs and statistics exposed as tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultListLimit = 20

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a workout, empty or from a template or program day. An empty in-progress workout is replaced silently; a non-empty one needs resolution continue, finish or discard.",
	}, s.handleStartWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish a workout (defaults to the one in progress) with an optional note.",
	}, s.handleFinishWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with its exercises, sets and cardio. Defaults to the one in progress.",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List finished workouts, most recent first.",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Append an exercise to a workout (defaults to the one in progress).",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Append a weight x reps set to an exercise. A filled set is checked for a personal record.",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Change a set's weight and reps. Filling a placeholder set is checked for a personal record.",
	}, s.handleUpdateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_cardio",
		Description: addCardioDescription(),
	}, s.handleAddCardio)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_templates",
		Description: "List workout templates with their exercises.",
	}, s.handleListTemplates)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_next_program_day",
		Description: "Return the active program and the day that comes next in its cycle.",
	}, s.handleGetNextProgramDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Return the last session summary, sessions this week, cycle progress and streak.",
	}, s.handleGetDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_personal_records",
		Description: "Return personal records: the best for one exercise, those set in the last N days, or the best of every exercise.",
	}, s.handleGetPersonalRecords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_muscle_distribution",
		Description: "Return lifted volume per muscle group over the last N days (default 30).",
	}, s.handleGetMuscleDistribution)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_schema",
		Description: "Return the live SQLite schema of the gym tables: columns, types, nullability, defaults.",
	}, s.handleGetSchema)
}

// Tool input types

type startWorkoutInput struct {
	TemplateID   *int64 `json:"template_id,omitempty" jsonschema:"Template to expand into the new workout"`
	ProgramDayID *int64 `json:"program_day_id,omitempty" jsonschema:"Program day to expand into the new workout"`
	Resolution   string `json:"resolution,omitempty" jsonschema:"What to do with a non-empty workout in progress: continue, finish or discard"`
}

type finishWorkoutInput struct {
	WorkoutID int64  `json:"workout_id,omitempty" jsonschema:"Workout id, defaults to the one in progress"`
	Note      string `json:"note,omitempty" jsonschema:"Optional note"`
}

type getWorkoutInput struct {
	WorkoutID int64 `json:"workout_id,omitempty" jsonschema:"Workout id, defaults to the one in progress"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type addExerciseInput struct {
	WorkoutID int64  `json:"workout_id,omitempty" jsonschema:"Workout id, defaults to the one in progress"`
	Name      string `json:"name" jsonschema:"Exercise name, e.g. Bench Press"`
	Note      string `json:"note,omitempty" jsonschema:"Optional note"`
}

type addSetInput struct {
	ExerciseID int64   `json:"exercise_id" jsonschema:"Exercise id"`
	Weight     float64 `json:"weight,omitempty" jsonschema:"Weight lifted, 0 for a placeholder"`
	Reps       int     `json:"reps,omitempty" jsonschema:"Repetitions, 0 for a placeholder"`
}

type updateSetInput struct {
	SetID  int64   `json:"set_id" jsonschema:"Set id"`
	Weight float64 `json:"weight" jsonschema:"Weight lifted"`
	Reps   int     `json:"reps" jsonschema:"Repetitions"`
}

type addCardioInput struct {
	WorkoutID       int64    `json:"workout_id,omitempty" jsonschema:"Workout id, defaults to the one in progress"`
	ActivityType    string   `json:"activity_type" jsonschema:"Activity type, e.g. running or rowing"`
	DurationSeconds int      `json:"duration_seconds" jsonschema:"Duration in seconds"`
	DistanceMeters  *float64 `json:"distance_meters,omitempty" jsonschema:"Distance in meters"`
	CaloriesBurned  *int     `json:"calories_burned,omitempty" jsonschema:"Calories burned"`
	AvgHeartRate    *int     `json:"avg_heart_rate,omitempty" jsonschema:"Average heart rate"`
	Notes           string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type personalRecordsInput struct {
	Exercise string `json:"exercise,omitempty" jsonschema:"Exercise name; returns only its best record"`
	Days     int    `json:"days,omitempty" jsonschema:"Only records set in the last N days"`
}

type noInput struct{}

type daysInput struct {
	Days int `json:"days,omitempty" jsonschema:"Window in days (default 30)"`
}

// setOutput is returned by set tools so callers see a new record immediately.
type setOutput struct {
	SetID          int64                  `json:"set_id"`
	PersonalRecord *models.PersonalRecord `json:"personal_record,omitempty"`
}

// Result helpers

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil, nil
}

func errorResult(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}, nil, nil
}

func messageResult(msg string) (*mcp.CallToolResult, any, error) {
	return jsonResult(map[string]string{"message": msg})
}

// resolveWorkoutID returns id, or the in-progress workout when id is zero.
func (s *Server) resolveWorkoutID(ctx context.Context, id int64) (int64, error) {
	if id > 0 {
		w, err := db.GetWorkout(ctx, s.db, id)
		if err != nil {
			return 0, err
		}
		if w == nil {
			return 0, fmt.Errorf("%w: %d", db.ErrWorkoutNotFound, id)
		}
		return id, nil
	}
	w, err := db.GetInProgressWorkout(ctx, s.db)
	if err != nil {
		return 0, err
	}
	if w == nil {
		return 0, errors.New("no workout in progress")
	}
	return w.ID, nil
}

// Tool handlers

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, any, error) {
	if input.TemplateID != nil && input.ProgramDayID != nil {
		return errorResult("Pass either template_id or program_day_id, not both")
	}
	resolution, err := db.ParseConflictResolution(strings.ToLower(strings.TrimSpace(input.Resolution)))
	if err != nil {
		return errorResult(err.Error())
	}

	result, err := db.StartWorkout(ctx, s.db, db.StartRequest{
		TemplateID:   input.TemplateID,
		ProgramDayID: input.ProgramDayID,
		Resolution:   resolution,
	})
	var conflict *db.ConflictError
	if errors.As(err, &conflict) {
		return errorResult(fmt.Sprintf("Workout %d is in progress. Retry with resolution continue, finish or discard.", conflict.WorkoutID))
	}
	if err != nil {
		return errorResult("Error starting workout: " + err.Error())
	}
	return jsonResult(result)
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input finishWorkoutInput) (*mcp.CallToolResult, any, error) {
	id, err := s.resolveWorkoutID(ctx, input.WorkoutID)
	if err != nil {
		return errorResult(err.Error())
	}
	if err := db.FinishWorkout(ctx, s.db, id, input.Note); err != nil {
		return errorResult(err.Error())
	}
	return messageResult(fmt.Sprintf("Finished workout %d", id))
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	id, err := s.resolveWorkoutID(ctx, input.WorkoutID)
	if err != nil {
		return errorResult(err.Error())
	}
	detail, err := db.GetWorkoutWithExercises(ctx, s.db, id)
	if err != nil {
		return errorResult(err.Error())
	}
	if detail == nil {
		return errorResult(fmt.Sprintf("workout not found: %d", id))
	}
	return jsonResult(detail)
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}
	workouts, err := db.GetRecentWorkouts(ctx, s.db, input.Limit)
	if err != nil {
		return errorResult(err.Error())
	}
	if len(workouts) == 0 {
		return messageResult("No workouts found.")
	}
	return jsonResult(workouts)
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return errorResult("name is required")
	}
	workoutID, err := s.resolveWorkoutID(ctx, input.WorkoutID)
	if err != nil {
		return errorResult(err.Error())
	}
	id, err := db.AddExercise(ctx, s.db, workoutID, name, input.Note)
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(map[string]int64{"exercise_id": id, "workout_id": workoutID})
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input addSetInput) (*mcp.CallToolResult, any, error) {
	if input.Weight < 0 || input.Reps < 0 {
		return errorResult("weight and reps must not be negative")
	}
	ex, err := db.GetExercise(ctx, s.db, input.ExerciseID)
	if err != nil {
		return errorResult(err.Error())
	}
	if ex == nil {
		return errorResult(fmt.Sprintf("exercise not found: %d", input.ExerciseID))
	}

	id, err := db.AddSet(ctx, s.db, ex.ID, input.Weight, input.Reps)
	if err != nil {
		return errorResult(err.Error())
	}
	out := setOutput{SetID: id}
	if input.Weight > 0 && input.Reps > 0 {
		out.PersonalRecord, err = stats.CheckAndRecordPR(ctx, s.db, ex.Name, input.Weight, input.Reps, ex.WorkoutID)
		if err != nil {
			return errorResult(err.Error())
		}
	}
	return jsonResult(out)
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, any, error) {
	if input.Weight < 0 || input.Reps < 0 {
		return errorResult("weight and reps must not be negative")
	}
	pr, err := stats.RecordSetUpdate(ctx, s.db, input.SetID, input.Weight, input.Reps)
	if errors.Is(err, db.ErrSetNotFound) {
		return errorResult(fmt.Sprintf("set not found: %d", input.SetID))
	}
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(setOutput{SetID: input.SetID, PersonalRecord: pr})
}

// addCardioDescription lists the catalog types so the advertised set matches validation.
func addCardioDescription() string {
	types := make([]string, 0, len(models.CardioActivities))
	for _, k := range models.CardioActivities {
		types = append(types, string(k.Type))
	}
	return fmt.Sprintf("Log a cardio activity (%s) on a workout.", strings.Join(types, ", "))
}

func (s *Server) handleAddCardio(ctx context.Context, req *mcp.CallToolRequest, input addCardioInput) (*mcp.CallToolResult, any, error) {
	if !models.IsValidActivityType(input.ActivityType) {
		return errorResult(fmt.Sprintf("unknown activity type: %s", input.ActivityType))
	}
	if input.DurationSeconds < 0 {
		return errorResult("duration_seconds must not be negative")
	}
	workoutID, err := s.resolveWorkoutID(ctx, input.WorkoutID)
	if err != nil {
		return errorResult(err.Error())
	}

	opts := db.CardioOptions{
		DistanceMeters: input.DistanceMeters,
		CaloriesBurned: input.CaloriesBurned,
		AvgHeartRate:   input.AvgHeartRate,
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		opts.Notes = &notes
	}
	id, err := db.AddCardioActivity(ctx, s.db, workoutID, models.CardioActivityType(input.ActivityType), input.DurationSeconds, opts)
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(map[string]int64{"cardio_id": id, "workout_id": workoutID})
}

func (s *Server) handleListTemplates(ctx context.Context, req *mcp.CallToolRequest, _ noInput) (*mcp.CallToolResult, any, error) {
	templates, err := db.GetAllTemplates(ctx, s.db)
	if err != nil {
		return errorResult(err.Error())
	}
	out := make([]models.TemplateWithExercises, 0, len(templates))
	for _, t := range templates {
		full, err := db.GetTemplateWithExercises(ctx, s.db, t.ID)
		if err != nil {
			return errorResult(err.Error())
		}
		if full != nil {
			out = append(out, *full)
		}
	}
	if len(out) == 0 {
		return messageResult("No templates found.")
	}
	return jsonResult(out)
}

func (s *Server) handleGetNextProgramDay(ctx context.Context, req *mcp.CallToolRequest, _ noInput) (*mcp.CallToolResult, any, error) {
	next, err := db.GetNextProgramDay(ctx, s.db)
	if err != nil {
		return errorResult(err.Error())
	}
	if next == nil {
		return messageResult("No active program with days.")
	}
	return jsonResult(next)
}

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, _ noInput) (*mcp.CallToolResult, any, error) {
	dash, err := stats.GetDashboardStats(ctx, s.db)
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(dash)
}

func (s *Server) handleGetPersonalRecords(ctx context.Context, req *mcp.CallToolRequest, input personalRecordsInput) (*mcp.CallToolResult, any, error) {
	if name := strings.TrimSpace(input.Exercise); name != "" {
		pr, err := stats.GetExercisePR(ctx, s.db, name)
		if err != nil {
			return errorResult(err.Error())
		}
		if pr == nil {
			return messageResult(fmt.Sprintf("No personal record for %s.", name))
		}
		return jsonResult(pr)
	}

	var (
		records []models.PersonalRecord
		err     error
	)
	if input.Days > 0 {
		records, err = stats.GetRecentPRs(ctx, s.db, input.Days)
	} else {
		records, err = stats.GetAllPRs(ctx, s.db)
	}
	if err != nil {
		return errorResult(err.Error())
	}
	if len(records) == 0 {
		return messageResult("No personal records found.")
	}
	return jsonResult(records)
}

func (s *Server) handleGetMuscleDistribution(ctx context.Context, req *mcp.CallToolRequest, input daysInput) (*mcp.CallToolResult, any, error) {
	dist, err := stats.GetMuscleVolumeDistribution(ctx, s.db, input.Days)
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(dist)
}

func (s *Server) handleGetSchema(ctx context.Context, req *mcp.CallToolRequest, _ noInput) (*mcp.CallToolResult, any, error) {
	cols, err := db.ListColumns(ctx, s.db)
	if err != nil {
		return errorResult("Error fetching schema: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: renderSchema(cols)}},
	}, nil, nil
}

// renderSchema formats columns as one Markdown table per table.
func renderSchema(cols []db.ColumnInfo) string {
	var sb strings.Builder
	current := ""
	for _, c := range cols {
		if c.Table != current {
			if current != "" {
				sb.WriteString("\n")
			}
			current = c.Table
			fmt.Fprintf(&sb, "## %s\n\n", c.Table)
			sb.WriteString("| column | type | nullable | default | pk |\n")
			sb.WriteString("|--------|------|----------|---------|----|\n")
		}
		def := ""
		if c.DefaultValue != nil {
			def = *c.DefaultValue
		}
		nullable := "YES"
		if c.NotNull {
			nullable = "NO"
		}
		pk := ""
		if c.PrimaryKey {
			pk = "yes"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", c.Column, c.Type, nullable, def, pk)
	}
	return sb.String()
}
