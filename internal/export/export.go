// ABOUTME: Snapshot export and import for the whole gym history.
// ABOUTME: Supports JSON and YAML round trips plus a read-only Markdown report.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/stats"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written into every snapshot and checked on import.
const FormatVersion = "1.0"

const toolName = "gym"

// ErrUnsupportedVersion is returned when a snapshot was written by an incompatible format.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

var now = time.Now

// Snapshot is the full export format.
type Snapshot struct {
	Version         string                         `json:"version" yaml:"version"`
	SnapshotID      string                         `json:"snapshot_id" yaml:"snapshot_id"`
	ExportedAt      time.Time                      `json:"exported_at" yaml:"exported_at"`
	Tool            string                         `json:"tool" yaml:"tool"`
	Workouts        []models.WorkoutDetail         `json:"workouts" yaml:"workouts"`
	Templates       []models.TemplateWithExercises `json:"templates" yaml:"templates"`
	Programs        []models.ProgramWithDays       `json:"programs" yaml:"programs"`
	PersonalRecords []models.PersonalRecord        `json:"personal_records" yaml:"personal_records"`
}

// ImportSummary counts what an import created.
type ImportSummary struct {
	Workouts        int `json:"workouts"`
	Exercises       int `json:"exercises"`
	Sets            int `json:"sets"`
	Cardio          int `json:"cardio"`
	Templates       int `json:"templates"`
	Programs        int `json:"programs"`
	PersonalRecords int `json:"personal_records"`
	// Skipped counts unfinished workouts left out because one was already open.
	Skipped int `json:"skipped"`
	// SkippedRecords counts personal records that belonged to a skipped workout.
	SkippedRecords int `json:"skipped_records"`
}

// Collect reads every workout, template, program and personal record.
func Collect(ctx context.Context, conn db.DBTX) (*Snapshot, error) {
	snap := &Snapshot{
		Version:         FormatVersion,
		SnapshotID:      uuid.New().String(),
		ExportedAt:      now().UTC(),
		Tool:            toolName,
		Workouts:        []models.WorkoutDetail{},
		Templates:       []models.TemplateWithExercises{},
		Programs:        []models.ProgramWithDays{},
		PersonalRecords: []models.PersonalRecord{},
	}

	ids, err := db.ListWorkoutIDs(ctx, conn)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		detail, err := db.GetWorkoutWithExercises(ctx, conn, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load workout %d: %w", id, err)
		}
		if detail != nil {
			snap.Workouts = append(snap.Workouts, *detail)
		}
	}

	templates, err := db.GetAllTemplates(ctx, conn)
	if err != nil {
		return nil, err
	}
	for i := len(templates) - 1; i >= 0; i-- {
		t, err := db.GetTemplateWithExercises(ctx, conn, templates[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %d: %w", templates[i].ID, err)
		}
		if t != nil {
			snap.Templates = append(snap.Templates, *t)
		}
	}

	programs, err := db.GetAllPrograms(ctx, conn)
	if err != nil {
		return nil, err
	}
	for _, p := range programs {
		full, err := db.GetProgramByID(ctx, conn, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load program %d: %w", p.ID, err)
		}
		if full != nil {
			snap.Programs = append(snap.Programs, *full)
		}
	}

	records, err := stats.GetPRHistory(ctx, conn)
	if err != nil {
		return nil, err
	}
	snap.PersonalRecords = records

	return snap, nil
}

// ExportJSON exports all data as indented JSON.
func ExportJSON(ctx context.Context, conn db.DBTX) ([]byte, error) {
	snap, err := Collect(ctx, conn)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(ctx context.Context, conn db.DBTX) ([]byte, error) {
	snap, err := Collect(ctx, conn)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(snap)
}

// ImportJSON restores a JSON snapshot.
func ImportJSON(ctx context.Context, conn db.DBTX, data []byte) (*ImportSummary, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return Import(ctx, conn, &snap)
}

// ImportYAML restores a YAML snapshot.
func ImportYAML(ctx context.Context, conn db.DBTX, data []byte) (*ImportSummary, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return Import(ctx, conn, &snap)
}

// Import adds the snapshot contents to the database in one transaction. Rows get
// fresh ids; references between them are remapped. An active program in the
// snapshot becomes the active program.
func Import(ctx context.Context, conn db.DBTX, snap *Snapshot) (*ImportSummary, error) {
	if snap.Version != "" && snap.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, snap.Version)
	}

	summary := &ImportSummary{}
	err := db.WithTx(ctx, conn, func(tx db.DBTX) error {
		templateIDs, err := importTemplates(ctx, tx, snap.Templates, summary)
		if err != nil {
			return err
		}
		programIDs, err := importPrograms(ctx, tx, snap.Programs, templateIDs, summary)
		if err != nil {
			return err
		}
		workoutIDs, skipped, err := importWorkouts(ctx, tx, snap.Workouts, programIDs, summary)
		if err != nil {
			return err
		}
		for _, pr := range snap.PersonalRecords {
			if skipped[pr.WorkoutID] {
				summary.SkippedRecords++
				continue
			}
			// Records whose workout is not in the snapshot are kept detached so
			// they never point at an unrelated local workout.
			if id, ok := workoutIDs[pr.WorkoutID]; ok {
				pr.WorkoutID = id
			} else {
				pr.WorkoutID = 0
			}
			if _, err := stats.RestoreRecord(ctx, tx, pr); err != nil {
				return err
			}
			summary.PersonalRecords++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func importTemplates(ctx context.Context, tx db.DBTX, templates []models.TemplateWithExercises, summary *ImportSummary) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(templates))
	for _, t := range templates {
		id, err := db.RestoreTemplate(ctx, tx, t.Template)
		if err != nil {
			return nil, err
		}
		ids[t.ID] = id
		for _, te := range t.Exercises {
			if _, err := db.AddTemplateExercise(ctx, tx, id, te.Name, te.DefaultSets, text(te.Note)); err != nil {
				return nil, err
			}
		}
		summary.Templates++
	}
	return ids, nil
}

func importPrograms(ctx context.Context, tx db.DBTX, programs []models.ProgramWithDays, templateIDs map[int64]int64, summary *ImportSummary) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(programs))
	var activeID int64
	for _, p := range programs {
		id, err := db.RestoreProgram(ctx, tx, p.Program)
		if err != nil {
			return nil, err
		}
		ids[p.ID] = id
		if p.IsActive {
			activeID = id
		}

		for _, day := range p.Days {
			var templateID *int64
			if day.TemplateID != nil {
				if mapped, ok := templateIDs[*day.TemplateID]; ok {
					templateID = &mapped
				}
			}
			dayID, err := db.AddProgramDay(ctx, tx, id, day.DayIndex, day.Name, templateID)
			if err != nil {
				return nil, err
			}
			for _, ex := range day.Exercises {
				if _, err := db.AddProgramDayExercise(ctx, tx, dayID, ex.Name, ex.DefaultSets, text(ex.Note)); err != nil {
					return nil, err
				}
			}
		}
		summary.Programs++
	}

	if activeID != 0 {
		current, err := db.GetActiveProgram(ctx, tx)
		if err != nil {
			return nil, err
		}
		if current == nil {
			if err := db.SetActiveProgram(ctx, tx, activeID); err != nil {
				return nil, err
			}
		}
	}
	return ids, nil
}

func importWorkouts(ctx context.Context, tx db.DBTX, workouts []models.WorkoutDetail, programIDs map[int64]int64, summary *ImportSummary) (map[int64]int64, map[int64]bool, error) {
	ids := make(map[int64]int64, len(workouts))
	skipped := make(map[int64]bool)
	for _, w := range workouts {
		workout := w.Workout
		if workout.ProgramID != nil {
			if mapped, ok := programIDs[*workout.ProgramID]; ok {
				workout.ProgramID = &mapped
			} else {
				workout.ProgramID = nil
			}
		}

		id, err := db.RestoreWorkout(ctx, tx, workout)
		if errors.Is(err, db.ErrWorkoutInProgress) {
			skipped[w.ID] = true
			summary.Skipped++
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		ids[w.ID] = id
		summary.Workouts++

		for _, ex := range w.Exercises {
			exerciseID, err := db.AddExercise(ctx, tx, id, ex.Name, text(ex.Note))
			if err != nil {
				return nil, nil, err
			}
			summary.Exercises++
			for _, s := range ex.Sets {
				if _, err := db.AddSet(ctx, tx, exerciseID, s.Weight, s.Reps); err != nil {
					return nil, nil, err
				}
				summary.Sets++
			}
		}

		for _, c := range w.Cardio {
			opts := db.CardioOptions{
				DistanceMeters: c.DistanceMeters,
				CaloriesBurned: c.CaloriesBurned,
				AvgHeartRate:   c.AvgHeartRate,
				Notes:          c.Notes,
			}
			if _, err := db.AddCardioActivity(ctx, tx, id, c.ActivityType, c.DurationSeconds, opts); err != nil {
				return nil, nil, err
			}
			summary.Cardio++
		}
	}
	return ids, skipped, nil
}

// ExportMarkdown renders finished workouts, cardio and personal records as
// Markdown tables. A non-nil since drops anything that started earlier.
func ExportMarkdown(ctx context.Context, conn db.DBTX, since *time.Time) (string, error) {
	snap, err := Collect(ctx, conn)
	if err != nil {
		return "", err
	}

	var workouts []models.WorkoutDetail
	for _, w := range snap.Workouts {
		if !w.IsFinished() {
			continue
		}
		if since != nil && w.StartedAt.Before(*since) {
			continue
		}
		workouts = append(workouts, w)
	}

	var sb strings.Builder
	exported := snap.ExportedAt.Local()
	fmt.Fprintf(&sb, "# Gym Export - %s\n\n", exported.Format(calc.DateLayout))
	fmt.Fprintf(&sb, "Generated: %s\n\n", exported.Format(time.RFC3339))

	if len(workouts) == 0 {
		sb.WriteString("No workouts recorded.\n")
		return sb.String(), nil
	}

	sb.WriteString("## Workouts\n\n")
	sb.WriteString("| Date | Program | Duration | Exercises | Sets | Volume | Notes |\n")
	sb.WriteString("|------|---------|----------|-----------|------|--------|-------|\n")
	for _, w := range workouts {
		program := text(w.ProgramName)
		if w.DayName != nil {
			program = strings.TrimSpace(program + " / " + *w.DayName)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %d | %d | %.0f | %s |\n",
			w.StartedAt.Local().Format("2006-01-02 15:04"),
			cell(program),
			calc.FormatDuration(int(w.Duration().Seconds())),
			len(w.Exercises), w.SetCount(), w.Volume(),
			cell(text(w.Note)))
	}

	var cardio strings.Builder
	for _, w := range workouts {
		for _, c := range w.Cardio {
			distance := ""
			if c.DistanceMeters != nil {
				distance = calc.FormatDistance(*c.DistanceMeters)
			}
			fmt.Fprintf(&cardio, "| %s | %s | %s | %s | %s |\n",
				w.StartedAt.Local().Format(calc.DateLayout),
				models.ActivityLabel(c.ActivityType),
				calc.FormatDuration(c.DurationSeconds),
				distance,
				cell(text(c.Notes)))
		}
	}
	if cardio.Len() > 0 {
		sb.WriteString("\n## Cardio\n\n")
		sb.WriteString("| Date | Activity | Duration | Distance | Notes |\n")
		sb.WriteString("|------|----------|----------|----------|-------|\n")
		sb.WriteString(cardio.String())
	}

	var records []models.PersonalRecord
	for _, pr := range snap.PersonalRecords {
		if since != nil && pr.AchievedAt.Before(*since) {
			continue
		}
		records = append(records, pr)
	}
	if len(records) > 0 {
		sb.WriteString("\n## Personal Records\n\n")
		sb.WriteString("| Date | Exercise | Weight | Reps | e1RM |\n")
		sb.WriteString("|------|----------|--------|------|------|\n")
		for _, pr := range records {
			fmt.Fprintf(&sb, "| %s | %s | %g | %d | %.1f |\n",
				pr.AchievedAt.Local().Format(calc.DateLayout),
				pr.ExerciseName, pr.Weight, pr.Reps, pr.Estimated1RM)
		}
	}

	return sb.String(), nil
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// cell keeps free text from breaking the table layout.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
