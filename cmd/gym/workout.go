// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports start, finish, show, list, note, delete and abandon subcommands.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var (
	workoutTemplateID   int64
	workoutProgramDayID int64
	workoutNext         bool
	workoutResolve      string
	workoutNote         string
	workoutLimit        int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Track workout sessions made of exercises, sets and cardio.

Only one workout can be in progress at a time. Starting a new one while an
empty workout is open silently replaces it; a workout with content needs
--resolve continue, finish or discard.

WORKFLOW:

  1. Start a workout:       gym workout start
  2. Add exercises:         gym exercise add "Squat"
  3. Log sets:              gym set add <exercise-id> 100 5
  4. Finish it:             gym workout finish --note "Felt strong"

COMMANDS:

  start     Start a workout (empty, from a template or a program day)
  finish    Finish the workout in progress
  show      Show a workout with its exercises, sets and cardio
  list      List finished workouts
  note      Replace a workout note
  delete    Delete a workout and everything in it
  abandon   Delete a workout only if it is still empty`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a workout",
	Long: `Start a workout.

Examples:
  gym workout start                         # empty workout
  gym workout start --template 3            # from template 3
  gym workout start --program-day 7         # from program day 7
  gym workout start --next                  # next day of the active program
  gym workout start --resolve finish        # finish the open workout first`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		resolution, err := db.ParseConflictResolution(strings.ToLower(workoutResolve))
		if err != nil {
			return err
		}

		req := db.StartRequest{Resolution: resolution}
		sources := 0
		if workoutTemplateID > 0 {
			id := workoutTemplateID
			req.TemplateID = &id
			sources++
		}
		if workoutProgramDayID > 0 {
			id := workoutProgramDayID
			req.ProgramDayID = &id
			sources++
		}
		if workoutNext {
			next, err := db.GetNextProgramDay(ctx, dbConn)
			if err != nil {
				return err
			}
			if next == nil {
				return errors.New("no active program with days")
			}
			id := next.NextDay.ID
			req.ProgramDayID = &id
			sources++
			fmt.Printf("Next up: %s / %s\n", next.Program.Name, next.NextDay.Name)
		}
		if sources > 1 {
			return errors.New("use only one of --template, --program-day and --next")
		}

		return startWorkout(cmd, req)
	},
}

// startWorkout runs the start policy and reports what happened.
func startWorkout(cmd *cobra.Command, req db.StartRequest) error {
	result, err := db.StartWorkout(cmd.Context(), dbConn, req)
	var conflict *db.ConflictError
	if errors.As(err, &conflict) {
		return fmt.Errorf("workout %d is in progress; rerun with --resolve continue, finish or discard", conflict.WorkoutID)
	}
	if err != nil {
		return fmt.Errorf("failed to start workout: %w", err)
	}

	if result.CleanedID != nil {
		color.New(color.Faint).Printf("Removed empty workout %d\n", *result.CleanedID)
	}
	if result.FinishedID != nil {
		color.Yellow("Finished workout %d", *result.FinishedID)
	}
	if result.DiscardedID != nil {
		color.Yellow("Discarded workout %d", *result.DiscardedID)
	}
	if result.Continued {
		color.Cyan("Continuing workout %d", result.WorkoutID)
		return nil
	}
	color.Green("✓ Started workout %d", result.WorkoutID)
	return nil
}

var workoutFinishCmd = &cobra.Command{
	Use:   "finish [id]",
	Short: "Finish a workout",
	Long: `Finish a workout. Defaults to the workout in progress.

Examples:
  gym workout finish
  gym workout finish --note "Leg day done"
  gym workout finish 12`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := workoutOrCurrent(ctx, optionalArg(args, 0))
		if err != nil {
			return err
		}
		if err := db.FinishWorkout(ctx, dbConn, id, workoutNote); err != nil {
			return err
		}

		detail, err := db.GetWorkoutWithExercises(ctx, dbConn, id)
		if err != nil {
			return err
		}
		color.Green("✓ Finished workout %d", id)
		if detail != nil {
			fmt.Printf("  Duration: %s\n", calc.FormatDuration(int(detail.Duration().Seconds())))
			fmt.Printf("  Exercises: %d  Sets: %d  Volume: %.0f\n", len(detail.Exercises), detail.SetCount(), detail.Volume())
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show workout details",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := workoutOrCurrent(ctx, optionalArg(args, 0))
		if err != nil {
			return err
		}
		w, err := db.GetWorkoutWithExercises(ctx, dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}
		if w == nil {
			return fmt.Errorf("workout not found: %d", id)
		}
		printWorkout(w)
		return nil
	},
}

func printWorkout(w *models.WorkoutDetail) {
	faint := color.New(color.Faint)

	fmt.Printf("Workout: %d\n", w.ID)
	if w.ProgramName != nil {
		fmt.Printf("Program: %s", *w.ProgramName)
		if w.DayName != nil {
			fmt.Printf(" / %s", *w.DayName)
		}
		fmt.Println()
	}
	fmt.Printf("Started: %s\n", w.StartedAt.Local().Format(timeDisplayLayout))
	if w.IsFinished() {
		fmt.Printf("Duration: %s\n", calc.FormatDuration(int(w.Duration().Seconds())))
	} else {
		color.Cyan("In progress")
	}
	if w.Note != nil {
		fmt.Printf("Note: %s\n", *w.Note)
	}

	if len(w.Exercises) > 0 {
		fmt.Println("\nExercises:")
		for _, ex := range w.Exercises {
			fmt.Printf("  %s %s\n", faint.Sprintf("[%d]", ex.ID), ex.Name)
			if ex.Note != nil {
				faint.Printf("      %s\n", *ex.Note)
			}
			for i, s := range ex.Sets {
				fmt.Printf("      %d. %s %s\n", i+1, formatSet(s), faint.Sprintf("(set %d)", s.ID))
			}
		}
	}

	if len(w.Cardio) > 0 {
		fmt.Println("\nCardio:")
		for _, c := range w.Cardio {
			line := fmt.Sprintf("  %s %s %s", faint.Sprintf("[%d]", c.ID),
				padRight(models.ActivityLabel(c.ActivityType), 14), calc.FormatDuration(c.DurationSeconds))
			if c.DistanceMeters != nil {
				line += "  " + calc.FormatDistance(*c.DistanceMeters)
			}
			if c.CaloriesBurned != nil {
				line += fmt.Sprintf("  %d kcal", *c.CaloriesBurned)
			}
			if c.AvgHeartRate != nil {
				line += fmt.Sprintf("  %d bpm", *c.AvgHeartRate)
			}
			fmt.Println(line)
		}
	}

	fmt.Printf("\nSets: %d  Volume: %.0f\n", w.SetCount(), w.Volume())
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List finished workouts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := db.GetRecentWorkouts(cmd.Context(), dbConn, workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			label := ""
			if w.ProgramName != nil {
				label = *w.ProgramName
				if w.DayName != nil {
					label += " / " + *w.DayName
				}
			}
			note := ""
			if w.Note != nil {
				note = faint.Sprintf(" (%s)", truncate(*w.Note, 30))
			}
			fmt.Printf("%s %s %s %s%s\n",
				faint.Sprint(padRight(fmt.Sprint(w.ID), 5)),
				faint.Sprint(w.StartedAt.Local().Format(timeDisplayLayout)),
				padRight(calc.FormatDuration(int(w.Duration().Seconds())), 8),
				label,
				note)
		}
		return nil
	},
}

var workoutNoteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Replace a workout note (empty text clears it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := db.UpdateWorkoutNote(cmd.Context(), dbConn, id, args[1]); err != nil {
			return err
		}
		color.Green("✓ Updated note on workout %d", id)
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout with its exercises, sets and cardio",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		w, err := db.GetWorkout(ctx, dbConn, id)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("workout not found: %d", id)
		}
		if err := db.DeleteWorkout(ctx, dbConn, id); err != nil {
			return err
		}
		color.Green("✓ Deleted workout %d", id)
		return nil
	},
}

var workoutAbandonCmd = &cobra.Command{
	Use:   "abandon [id]",
	Short: "Delete a workout if it has no exercises and no note",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := workoutOrCurrent(ctx, optionalArg(args, 0))
		if err != nil {
			return err
		}
		deleted, err := db.AbandonWorkout(ctx, dbConn, id)
		if err != nil {
			return err
		}
		if !deleted {
			color.Yellow("Workout %d has content and was kept", id)
			return nil
		}
		color.Green("✓ Abandoned workout %d", id)
		return nil
	},
}

func init() {
	workoutStartCmd.Flags().Int64VarP(&workoutTemplateID, "template", "t", 0, "start from a template id")
	workoutStartCmd.Flags().Int64VarP(&workoutProgramDayID, "program-day", "p", 0, "start from a program day id")
	workoutStartCmd.Flags().BoolVar(&workoutNext, "next", false, "start the next day of the active program")
	workoutStartCmd.Flags().StringVarP(&workoutResolve, "resolve", "r", "", "handle an open workout: continue, finish or discard")

	workoutFinishCmd.Flags().StringVarP(&workoutNote, "note", "n", "", "workout note")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutFinishCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutNoteCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	workoutCmd.AddCommand(workoutAbandonCmd)
	rootCmd.AddCommand(workoutCmd)
}
