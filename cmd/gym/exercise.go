// ABOUTME: CLI commands for exercises within a workout.
// ABOUTME: Supports add, note, delete and reorder subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/db"
	"github.com/spf13/cobra"
)

var (
	exerciseWorkout string
	exerciseNote    string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage exercises in a workout",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise to a workout",
	Long: `Add an exercise to a workout. Defaults to the workout in progress.

Examples:
  gym exercise add "Bench Press"
  gym exercise add Squat --workout 12 --note "high bar"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		workoutID, err := workoutOrCurrent(ctx, exerciseWorkout)
		if err != nil {
			return err
		}
		id, err := db.AddExercise(ctx, dbConn, workoutID, args[0], exerciseNote)
		if err != nil {
			return err
		}
		color.Green("✓ Added %s (exercise %d) to workout %d", args[0], id, workoutID)
		return nil
	},
}

var exerciseNoteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Replace an exercise note (empty text clears it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := db.UpdateExerciseNote(cmd.Context(), dbConn, id, args[1]); err != nil {
			return err
		}
		color.Green("✓ Updated note on exercise %d", id)
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise and its sets",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ex, err := db.GetExercise(ctx, dbConn, id)
		if err != nil {
			return err
		}
		if ex == nil {
			return fmt.Errorf("exercise not found: %d", id)
		}
		if err := db.DeleteExercise(ctx, dbConn, id); err != nil {
			return err
		}
		color.Green("✓ Deleted %s (exercise %d)", ex.Name, id)
		return nil
	},
}

var exerciseReorderCmd = &cobra.Command{
	Use:   "reorder <workout-id> <exercise-id>...",
	Short: "Set the order of every exercise in a workout",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		workoutID, err := parseID(args[0])
		if err != nil {
			return err
		}
		ids, err := parseIDs(args[1:])
		if err != nil {
			return err
		}
		if err := db.ReorderExercises(cmd.Context(), dbConn, workoutID, ids); err != nil {
			return err
		}
		color.Green("✓ Reordered %d exercises", len(ids))
		return nil
	},
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseWorkout, "workout", "w", "", "workout id (default: workout in progress)")
	exerciseAddCmd.Flags().StringVarP(&exerciseNote, "note", "n", "", "exercise note")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseNoteCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
	exerciseCmd.AddCommand(exerciseReorderCmd)
	rootCmd.AddCommand(exerciseCmd)
}
