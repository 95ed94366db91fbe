// ABOUTME: CLI commands for sets within an exercise.
// ABOUTME: Logging or completing a set checks for a new personal record.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/stats"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage sets of an exercise",
	Long: `Log weight x reps sets against an exercise.

A set with no weight and no reps is a placeholder waiting to be filled in.
Filling in a placeholder or logging a complete set checks whether it beats
the best estimated one-rep max for that exercise.`,
}

// parseWeightReps reads optional weight and reps arguments.
func parseWeightReps(args []string) (float64, int, error) {
	var weight float64
	var reps int
	var err error
	if s := optionalArg(args, 0); s != "" {
		weight, err = strconv.ParseFloat(s, 64)
		if err != nil || weight < 0 {
			return 0, 0, fmt.Errorf("invalid weight: %s", s)
		}
	}
	if s := optionalArg(args, 1); s != "" {
		reps, err = strconv.Atoi(s)
		if err != nil || reps < 0 {
			return 0, 0, fmt.Errorf("invalid reps: %s", s)
		}
	}
	return weight, reps, nil
}

func printPR(pr *models.PersonalRecord) {
	if pr == nil {
		return
	}
	color.New(color.FgYellow, color.Bold).Printf("🏆 New PR: %s %g x %d (e1RM %.1f)\n",
		pr.ExerciseName, pr.Weight, pr.Reps, pr.Estimated1RM)
}

var setAddCmd = &cobra.Command{
	Use:   "add <exercise-id> [weight] [reps]",
	Short: "Add a set (omit weight and reps for a placeholder)",
	Long: `Add a set to an exercise.

Examples:
  gym set add 4 100 5      # 100 x 5
  gym set add 4            # empty placeholder`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		exerciseID, err := parseID(args[0])
		if err != nil {
			return err
		}
		weight, reps, err := parseWeightReps(args[1:])
		if err != nil {
			return err
		}

		ex, err := db.GetExercise(ctx, dbConn, exerciseID)
		if err != nil {
			return err
		}
		if ex == nil {
			return fmt.Errorf("exercise not found: %d", exerciseID)
		}

		id, err := db.AddSet(ctx, dbConn, ex.ID, weight, reps)
		if err != nil {
			return err
		}
		color.Green("✓ Added set %d to %s: %s", id, ex.Name, formatSet(models.Set{Weight: weight, Reps: reps}))

		pr, err := stats.CheckAndRecordPR(ctx, dbConn, ex.Name, weight, reps, ex.WorkoutID)
		if err != nil {
			return err
		}
		printPR(pr)
		return nil
	},
}

var setUpdateCmd = &cobra.Command{
	Use:   "update <set-id> <weight> <reps>",
	Short: "Overwrite a set's weight and reps",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		weight, reps, err := parseWeightReps(args[1:])
		if err != nil {
			return err
		}

		pr, err := stats.RecordSetUpdate(cmd.Context(), dbConn, id, weight, reps)
		if errors.Is(err, db.ErrSetNotFound) {
			return fmt.Errorf("set not found: %d", id)
		}
		if err != nil {
			return err
		}
		color.Green("✓ Updated set %d: %s", id, formatSet(models.Set{Weight: weight, Reps: reps}))
		printPR(pr)
		return nil
	},
}

var setDeleteCmd = &cobra.Command{
	Use:     "delete <set-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a set",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := db.GetSet(ctx, dbConn, id)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("set not found: %d", id)
		}
		if err := db.DeleteSet(ctx, dbConn, id); err != nil {
			return err
		}
		color.Green("✓ Deleted set %d", id)
		return nil
	},
}

var setReorderCmd = &cobra.Command{
	Use:   "reorder <exercise-id> <set-id>...",
	Short: "Set the order of every set in an exercise",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exerciseID, err := parseID(args[0])
		if err != nil {
			return err
		}
		ids, err := parseIDs(args[1:])
		if err != nil {
			return err
		}
		if err := db.ReorderSets(cmd.Context(), dbConn, exerciseID, ids); err != nil {
			return err
		}
		color.Green("✓ Reordered %d sets", len(ids))
		return nil
	},
}

func init() {
	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setUpdateCmd)
	setCmd.AddCommand(setDeleteCmd)
	setCmd.AddCommand(setReorderCmd)
	rootCmd.AddCommand(setCmd)
}
