// ABOUTME: CLI commands for cardio activities attached to workouts.
// ABOUTME: Supports add, update, delete, list and the activity catalog.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var (
	cardioWorkout       string
	cardioType          string
	cardioDuration      string
	cardioDistanceKM    float64
	cardioCalories      int
	cardioHeartRate     int
	cardioNotes         string
	cardioClearCalories bool
)

var cardioCmd = &cobra.Command{
	Use:   "cardio",
	Short: "Manage cardio activities",
	Long: `Log cardio activities against a workout.

Durations accept seconds (1500), mm:ss or h:mm:ss (25:00), or Go durations (25m).
Distances are given in kilometers and stored in meters.

Run 'gym cardio types' to see the recognized activity types.`,
}

func parseActivityType(s string) (models.CardioActivityType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !models.IsValidActivityType(s) {
		return "", fmt.Errorf("unknown activity type: %s (see 'gym cardio types')", s)
	}
	return models.CardioActivityType(s), nil
}

var cardioAddCmd = &cobra.Command{
	Use:   "add <type> <duration>",
	Short: "Add a cardio activity",
	Long: `Add a cardio activity to a workout. Defaults to the workout in progress.

Examples:
  gym cardio add running 25m --distance 5
  gym cardio add rowing 10:00 --calories 120 --hr 150
  gym cardio add treadmill 1800 --workout 12 --notes "incline 3"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		activityType, err := parseActivityType(args[0])
		if err != nil {
			return err
		}
		seconds, err := parseDurationSeconds(args[1])
		if err != nil {
			return err
		}
		workoutID, err := workoutOrCurrent(ctx, cardioWorkout)
		if err != nil {
			return err
		}

		var opts db.CardioOptions
		flags := cmd.Flags()
		if flags.Changed("distance") {
			meters := cardioDistanceKM * 1000
			opts.DistanceMeters = &meters
		}
		if flags.Changed("calories") {
			opts.CaloriesBurned = &cardioCalories
		}
		if flags.Changed("hr") {
			opts.AvgHeartRate = &cardioHeartRate
		}
		if notes := strings.TrimSpace(cardioNotes); notes != "" {
			opts.Notes = &notes
		}

		id, err := db.AddCardioActivity(ctx, dbConn, workoutID, activityType, seconds, opts)
		if err != nil {
			return err
		}
		color.Green("✓ Added %s %s (cardio %d) to workout %d",
			models.ActivityLabel(activityType), calc.FormatDuration(seconds), id, workoutID)
		return nil
	},
}

var cardioUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a cardio activity",
	Long: `Change only the fields given as flags.

Examples:
  gym cardio update 3 --duration 30m
  gym cardio update 3 --type cycling --distance 12.5
  gym cardio update 3 --clear-calories`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var u db.CardioUpdate
		flags := cmd.Flags()
		if flags.Changed("type") {
			t, err := parseActivityType(cardioType)
			if err != nil {
				return err
			}
			u.ActivityType = &t
		}
		if flags.Changed("duration") {
			seconds, err := parseDurationSeconds(cardioDuration)
			if err != nil {
				return err
			}
			u.DurationSeconds = &seconds
		}
		if flags.Changed("distance") {
			meters := cardioDistanceKM * 1000
			u.DistanceMeters = &meters
		}
		if flags.Changed("calories") {
			u.CaloriesBurned = &cardioCalories
		}
		if flags.Changed("hr") {
			u.AvgHeartRate = &cardioHeartRate
		}
		if flags.Changed("notes") {
			u.Notes = &cardioNotes
		}

		if u.IsEmpty() && !cardioClearCalories {
			return fmt.Errorf("nothing to update")
		}
		if err := db.UpdateCardioActivity(ctx, dbConn, id, u); err != nil {
			return err
		}
		if cardioClearCalories {
			if err := db.SetCardioCalories(ctx, dbConn, id, nil); err != nil {
				return err
			}
		}
		color.Green("✓ Updated cardio %d", id)
		return nil
	},
}

var cardioDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a cardio activity",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := db.DeleteCardioActivity(cmd.Context(), dbConn, id); err != nil {
			return err
		}
		color.Green("✓ Deleted cardio %d", id)
		return nil
	},
}

var cardioListCmd = &cobra.Command{
	Use:     "list [workout-id]",
	Aliases: []string{"ls"},
	Short:   "List cardio activities of a workout",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		workoutID, err := workoutOrCurrent(ctx, optionalArg(args, 0))
		if err != nil {
			return err
		}
		activities, err := db.GetCardioForWorkout(ctx, dbConn, workoutID)
		if err != nil {
			return err
		}
		if len(activities) == 0 {
			fmt.Println("No cardio logged.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, c := range activities {
			distance := ""
			if c.DistanceMeters != nil {
				distance = calc.FormatDistance(*c.DistanceMeters)
			}
			fmt.Printf("%s %s %s %s%s\n",
				faint.Sprint(padRight(fmt.Sprint(c.ID), 5)),
				padRight(models.ActivityLabel(c.ActivityType), 16),
				padRight(calc.FormatDuration(c.DurationSeconds), 9),
				distance,
				faint.Sprint(" "+deref(c.Notes)))
		}
		return nil
	},
}

var cardioTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List recognized cardio activity types",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range models.CardioActivities {
			fmt.Printf("%s %s\n", padRight(string(k.Type), 13), k.Label)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{cardioAddCmd, cardioUpdateCmd} {
		c.Flags().Float64VarP(&cardioDistanceKM, "distance", "d", 0, "distance in kilometers")
		c.Flags().IntVar(&cardioCalories, "calories", 0, "calories burned")
		c.Flags().IntVar(&cardioHeartRate, "hr", 0, "average heart rate")
		c.Flags().StringVarP(&cardioNotes, "notes", "n", "", "notes")
	}
	cardioAddCmd.Flags().StringVarP(&cardioWorkout, "workout", "w", "", "workout id (default: workout in progress)")
	cardioUpdateCmd.Flags().StringVarP(&cardioType, "type", "t", "", "activity type")
	cardioUpdateCmd.Flags().StringVar(&cardioDuration, "duration", "", "duration")
	cardioUpdateCmd.Flags().BoolVar(&cardioClearCalories, "clear-calories", false, "remove the calories value")

	cardioCmd.AddCommand(cardioAddCmd)
	cardioCmd.AddCommand(cardioUpdateCmd)
	cardioCmd.AddCommand(cardioDeleteCmd)
	cardioCmd.AddCommand(cardioListCmd)
	cardioCmd.AddCommand(cardioTypesCmd)
	rootCmd.AddCommand(cardioCmd)
}
