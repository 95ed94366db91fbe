// ABOUTME: CLI commands for training statistics.
// ABOUTME: Dashboard, personal records, period totals, distributions and trends.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/stats"
	"github.com/spf13/cobra"
)

var (
	statsDays     int
	statsWeeks    int
	statsExercise string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training statistics",
	Long: `Statistics over finished workouts.

Periods default to the values in config.toml (default_days, default_weeks).`,
}

// periodDays returns the --days flag or the configured default.
func periodDays(cmd *cobra.Command) int {
	if cmd.Flags().Changed("days") && statsDays > 0 {
		return statsDays
	}
	return cfg.Days()
}

// bar renders a percentage as a fixed-width bar.
func bar(percent int) string {
	const width = 20
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

var statsDashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Last session, weekly sessions, cycle progress and streak",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := stats.GetDashboardStats(cmd.Context(), dbConn)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Println("Last session")
		if dash.LastSession == nil {
			faint.Println("  No finished workouts yet.")
		} else {
			ls := dash.LastSession
			fmt.Printf("  %s  %s\n", ls.Name, faint.Sprint(ls.Date.Local().Format(timeDisplayLayout)))
			fmt.Printf("  %d min  %d exercises  %.0f volume\n", ls.DurationMinutes, ls.Exercises, ls.Volume)
		}

		fmt.Println()
		fmt.Printf("Sessions this week: %d\n", dash.SessionsPerWeek)
		if dash.CycleDays > 0 {
			fmt.Printf("Program cycle: %d workout days of %d\n", dash.WorkoutDays, dash.CycleDays)
		}
		fmt.Printf("Streak: %d days\n", dash.Streak)
		return nil
	},
}

var statsPRsCmd = &cobra.Command{
	Use:   "prs",
	Short: "Best personal record per exercise",
	Long: `Show personal records.

Examples:
  gym stats prs                      # best record per exercise
  gym stats prs --days 30            # records set in the last 30 days
  gym stats prs --exercise squat     # best record for one exercise`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var (
			records []models.PersonalRecord
			err     error
		)
		switch {
		case statsExercise != "":
			var pr *models.PersonalRecord
			pr, err = stats.GetExercisePR(ctx, dbConn, statsExercise)
			if pr != nil {
				records = append(records, *pr)
			}
		case cmd.Flags().Changed("days"):
			records, err = stats.GetRecentPRs(ctx, dbConn, statsDays)
		default:
			records, err = stats.GetAllPRs(ctx, dbConn)
		}
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No personal records yet.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, r := range records {
			fmt.Printf("%s %s e1RM %s %s\n",
				padRight(r.ExerciseName, 24),
				padRight(fmt.Sprintf("%g x %d", r.Weight, r.Reps), 12),
				padRight(fmt.Sprintf("%.1f", r.Estimated1RM), 7),
				faint.Sprint(r.AchievedAt.Local().Format("2006-01-02")))
		}
		return nil
	},
}

var statsSummaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"volume"},
	Short:   "Strength and cardio totals over a period",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		n := periodDays(cmd)

		volume, err := stats.GetTotalStrengthVolume(ctx, dbConn, n)
		if err != nil {
			return err
		}
		strength, err := stats.GetStrengthWorkoutCount(ctx, dbConn, n)
		if err != nil {
			return err
		}
		cardio, err := stats.GetCardioWorkoutCount(ctx, dbConn, n)
		if err != nil {
			return err
		}
		seconds, err := stats.GetTotalCardioDuration(ctx, dbConn, n)
		if err != nil {
			return err
		}
		calories, err := stats.GetTotalCardioCalories(ctx, dbConn, n)
		if err != nil {
			return err
		}

		color.New(color.Bold).Printf("Last %d days\n", n)
		fmt.Printf("  Strength workouts: %d\n", strength)
		fmt.Printf("  Strength volume:   %.0f\n", volume)
		fmt.Printf("  Cardio workouts:   %d\n", cardio)
		fmt.Printf("  Cardio time:       %s\n", calc.FormatDuration(seconds))
		fmt.Printf("  Cardio calories:   %d\n", calories)
		return nil
	},
}

var statsMusclesCmd = &cobra.Command{
	Use:   "muscles",
	Short: "Lifted volume per muscle group",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dist, err := stats.GetMuscleVolumeDistribution(cmd.Context(), dbConn, periodDays(cmd))
		if err != nil {
			return err
		}
		if len(dist) == 0 {
			fmt.Println("No strength volume in this period.")
			return nil
		}
		for _, m := range dist {
			fmt.Printf("%s %s %3d%%  %.0f\n", padRight(m.Muscle, 12), bar(m.Percentage), m.Percentage, m.Volume)
		}
		return nil
	},
}

var statsCardioCmd = &cobra.Command{
	Use:   "cardio",
	Short: "Cardio time per activity type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dist, err := stats.GetCardioDistribution(cmd.Context(), dbConn, periodDays(cmd))
		if err != nil {
			return err
		}
		if len(dist) == 0 {
			fmt.Println("No cardio in this period.")
			return nil
		}
		for _, c := range dist {
			fmt.Printf("%s %s %3d%%  %s\n", padRight(c.Label, 16), bar(c.Percentage), c.Percentage, calc.FormatDuration(c.Duration))
		}
		return nil
	},
}

var statsWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Strength workouts and cardio minutes per week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		weeks := cfg.Weeks()
		if cmd.Flags().Changed("weeks") && statsWeeks > 0 {
			weeks = statsWeeks
		}

		strength, err := stats.GetWeeklyStrengthWorkouts(ctx, dbConn, weeks)
		if err != nil {
			return err
		}
		cardio, err := stats.GetWeeklyCardioMinutes(ctx, dbConn, weeks)
		if err != nil {
			return err
		}

		minutes := make(map[string]int, len(cardio))
		for _, c := range cardio {
			minutes[c.Week] = c.Minutes
		}
		counts := make(map[string]int, len(strength))
		weekList := make([]string, 0, len(strength)+len(cardio))
		for _, s := range strength {
			counts[s.Week] = s.Count
			weekList = append(weekList, s.Week)
		}
		for _, c := range cardio {
			if _, ok := counts[c.Week]; !ok {
				weekList = append(weekList, c.Week)
			}
		}
		if len(weekList) == 0 {
			fmt.Println("No workouts in this period.")
			return nil
		}
		sort.Strings(weekList)

		faint := color.New(color.Faint)
		fmt.Println(faint.Sprint("Week of      Strength  Cardio min"))
		for _, w := range weekList {
			fmt.Printf("%s  %8d  %10d\n", w, counts[w], minutes[w])
		}
		return nil
	},
}

var statsProgressionCmd = &cobra.Command{
	Use:   "progression [exercise]",
	Short: "Best estimated 1RM per day for an exercise",
	Long: `Show the e1RM trend for an exercise. Without an argument, lists the
exercise names that have logged sets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 0 {
			names, err := stats.GetExercisesList(ctx, dbConn)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No exercises logged yet.")
				return nil
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		}

		n := stats.DefaultProgressionDays
		if cmd.Flags().Changed("days") && statsDays > 0 {
			n = statsDays
		}
		points, err := stats.GetE1RMProgression(ctx, dbConn, args[0], n)
		if err != nil {
			return err
		}
		if len(points) == 0 {
			fmt.Printf("No sets of %s in the last %d days.\n", args[0], n)
			return nil
		}
		for _, p := range points {
			fmt.Printf("%s  %.1f\n", p.Date, p.E1RM)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{statsPRsCmd, statsSummaryCmd, statsMusclesCmd, statsCardioCmd, statsProgressionCmd} {
		c.Flags().IntVarP(&statsDays, "days", "d", 0, "period in days")
	}
	statsPRsCmd.Flags().StringVarP(&statsExercise, "exercise", "e", "", "exercise name")
	statsWeeklyCmd.Flags().IntVarP(&statsWeeks, "weeks", "w", 0, "number of weeks")

	statsCmd.AddCommand(statsDashboardCmd)
	statsCmd.AddCommand(statsPRsCmd)
	statsCmd.AddCommand(statsSummaryCmd)
	statsCmd.AddCommand(statsMusclesCmd)
	statsCmd.AddCommand(statsCardioCmd)
	statsCmd.AddCommand(statsWeeklyCmd)
	statsCmd.AddCommand(statsProgressionCmd)
	rootCmd.AddCommand(statsCmd)
}
