// ABOUTME: CLI commands for multi-day training programs.
// ABOUTME: Build a cycle of days, activate it and start the next day.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var (
	programDescription string
	programDayTemplate int64
	programSets        int
	programNote        string
	programResolve     string
)

var programCmd = &cobra.Command{
	Use:     "program",
	Aliases: []string{"prog"},
	Short:   "Manage training programs",
	Long: `Programs are rotating cycles of days. A day without exercises is a rest day.
One program can be active; its next day follows the day of the last finished
workout and wraps around the cycle.

Examples:
  gym program create "PPL" --description "Push pull legs"
  gym program add-day 1 Push --template 2
  gym program add-day 1 Rest
  gym program add-exercise 3 "Barbell Row" --sets 4
  gym program activate 1
  gym program next
  gym workout start --next`,
}

var programCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return errors.New("program name is required")
		}
		in := db.ProgramInput{Name: name}
		if programDescription != "" {
			in.Description = &programDescription
		}
		id, err := db.CreateProgram(cmd.Context(), dbConn, in)
		if err != nil {
			return err
		}
		color.Green("✓ Created program %s (%d)", name, id)
		return nil
	},
}

var programRenameCmd = &cobra.Command{
	Use:   "rename <program-id> <name>",
	Short: "Rename a program, keeping its days",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		err = db.WithTx(ctx, dbConn, func(tx db.DBTX) error {
			p, err := db.GetProgramByID(ctx, tx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return db.ErrProgramNotFound
			}
			in := db.ProgramInput{Name: args[1], Description: p.Description, ImageIndex: &p.ImageIndex, ImageURI: p.ImageURI}
			if err := db.UpdateProgram(ctx, tx, id, in); err != nil {
				return err
			}
			days := make([]db.ProgramDayInput, 0, len(p.Days))
			for i := range p.Days {
				d := &p.Days[i]
				days = append(days, db.ProgramDayInput{Name: d.Name, TemplateID: d.TemplateID, Exercises: d.Patterns()})
			}
			return db.ReplaceProgramDays(ctx, tx, id, days)
		})
		if err != nil {
			return err
		}
		color.Green("✓ Renamed program %d to %s", id, args[1])
		return nil
	},
}

var programAddDayCmd = &cobra.Command{
	Use:   "add-day <program-id> <name>",
	Short: "Append a day to a program's cycle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		programID, err := parseID(args[0])
		if err != nil {
			return err
		}
		p, err := db.GetProgramByID(ctx, dbConn, programID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("program not found: %d", programID)
		}

		var templateID *int64
		if programDayTemplate > 0 {
			tpl, err := db.GetTemplateWithExercises(ctx, dbConn, programDayTemplate)
			if err != nil {
				return err
			}
			if tpl == nil {
				return fmt.Errorf("template not found: %d", programDayTemplate)
			}
			templateID = &programDayTemplate
		}

		id, err := db.AddProgramDay(ctx, dbConn, programID, len(p.Days), args[1], templateID)
		if err != nil {
			return err
		}
		color.Green("✓ Added day %d: %s (%d) to %s", len(p.Days)+1, args[1], id, p.Name)
		return nil
	},
}

var programAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise <day-id> <name>",
	Short: "Append an exercise to a program day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dayID, err := parseID(args[0])
		if err != nil {
			return err
		}
		day, err := db.GetProgramDay(ctx, dbConn, dayID)
		if err != nil {
			return err
		}
		if day == nil {
			return fmt.Errorf("program day not found: %d", dayID)
		}
		id, err := db.AddProgramDayExercise(ctx, dbConn, dayID, args[1], programSets, programNote)
		if err != nil {
			return err
		}
		color.Green("✓ Added %s to %s (%d)", args[1], day.Name, id)
		return nil
	},
}

var programListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List programs, active first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		programs, err := db.GetAllPrograms(cmd.Context(), dbConn)
		if err != nil {
			return err
		}
		if len(programs) == 0 {
			fmt.Println("No programs found.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, p := range programs {
			marker := "  "
			if p.IsActive {
				marker = color.GreenString("* ")
			}
			fmt.Printf("%s%s %s %s\n", marker, faint.Sprint(padRight(fmt.Sprint(p.ID), 5)), p.Name,
				faint.Sprint(truncate(deref(p.Description), 40)))
		}
		return nil
	},
}

var programShowCmd = &cobra.Command{
	Use:   "show [program-id]",
	Short: "Show a program's days (default: the active program)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var (
			p   *models.ProgramWithDays
			err error
		)
		if len(args) == 0 {
			p, err = db.GetActiveProgram(ctx, dbConn)
			if err == nil && p == nil {
				return errors.New("no active program")
			}
		} else {
			var id int64
			if id, err = parseID(args[0]); err != nil {
				return err
			}
			p, err = db.GetProgramByID(ctx, dbConn, id)
			if err == nil && p == nil {
				return fmt.Errorf("program not found: %d", id)
			}
		}
		if err != nil {
			return err
		}
		printProgram(p)
		return nil
	},
}

func printProgram(p *models.ProgramWithDays) {
	faint := color.New(color.Faint)
	fmt.Printf("Program: %s (%d)", p.Name, p.ID)
	if p.IsActive {
		color.New(color.FgGreen).Print(" active")
	}
	fmt.Println()
	if p.Description != nil {
		faint.Println(*p.Description)
	}
	fmt.Printf("Cycle: %d days, %d workout days\n", len(p.Days), p.WorkoutDayCount())

	for i := range p.Days {
		d := &p.Days[i]
		label := d.Name
		if d.IsRestDay() && d.TemplateID == nil {
			label += faint.Sprint(" (rest)")
		} else if d.Template != nil && len(d.Exercises) == 0 {
			label += faint.Sprintf(" (template: %s)", d.Template.Name)
		}
		fmt.Printf("\n  Day %d %s %s\n", d.DayIndex+1, faint.Sprintf("[%d]", d.ID), label)
		for _, e := range d.Exercises {
			line := fmt.Sprintf("    %s x%d", e.Name, e.DefaultSets)
			if e.Note != nil {
				line += faint.Sprintf("  %s", *e.Note)
			}
			fmt.Println(line)
		}
	}
}

var programActivateCmd = &cobra.Command{
	Use:   "activate <program-id>",
	Short: "Make a program the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := db.SetActiveProgram(cmd.Context(), dbConn, id); err != nil {
			if errors.Is(err, db.ErrProgramNotFound) {
				return fmt.Errorf("program not found: %d", id)
			}
			return err
		}
		color.Green("✓ Activated program %d", id)
		return nil
	},
}

var programDeactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Leave no program active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.ClearActiveProgram(cmd.Context(), dbConn); err != nil {
			return err
		}
		color.Green("✓ No program is active")
		return nil
	},
}

var programDeleteCmd = &cobra.Command{
	Use:     "delete <program-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a program; its workouts are kept",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := db.DeleteProgram(cmd.Context(), dbConn, id); err != nil {
			return err
		}
		color.Green("✓ Deleted program %d", id)
		return nil
	},
}

var programNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next day of the active program",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		next, err := db.GetNextProgramDay(cmd.Context(), dbConn)
		if err != nil {
			return err
		}
		if next == nil {
			fmt.Println("No active program with days.")
			return nil
		}
		day := next.NextDay
		fmt.Printf("%s: day %d of %d, %s %s\n", next.Program.Name, day.DayIndex+1, len(next.Program.Days), day.Name,
			color.New(color.Faint).Sprintf("[%d]", day.ID))
		if day.IsRestDay() && day.TemplateID == nil {
			fmt.Println("  Rest day")
		}
		for _, e := range day.Exercises {
			fmt.Printf("  %s x%d\n", e.Name, e.DefaultSets)
		}
		return nil
	},
}

var programStartCmd = &cobra.Command{
	Use:   "start <day-id>",
	Short: "Start a workout from a program day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		resolution, err := db.ParseConflictResolution(strings.ToLower(programResolve))
		if err != nil {
			return err
		}
		return startWorkout(cmd, db.StartRequest{ProgramDayID: &id, Resolution: resolution})
	},
}

func init() {
	programCreateCmd.Flags().StringVarP(&programDescription, "description", "d", "", "program description")
	programAddDayCmd.Flags().Int64VarP(&programDayTemplate, "template", "t", 0, "template id used when the day has no exercises")
	programAddExerciseCmd.Flags().IntVarP(&programSets, "sets", "s", models.DefaultSetCount, "default number of sets")
	programAddExerciseCmd.Flags().StringVarP(&programNote, "note", "n", "", "exercise note")
	programStartCmd.Flags().StringVarP(&programResolve, "resolve", "r", "", "handle an open workout: continue, finish or discard")

	programCmd.AddCommand(programCreateCmd)
	programCmd.AddCommand(programRenameCmd)
	programCmd.AddCommand(programAddDayCmd)
	programCmd.AddCommand(programAddExerciseCmd)
	programCmd.AddCommand(programListCmd)
	programCmd.AddCommand(programShowCmd)
	programCmd.AddCommand(programActivateCmd)
	programCmd.AddCommand(programDeactivateCmd)
	programCmd.AddCommand(programDeleteCmd)
	programCmd.AddCommand(programNextCmd)
	programCmd.AddCommand(programStartCmd)
	rootCmd.AddCommand(programCmd)
}
