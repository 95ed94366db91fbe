// ABOUTME: CLI commands for workout templates.
// ABOUTME: Create, edit, list, show, delete, save from a workout and start from a template.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var (
	templateSets    int
	templateNote    string
	templateResolve string
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage workout templates",
	Long: `Templates are reusable exercise lists. Starting a workout from a template
creates each exercise with its default number of empty sets.

Examples:
  gym template create "Push Day"
  gym template add-exercise 1 "Bench Press" --sets 4
  gym template start 1
  gym template save 12 "Last Tuesday"`,
}

var templateCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("template name is required")
		}
		id, err := db.CreateTemplate(cmd.Context(), dbConn, name)
		if err != nil {
			return err
		}
		color.Green("✓ Created template %s (%d)", name, id)
		return nil
	},
}

var templateAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise <template-id> <name>",
	Short: "Append an exercise to a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		templateID, err := parseID(args[0])
		if err != nil {
			return err
		}
		tpl, err := db.GetTemplateWithExercises(ctx, dbConn, templateID)
		if err != nil {
			return err
		}
		if tpl == nil {
			return fmt.Errorf("template not found: %d", templateID)
		}
		id, err := db.AddTemplateExercise(ctx, dbConn, templateID, args[1], templateSets, templateNote)
		if err != nil {
			return err
		}
		color.Green("✓ Added %s to %s (%d)", args[1], tpl.Name, id)
		return nil
	},
}

var templateRemoveExerciseCmd = &cobra.Command{
	Use:   "remove-exercise <template-exercise-id>",
	Short: "Remove an exercise from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := db.DeleteTemplateExercise(cmd.Context(), dbConn, id); err != nil {
			return err
		}
		color.Green("✓ Removed template exercise %d", id)
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := db.GetAllTemplates(cmd.Context(), dbConn)
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, t := range templates {
			fmt.Printf("%s %s\n", faint.Sprint(padRight(fmt.Sprint(t.ID), 5)), t.Name)
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a template with its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		tpl, err := db.GetTemplateWithExercises(cmd.Context(), dbConn, id)
		if err != nil {
			return err
		}
		if tpl == nil {
			return fmt.Errorf("template not found: %d", id)
		}
		fmt.Printf("Template: %s (%d)\n", tpl.Name, tpl.ID)
		printPatterns(tpl.Patterns(), exerciseIDs(tpl.Exercises))
		return nil
	},
}

func exerciseIDs(exercises []models.TemplateExercise) []int64 {
	ids := make([]int64, len(exercises))
	for i, e := range exercises {
		ids[i] = e.ID
	}
	return ids
}

// printPatterns lists exercise slots with their default set counts.
func printPatterns(patterns []models.ExercisePattern, ids []int64) {
	if len(patterns) == 0 {
		fmt.Println("  (no exercises)")
		return
	}
	faint := color.New(color.Faint)
	for i, p := range patterns {
		line := fmt.Sprintf("  %s %s x%d", faint.Sprintf("[%d]", ids[i]), p.Name, p.DefaultSets)
		if p.Note != nil {
			line += faint.Sprintf("  %s", *p.Note)
		}
		fmt.Println(line)
	}
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := db.DeleteTemplate(cmd.Context(), dbConn, id); err != nil {
			return err
		}
		color.Green("✓ Deleted template %d", id)
		return nil
	},
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <workout-id> <name>",
	Short: "Save a workout's exercises as a new template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		workoutID, err := parseID(args[0])
		if err != nil {
			return err
		}
		id, err := db.SaveWorkoutAsTemplate(cmd.Context(), dbConn, workoutID, args[1])
		if err != nil {
			return err
		}
		color.Green("✓ Saved workout %d as template %s (%d)", workoutID, args[1], id)
		return nil
	},
}

var templateStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start a workout from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		resolution, err := db.ParseConflictResolution(strings.ToLower(templateResolve))
		if err != nil {
			return err
		}
		return startWorkout(cmd, db.StartRequest{TemplateID: &id, Resolution: resolution})
	},
}

func init() {
	templateAddExerciseCmd.Flags().IntVarP(&templateSets, "sets", "s", models.DefaultSetCount, "default number of sets")
	templateAddExerciseCmd.Flags().StringVarP(&templateNote, "note", "n", "", "exercise note")
	templateStartCmd.Flags().StringVarP(&templateResolve, "resolve", "r", "", "handle an open workout: continue, finish or discard")

	templateCmd.AddCommand(templateCreateCmd)
	templateCmd.AddCommand(templateAddExerciseCmd)
	templateCmd.AddCommand(templateRemoveExerciseCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	templateCmd.AddCommand(templateSaveCmd)
	templateCmd.AddCommand(templateStartCmd)
	rootCmd.AddCommand(templateCmd)
}
