// ABOUTME: CLI commands for exporting and importing gym data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export gym data",
	Long: `Export gym data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, also importable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include data since this date (YYYY-MM-DD, markdown only)

EXAMPLES:

  gym export json                        # Export all data as JSON
  gym export json -o backup.json         # Save to file
  gym export yaml -o backup.yaml         # Export as YAML
  gym export markdown --since 2024-01-01 # Workouts from 2024 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = export.ExportJSON(ctx, dbConn)
		case "yaml":
			data, err = export.ExportYAML(ctx, dbConn)
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, err := parseDate(exportSince)
				if err != nil {
					return err
				}
				since = &t
			}
			md, err := export.ExportMarkdown(ctx, dbConn, since)
			if err != nil {
				return err
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import gym data from a JSON or YAML export",
	Long: `Import gym data from a previously exported file.

Files ending in .yaml or .yml are read as YAML, anything else as JSON.
Everything is added alongside existing data with new ids. The exported
active program becomes active only when no program is active yet, so your
current program is never switched. An unfinished workout is skipped when one
is already in progress, along with any personal records logged in it.

EXAMPLES:

  gym import backup.json
  gym import backup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var summary *export.ImportSummary
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			summary, err = export.ImportYAML(ctx, dbConn, data)
		default:
			summary, err = export.ImportJSON(ctx, dbConn, data)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  Workouts: %d  Exercises: %d  Sets: %d  Cardio: %d\n",
			summary.Workouts, summary.Exercises, summary.Sets, summary.Cardio)
		fmt.Printf("  Templates: %d  Programs: %d  Records: %d\n",
			summary.Templates, summary.Programs, summary.PersonalRecords)
		if summary.Skipped > 0 {
			color.Yellow("  Skipped %d unfinished workout(s) and %d record(s): one is already in progress",
				summary.Skipped, summary.SkippedRecords)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
