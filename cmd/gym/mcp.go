// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gym/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log and review your training through
a standardized protocol. The server communicates via stdin/stdout, so logs go
to the configured log file or stderr.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "gym": {
        "command": "gym",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  start_workout            Start a workout, resolving an open one
  finish_workout           Finish a workout
  get_workout              Workout with exercises, sets and cardio
  list_workouts            Recent finished workouts
  add_exercise             Add an exercise to a workout
  add_set                  Log a set and check for a PR
  update_set               Edit a set and check for a PR
  add_cardio               Log a cardio activity
  list_templates           Templates with their exercises
  get_next_program_day     Next day of the active program
  get_dashboard            Last session, frequency and streak
  get_personal_records     Best records or recent records
  get_muscle_distribution  Volume per muscle group
  get_schema               Database schema

AVAILABLE RESOURCES:

  gym://dashboard   Dashboard with 30-day totals
  gym://recent      In-progress and recent workouts
  gym://records     Best record per exercise`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(dbConn)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
