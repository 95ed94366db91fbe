// ABOUTME: Root Cobra command for gym CLI.
// ABOUTME: Loads config, sets up logging and manages the database lifecycle via PersistentPre/PostRunE.
package main

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/harperreed/gym/internal/config"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dbConn    *sql.DB
	cfg       *config.Config
	logCloser io.Closer

	dbPathFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gym",
	Short: "Personal gym tracker",
	Long: `Gym is a CLI tool for logging strength and cardio workouts.

WHAT IT TRACKS:

  Workouts    exercises with weight x reps sets, plus cardio activities
  Templates   reusable exercise lists you can start a workout from
  Programs    multi-day training cycles with rest days
  Records     estimated one-rep max personal records per exercise

QUICK START:

  $ gym workout start                   # Start an empty workout
  $ gym exercise add "Bench Press"      # Add an exercise to it
  $ gym set add 1 100 5                 # Log 100 x 5 on exercise 1
  $ gym cardio add running 25m          # Log a 25 minute run
  $ gym workout finish --note "Good"    # Finish the session

STATS:

  $ gym stats dashboard                 # Last session, streak, cycle progress
  $ gym stats prs                       # Best record per exercise
  $ gym stats muscles --days 30         # Volume per muscle group

MCP INTEGRATION:

  Run 'gym mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "gym": { "command": "gym", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Workouts are stored in SQLite at ~/.local/share/gym/gym.db.
  Settings are read from ~/.config/gym/config.toml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// RunE errors skip PersistentPostRunE, so a previous run may have left these open.
		closeResources()
		if skipsDatabase[cmd.Name()] {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.GetLogLevel()
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		logCloser = logging.Setup(logging.SetupParams{
			LogFileName:   cfg.GetLogFile(),
			LogLevel:      level,
			LogFormatJSON: cfg.LogJSON,
		})

		path := cfg.DBPath()
		if dbPathFlag != "" {
			path = config.ExpandPath(dbPathFlag)
		}
		dbConn, err = db.InitDB(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		closeResources()
		return nil
	},
}

// skipsDatabase names commands that run without config, logging or a database.
var skipsDatabase = map[string]bool{
	"version":       true,
	"help":          true,
	"types":         true,
	"install-skill": true,
}

// closeResources releases the database and the log file, if open.
func closeResources() {
	if dbConn != nil {
		_ = dbConn.Close()
		dbConn = nil
	}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "database path (default: <data_dir>/gym.db)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (trace, debug, info, warn, error)")
}
