// ABOUTME: CLI command for printing the gym version.
// ABOUTME: The version is set at build time via -ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gym version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gym %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
