// Package cli provides the Cobra command structure for gotextlint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotextlint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gotextlint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gotextlint",
		Short: "A line-oriented text style checker",
		Long: `gotextlint checks text files for formatting problems: DOS newlines,
literal tabs, long lines, a missing newline at end of file, trailing
whitespace and, in commit hooks, "@no` + `commit" markers.

Tabs, trailing whitespace and the final newline can be fixed in place.
Fixes are written atomically, optionally with a backup, and never applied
to a file that changed while it was being checked.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			logger := logging.ForCommand(cmd.Name())
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newHookCommand(info))
	rootCmd.AddCommand(newWatchCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
