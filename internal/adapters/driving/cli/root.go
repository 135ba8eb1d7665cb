// Package cli is the command line entry point of boardsync.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boardsync/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// getenv is swapped in tests.
var getenv = os.Getenv

var (
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "boardsync",
	Short: "Keep project boards in sync with issue and pull request labels",
	Long: `boardsync adds an issue or pull request to GitHub project boards when it
is labeled, and removes it again when the label is removed. Labels are mapped
to organization project numbers through a configuration table.

It is designed to run as a step of a workflow triggered by "issues" and
"pull_request" label events, but any source of webhook payloads works.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return configureLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print GraphQL documents, responses and lifecycle steps (default on when RUNNER_DEBUG=1)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		`log format: "plain" or "actions" (default "actions" when GITHUB_ACTIONS=true)`)
}

// Execute runs the root command. Errors are logged before being returned.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		return err
	}
	return nil
}

func configureLogger() error {
	logger.SetVerbose(verbose || getenv("RUNNER_DEBUG") == "1")

	format := logFormat
	if format == "" {
		format = "plain"
		if getenv("GITHUB_ACTIONS") == "true" {
			format = "actions"
		}
	}

	switch format {
	case "plain":
		logger.SetFormat(logger.FormatPlain)
	case "actions":
		logger.SetFormat(logger.FormatActions)
	default:
		return errInvalidFlag("log-format", format)
	}
	return nil
}
