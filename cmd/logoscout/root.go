// Package main provides the entry point for the logoscout CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/logoscout/logoscout/internal/log"
)

// NewRootCmd creates the root command for logoscout.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logoscout",
		Short: "Extract brand logo URLs from domain front pages",
		Long: `logoscout crawls the front pages of the given domains and extracts a
representative logo URL (plus a favicon URL when available) per domain.

Pages are fetched with a realistic browser identity over HTTP/2, falling
back to HTTP/1.1 with a fresh identity when the first attempt is refused.
Detection runs a fixed-priority chain: explicit logo markup, then social
preview metadata, then inline SVG blocks.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON instead of text")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getBoolFlag(cmd, "verbose")
}

// getBoolFlag retrieves a persistent bool flag from the command or its root.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		value, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return value
}

// newCommandLogger builds the stderr logger for a command run, honoring the
// persistent --verbose and --log-json flags.
func newCommandLogger(cmd *cobra.Command) *slog.Logger {
	verbose := getVerboseFlag(cmd)
	if getBoolFlag(cmd, "log-json") {
		return log.NewJSONLogger(os.Stderr, verbose)
	}
	return log.NewLogger(os.Stderr, verbose)
}
