package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at release time via -ldflags; the binary's embedded build info fills
// the gaps for `go install` builds.
var (
	version = ""
	commit  = ""
	date    = ""
)

// getVersion returns the version string, preferring the ldflags value.
func getVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// buildDetails returns the short commit hash and build timestamp, falling
// back to the VCS stamp embedded by the Go toolchain.
func buildDetails() (commitHash, buildDate string) {
	commitHash, buildDate = commit, date

	if commitHash == "" || buildDate == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					if commitHash == "" {
						commitHash = s.Value
					}
				case "vcs.time":
					if buildDate == "" {
						buildDate = s.Value
					}
				}
			}
		}
	}

	if len(commitHash) > 7 {
		commitHash = commitHash[:7]
	}
	if commitHash == "" {
		commitHash = "unknown"
	}
	if buildDate == "" {
		buildDate = "unknown"
	}
	return commitHash, buildDate
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of logoscout.`,
		Run: func(cmd *cobra.Command, _ []string) {
			commitHash, buildDate := buildDetails()
			fmt.Fprintf(cmd.OutOrStdout(), "logoscout %s (commit %s, built %s)\n",
				getVersion(), commitHash, buildDate)
		},
	}
}
