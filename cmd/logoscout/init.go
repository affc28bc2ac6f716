package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/logoscout/logoscout/internal/config"
)

// configTemplate is the starter configuration written by `logoscout init`.
const configTemplate = `# logoscout configuration file
#
# All sections are optional; built-in defaults are used for anything
# omitted. See the documented examples below.

# Override the built-in browser identity pool. One of these User-Agent
# strings is picked at random per request; the HTTP/1.1 fallback attempt
# always uses a different identity than the first attempt.
#
# userAgents:
#   - "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

# Extra HTTP headers applied to every request.
#
# headers:
#   Accept-Language: "en-US,en;q=0.9"

# Per-domain overrides. Keys are bare hostnames.
#
# domains:
#   gated.example.com:
#     headers:
#       Authorization: "Bearer token"
#   internal.example.com:
#     skip: true
`

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new logoscout configuration file",
		Long: `Initialize creates a new .logoscout configuration file in the current
directory.

The generated file includes commented examples for the identity pool,
global headers, and per-domain overrides.

Examples:
  # Create .logoscout in current directory
  logoscout init

  # Create config file at a specific path
  logoscout init -o myconfig.yaml

  # Force overwrite existing file
  logoscout init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The browser identity pool (userAgents)")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Extra headers, globally or per domain")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Domains to skip")

	return nil
}
