package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/richhaase/codescan/internal/config"
	"github.com/richhaase/codescan/internal/terminal"
)

const starterConfig = `# codescan configuration file

# Base URL of the analysis service (default: http://localhost:8000)
# base_url: http://localhost:8000

# Timeout for a review request, Go duration format (default: 60s)
# timeout: 60s

# Timeout for the startup health probe (default: 5s)
# probe_timeout: 5s

# Language selected at start: javascript, typescript, php, python, java, cpp, rust
# language: python

# Diagnostics file for the interactive screen (default: none)
# log_file: ""

# Filtering configuration
# filters:
#   exclude_patterns:
#     - "pattern to exclude"
`

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage codescan configuration",
		Long:  "View, initialize, and validate codescan configuration files and environment variables.",
	}

	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigValidateCmd(opts))

	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display resolved configuration",
		Long:  "Show the fully resolved configuration from defaults, config file, environment variables and flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := terminal.NewLoggerTo(cmd.ErrOrStderr())
			result, err := opts.loadConfig(logger)
			if err != nil {
				return err
			}
			resolved, err := opts.resolve(cmd, terminal.NewLoggerTo(nil))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Resolved configuration (%s):\n\n", configSource(result))
			fmt.Fprintf(out, "  %-18s %s\n", "base_url:", resolved.BaseURL)
			fmt.Fprintf(out, "  %-18s %s\n", "timeout:", resolved.Timeout)
			fmt.Fprintf(out, "  %-18s %s\n", "probe_timeout:", resolved.ProbeTimeout)
			fmt.Fprintf(out, "  %-18s %s\n", "language:", resolved.Language)
			if resolved.LogFile != "" {
				fmt.Fprintf(out, "  %-18s %s\n", "log_file:", resolved.LogFile)
			} else {
				fmt.Fprintf(out, "  %-18s %s\n", "log_file:", "(none)")
			}
			if len(resolved.ExcludePatterns) > 0 {
				fmt.Fprintf(out, "  %-18s %s\n", "exclude_patterns:", strings.Join(resolved.ExcludePatterns, ", "))
			}
			return nil
		},
	}
}

// configSource describes where the file settings came from.
func configSource(result *config.LoadResult) string {
	if result == nil || result.Path == "" {
		return "no config file"
	}
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, result.Path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return result.Path
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a starter .codescan.yaml file",
		Long:  "Create a commented .codescan.yaml configuration file in the current directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			configPath := filepath.Join(wd, config.ConfigFileName)

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("%s already exists; remove it first or edit it directly", configPath)
			}

			if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", configPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with default settings (commented out).\n", configPath)
			return nil
		},
	}
}

func newConfigValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and environment variables",
		Long:  "Load and validate the config file and environment variables, reporting any warnings or errors.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !terminal.IsWriterTTY(cmd.ErrOrStderr()) {
				terminal.DisableColors()
			}
			logger := terminal.NewLoggerTo(cmd.ErrOrStderr())
			var errors []string
			var warnings []string

			// Load and validate config file (don't early-return so env var issues are also reported)
			cfg := &config.Config{}
			result, err := opts.loadConfig(terminal.NewLoggerTo(nil))
			if err != nil {
				errors = append(errors, err.Error())
			} else {
				cfg = result.Config
				warnings = append(warnings, result.Warnings...)
			}

			// At runtime unparsable env vars are ignored with a warning; here
			// they are errors the user should fix.
			envState, envWarnings := config.LoadEnvState()
			errors = append(errors, envWarnings...)

			resolved := config.Resolve(cfg, envState, config.FlagState{}, config.Defaults)
			errors = append(errors, resolved.ValidateAll()...)

			for _, w := range warnings {
				logger.Logf(terminal.StyleWarning, "Config: %s", w)
			}
			for _, e := range errors {
				logger.Logf(terminal.StyleError, "%s", e)
			}

			if len(errors) > 0 {
				return fmt.Errorf("configuration has %d error(s)", len(errors))
			}

			if len(warnings) > 0 {
				logger.Log("Configuration is valid (with warnings).", terminal.StyleSuccess)
			} else {
				logger.Log("Configuration is valid.", terminal.StyleSuccess)
			}
			return nil
		},
	}
}
