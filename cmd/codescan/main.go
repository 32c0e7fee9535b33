// Package main provides the CLI entry point for codescan.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/richhaase/codescan/internal/domain"
	"github.com/richhaase/codescan/internal/filter"
	"github.com/richhaase/codescan/internal/terminal"
	"github.com/richhaase/codescan/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		return exitStatus(err, rootCmd.ErrOrStderr())
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "codescan [file]",
		Short: "CodeScanner - review code with a remote analysis service",
		Long: `Paste or load source code, pick a language, and scan it with the analysis
service. Without a subcommand codescan opens the interactive review screen.

Exit codes:
  0 - No issues
  1 - Issues found
  2 - Error
  3 - Analysis service failure
  130 - Interrupted`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildVersionString(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts, args)
		},
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Defaults are resolved via config.Resolve with precedence: flag > env > config > default.
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", "",
		"Analysis service base URL (default: http://localhost:8000, env: CODESCAN_BASE_URL)")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 0,
		"Timeout for a review request (default: 60s, env: CODESCAN_TIMEOUT)")
	flags.DurationVar(&opts.probeTimeout, "probe-timeout", 0,
		"Timeout for the health probe (default: 5s, env: CODESCAN_PROBE_TIMEOUT)")
	flags.StringVarP(&opts.language, "language", "L", "",
		"Language of the code (default: python or inferred from the file, env: CODESCAN_LANGUAGE)")
	flags.StringVar(&opts.logFile, "log-file", "",
		"Write diagnostics from the interactive screen to this file (env: CODESCAN_LOG_FILE)")
	flags.StringArrayVar(&opts.excludePatterns, "exclude-pattern", nil,
		"Hide issues matching regex pattern (repeatable)")
	flags.StringVar(&opts.configPath, "config", "",
		"Path to a config file (default: ./.codescan.yaml)")
	flags.BoolVar(&opts.noConfig, "no-config", false,
		"Skip loading the config file")

	rootCmd.AddCommand(newReviewCmd(opts))
	rootCmd.AddCommand(newHealthCmd(opts))
	rootCmd.AddCommand(newLanguagesCmd())
	rootCmd.AddCommand(newConfigCmd(opts))

	setGroupedUsage(rootCmd)

	return rootCmd
}

func runInteractive(cmd *cobra.Command, opts *rootOptions, args []string) error {
	logger := terminal.NewLoggerTo(cmd.ErrOrStderr())

	settings, err := opts.resolve(cmd, logger)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	var code string
	if len(args) == 1 {
		src, err := readSource(cmd.InOrStdin(), args[0])
		if err != nil {
			logger.Logf(terminal.StyleError, "%v", err)
			return exitCode(domain.ExitError)
		}
		code = src
		settings.Language = inferLanguage(cmd, settings.Language, args[0])
	}

	excludes, err := filter.New(settings.ExcludePatterns)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	svc, err := newClient(settings)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	uiLogger, closeLog, err := openLogFile(settings.LogFile)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = tui.Run(ctx, tui.Options{
		Service:  svc,
		Language: settings.Language,
		Code:     code,
		Filter:   excludes,
		Logger:   uiLogger,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(cmd.ErrOrStderr())
		logger.Log("Interrupted", terminal.StyleWarning)
		return exitCode(domain.ExitInterrupted)
	case errors.Is(err, tui.ErrNotInteractive):
		logger.Logf(terminal.StyleError, "%v; use 'codescan review' in scripts", err)
		return exitCode(domain.ExitError)
	default:
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}
}
