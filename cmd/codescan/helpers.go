package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/richhaase/codescan/internal/client"
	"github.com/richhaase/codescan/internal/config"
	"github.com/richhaase/codescan/internal/domain"
	"github.com/richhaase/codescan/internal/terminal"
)

// rootOptions holds the raw values of the persistent flags.
type rootOptions struct {
	baseURL         string
	timeout         time.Duration
	probeTimeout    time.Duration
	language        string
	logFile         string
	excludePatterns []string
	configPath      string
	noConfig        bool
}

// loadConfig reads the config file named by --config, or the first one on
// the search path. Unknown keys are logged as warnings.
func (o *rootOptions) loadConfig(logger *terminal.Logger) (*config.LoadResult, error) {
	if o.noConfig {
		return &config.LoadResult{Config: &config.Config{}}, nil
	}

	var result *config.LoadResult
	var err error
	if o.configPath != "" {
		if _, statErr := os.Stat(o.configPath); statErr != nil {
			return nil, fmt.Errorf("config file: %w", statErr)
		}
		result, err = config.LoadFromPathWithWarnings(o.configPath)
	} else {
		result, err = config.LoadWithWarnings()
	}
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	for _, warning := range result.Warnings {
		logger.Logf(terminal.StyleWarning, "Warning: %s", warning)
	}
	return result, nil
}

// resolve builds the effective settings from flags, environment, config
// file and defaults, and validates them.
func (o *rootOptions) resolve(cmd *cobra.Command, logger *terminal.Logger) (config.ResolvedConfig, error) {
	result, err := o.loadConfig(logger)
	if err != nil {
		return config.ResolvedConfig{}, err
	}

	envState, envWarnings := config.LoadEnvState()
	for _, warning := range envWarnings {
		logger.Logf(terminal.StyleWarning, "Warning: ignoring %s", warning)
	}

	flags := cmd.Flags()
	flagState := config.FlagState{
		BaseURLSet:      flags.Changed("base-url"),
		TimeoutSet:      flags.Changed("timeout"),
		ProbeTimeoutSet: flags.Changed("probe-timeout"),
		LanguageSet:     flags.Changed("language"),
		LogFileSet:      flags.Changed("log-file"),
	}
	flagValues := config.ResolvedConfig{
		BaseURL:         o.baseURL,
		Timeout:         o.timeout,
		ProbeTimeout:    o.probeTimeout,
		Language:        o.language,
		LogFile:         o.logFile,
		ExcludePatterns: o.excludePatterns,
	}

	resolved := config.Resolve(result.Config, envState, flagState, flagValues)
	if errs := resolved.ValidateAll(); len(errs) > 0 {
		return config.ResolvedConfig{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return resolved, nil
}

// languageExplicit reports whether the language came from a flag or the
// environment rather than a default.
func languageExplicit(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("language") || os.Getenv("CODESCAN_LANGUAGE") != ""
}

// inferLanguage picks the language for path from its extension unless one
// was chosen explicitly.
func inferLanguage(cmd *cobra.Command, current, path string) string {
	if languageExplicit(cmd) || path == "" || path == "-" {
		return current
	}
	if lang, ok := domain.LanguageForPath(path); ok {
		return lang.ID
	}
	return current
}

// readSource reads code from path, or from stdin when path is "-".
func readSource(stdin io.Reader, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read code: %w", err)
	}
	return string(data), nil
}

func newClient(settings config.ResolvedConfig) (*client.Client, error) {
	return client.New(settings.BaseURL,
		client.WithTimeout(settings.Timeout),
		client.WithProbeTimeout(settings.ProbeTimeout),
	)
}

// openLogFile returns a logger appending to path, or a discarding logger
// when path is empty.
func openLogFile(path string) (*terminal.Logger, func(), error) {
	if path == "" {
		return terminal.NewLoggerTo(nil), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return terminal.NewLoggerTo(f), func() { _ = f.Close() }, nil
}

// exitCodeError is a wrapper type for returning exit codes via error interface.
type exitCodeError struct {
	code domain.ExitCode
}

func (e exitCodeError) Error() string {
	switch e.code {
	case domain.ExitFindings:
		return "issues were reported"
	case domain.ExitError:
		return "review failed with error"
	case domain.ExitServiceFailure:
		return "analysis service failed"
	case domain.ExitInterrupted:
		return "review was interrupted"
	default:
		return fmt.Sprintf("exit code %d", e.code)
	}
}

func exitCode(code domain.ExitCode) error {
	if code == domain.ExitClean {
		return nil
	}
	return exitCodeError{code: code}
}

// exitStatus maps an error from Execute to a process exit status, printing
// errors that are not exit code wrappers.
func exitStatus(err error, stderr io.Writer) int {
	var exitErr exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code.Int()
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return domain.ExitError.Int()
}
