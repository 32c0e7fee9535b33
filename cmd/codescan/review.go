package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/richhaase/codescan/internal/client"
	"github.com/richhaase/codescan/internal/domain"
	"github.com/richhaase/codescan/internal/filter"
	"github.com/richhaase/codescan/internal/report"
	"github.com/richhaase/codescan/internal/session"
	"github.com/richhaase/codescan/internal/terminal"
)

func newReviewCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "review [file|-]",
		Short: "Scan a file or stdin and print the report",
		Long: `Send code to the analysis service once and print the scores, summary and
issues. Code is read from the named file, or from stdin when the argument is
"-" or omitted. The language is inferred from the file extension unless
--language or CODESCAN_LANGUAGE is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runReview(cmd, opts, path, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Print the raw result as JSON instead of the report")

	return cmd
}

func runReview(cmd *cobra.Command, opts *rootOptions, path string, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if !terminal.IsWriterTTY(out) {
		terminal.DisableColors()
	}
	logger := terminal.NewLoggerTo(cmd.ErrOrStderr())

	settings, err := opts.resolve(cmd, logger)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	excludes, err := filter.New(settings.ExcludePatterns)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	code, err := readSource(cmd.InOrStdin(), path)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	ctrl := session.New(inferLanguage(cmd, settings.Language, path))
	ctrl.SetCode(code)
	req, ok := ctrl.Submit()
	if !ok {
		logger.Log("No code to review", terminal.StyleError)
		return exitCode(domain.ExitError)
	}

	svc, err := newClient(settings)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	name := "stdin"
	if path != "-" {
		name = filepath.Base(path)
	}
	logger.Logf(terminal.StyleInfo, "Scanning %s%s%s %s(%s, %s)%s",
		terminal.Color(terminal.Bold), name, terminal.Color(terminal.Reset),
		terminal.Color(terminal.Dim), req.Language, settings.BaseURL, terminal.Color(terminal.Reset))

	result, elapsed, err := reviewWithSpinner(ctx, svc, req)
	if ctrl.Settle(req.ID, result, err) != session.SettlementStored {
		return reviewFailure(ctx, err, logger)
	}

	kept, filtered := excludes.Apply(*result)
	if jsonOutput {
		if err := report.RenderJSON(out, kept); err != nil {
			logger.Logf(terminal.StyleError, "%v", err)
			return exitCode(domain.ExitError)
		}
	} else {
		fmt.Fprintln(out, report.RenderReport(kept, report.Stats{
			SubmissionID:  req.ID,
			Language:      req.Language,
			FilteredCount: filtered,
			Duration:      elapsed,
		}))
	}

	if kept.HasIssues() {
		return exitCode(domain.ExitFindings)
	}
	return exitCode(domain.ExitClean)
}

func reviewWithSpinner(ctx context.Context, svc *client.Client, req domain.ReviewRequest) (*domain.ReviewResult, time.Duration, error) {
	phaseSpinner := terminal.NewPhaseSpinner("Analyzing...")
	spinnerCtx, spinnerCancel := context.WithCancel(ctx)
	spinnerDone := make(chan struct{})
	go func() {
		phaseSpinner.Run(spinnerCtx)
		close(spinnerDone)
	}()

	start := time.Now()
	result, err := svc.Review(ctx, req)
	elapsed := time.Since(start)

	spinnerCancel()
	<-spinnerDone
	return result, elapsed, err
}

// reviewFailure logs a failed submission and maps it to an exit code.
func reviewFailure(ctx context.Context, err error, logger *terminal.Logger) error {
	if err == nil {
		err = client.ErrMalformedResponse
	}
	switch {
	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		logger.Log("Interrupted", terminal.StyleWarning)
		return exitCode(domain.ExitInterrupted)
	case errors.Is(err, client.ErrBadStatus), errors.Is(err, client.ErrMalformedResponse):
		logger.Logf(terminal.StyleError, "Review failed: %v", err)
		return exitCode(domain.ExitServiceFailure)
	default:
		logger.Logf(terminal.StyleError, "Review failed: %v", err)
		return exitCode(domain.ExitError)
	}
}
