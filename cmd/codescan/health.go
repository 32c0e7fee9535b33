package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/richhaase/codescan/internal/domain"
	"github.com/richhaase/codescan/internal/terminal"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the analysis service",
		Long:  "Run the one-time health probe the interactive screen runs at start and report whether the engine is active.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			svc, err := newClient(settings)
			if err != nil {
				logger.Logf(terminal.StyleError, "%v", err)
				return exitCode(domain.ExitError)
			}

			if err := svc.Health(cmd.Context()); err != nil {
				fmt.Fprintf(out, "%s●%s Engine Offline %s(%s)%s\n",
					terminal.Color(terminal.Red), terminal.Color(terminal.Reset),
					terminal.Color(terminal.Dim), svc.BaseURL(), terminal.Color(terminal.Reset))
				logger.Logf(terminal.StyleDim, "%v", err)
				return exitCode(domain.ExitServiceFailure)
			}

			fmt.Fprintf(out, "%s●%s Engine Active %s(%s)%s\n",
				terminal.Color(terminal.Green), terminal.Color(terminal.Reset),
				terminal.Color(terminal.Dim), svc.BaseURL(), terminal.Color(terminal.Reset))
			return nil
		},
	}
}
