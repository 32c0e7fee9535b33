package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/richhaase/codescan/internal/terminal"
)

// ErrNotInteractive is returned by Run when stdin or stdout is not a terminal.
var ErrNotInteractive = errors.New("codescan requires an interactive terminal (not a TTY)")

// Run shows the review screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if !terminal.IsStdinTTY() || !terminal.IsStdoutTTY() {
		return ErrNotInteractive
	}

	m := New(ctx, opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("review UI error: %w", err)
	}
	return nil
}
