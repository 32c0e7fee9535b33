package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// PhaseSpinner displays a spinner next to a label until its context ends.
type PhaseSpinner struct {
	out   io.Writer
	isTTY bool
	label string
}

// NewPhaseSpinner creates a spinner drawing to stderr.
func NewPhaseSpinner(label string) *PhaseSpinner {
	return &PhaseSpinner{
		out:   os.Stderr,
		isTTY: IsStderrTTY(),
		label: label,
	}
}

// Run draws frames until ctx is cancelled. On a non-TTY it only waits.
func (s *PhaseSpinner) Run(ctx context.Context) {
	if !s.isTTY {
		<-ctx.Done()
		return
	}

	tag := fmt.Sprintf("%s[%s%scodescan%s%s]%s",
		Color(Dim), Color(Reset), Color(Cyan), Color(Reset), Color(Dim), Color(Reset))

	idx := 0
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(s.out, "\r"+fmt.Sprintf("%*s", len(s.label)+20, "")+"\r")
			return
		case <-ticker.C:
			frame := string(spinnerFrames[idx%len(spinnerFrames)])
			fmt.Fprintf(s.out, "\r%s %s%s%s %s", tag, Color(Cyan), frame, Color(Reset), s.label)
			idx++
		}
	}
}
