package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestPhaseSpinner_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	s := &PhaseSpinner{out: &buf, isTTY: false, label: "Analyzing..."}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("phase spinner did not exit")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on non-TTY, got %q", buf.String())
	}
}

func TestPhaseSpinner_TTYDrawsLabel(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	s := &PhaseSpinner{out: &buf, isTTY: true, label: "Analyzing..."}

	ctx, cancel := context.WithTimeout(context.Background(), 3*spinnerInterval)
	defer cancel()
	s.Run(ctx)

	if !strings.Contains(buf.String(), "Analyzing...") {
		t.Errorf("expected label in output, got %q", buf.String())
	}
}

func TestNewPhaseSpinner(t *testing.T) {
	s := NewPhaseSpinner("Analyzing...")
	if s.label != "Analyzing..." {
		t.Errorf("label = %q, want %q", s.label, "Analyzing...")
	}
}
