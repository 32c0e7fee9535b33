package terminal

import (
	"bytes"
	"os"
	"testing"
)

func TestEnableDisableColors(t *testing.T) {
	EnableColors()

	if Color(Cyan) != Cyan {
		t.Error("expected color code when colors enabled")
	}

	DisableColors()

	if Color(Cyan) != "" {
		t.Error("expected empty string when colors disabled")
	}

	EnableColors()

	if Color(Cyan) != Cyan {
		t.Error("expected color code after re-enabling colors")
	}
}

func TestPaint(t *testing.T) {
	EnableColors()
	if got := Paint(Red, "x"); got != Red+"x"+Reset {
		t.Errorf("Paint with colors = %q", got)
	}

	DisableColors()
	defer EnableColors()
	if got := Paint(Red, "x"); got != "x" {
		t.Errorf("Paint without colors = %q, want %q", got, "x")
	}
}

func TestIsWriterTTY_NonFile(t *testing.T) {
	if IsWriterTTY(&bytes.Buffer{}) {
		t.Error("buffer should never be a TTY")
	}
}

func TestIsWriterTTY_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsWriterTTY(f) {
		t.Error("regular file should not be a TTY")
	}
}

func TestGetTerminalWidth(t *testing.T) {
	width := GetTerminalWidth()
	if width <= 0 {
		t.Errorf("GetTerminalWidth() = %d, want > 0", width)
	}
}

func TestReportWidth_Capped(t *testing.T) {
	if w := ReportWidth(); w > MaxReportWidth {
		t.Errorf("ReportWidth() = %d, exceeds %d", w, MaxReportWidth)
	}
}
