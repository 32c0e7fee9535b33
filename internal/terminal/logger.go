package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Style represents a log message style.
type Style string

const (
	StyleInfo    Style = "info"
	StyleSuccess Style = "success"
	StyleWarning Style = "warning"
	StyleError   Style = "error"
	StyleDim     Style = "dim"
	StylePhase   Style = "phase"
)

type styleSpec struct {
	color  string
	symbol string
}

var styleSpecs = map[Style]styleSpec{
	StyleInfo:    {Cyan, "i"},
	StyleSuccess: {Green, "✓"},
	StyleWarning: {Yellow, "!"},
	StyleError:   {Red, "✗"},
	StyleDim:     {Dim, "·"},
	StylePhase:   {Indigo + Bold, "▸"},
}

// Logger writes styled diagnostic lines. The zero value discards output.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	isTTY bool
}

// NewLogger creates a logger writing to stderr.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr)
}

// NewLoggerTo creates a logger writing to w. A nil writer discards output.
func NewLoggerTo(w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{out: w, isTTY: IsWriterTTY(w)}
}

// Log prints a styled log message.
func (l *Logger) Log(msg string, style Style) {
	if l == nil || l.out == nil {
		return
	}
	spec, ok := styleSpecs[style]
	if !ok {
		spec = styleSpecs[StyleInfo]
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Clear a spinner line if one is being drawn.
	if l.isTTY {
		fmt.Fprint(l.out, "\r"+strings.Repeat(" ", 100)+"\r")
	}

	tag := fmt.Sprintf("%s[%s%scodescan%s%s]%s",
		Color(Dim), Color(Reset), Color(spec.color), Color(Reset), Color(Dim), Color(Reset))
	fmt.Fprintf(l.out, "%s %s%s%s %s\n", tag, Color(spec.color), spec.symbol, Color(Reset), msg)
}

// Logf prints a formatted styled log message.
func (l *Logger) Logf(style Style, format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...), style)
}
