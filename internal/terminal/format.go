package terminal

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxReportWidth is the maximum width for reports.
const MaxReportWidth = 90

// FormatDuration formats a duration in human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	secs := d.Seconds()
	if secs < 60 {
		return fmt.Sprintf("%.1fs", secs)
	}
	mins := int(secs / 60)
	return fmt.Sprintf("%dm %.1fs", mins, secs-float64(mins*60))
}

// Ruler returns a dim horizontal rule.
func Ruler(width int, char string) string {
	return Paint(Dim, strings.Repeat(char, width))
}

// WrapText wraps text to width, prefixing the first line with indent and
// continuation lines with the same number of spaces.
func WrapText(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	indentWidth := utf8.RuneCountInString(stripANSI(indent))
	if width <= indentWidth {
		return indent + strings.Join(words, " ")
	}
	hanging := strings.Repeat(" ", indentWidth)

	var lines []string
	var line strings.Builder
	line.WriteString(indent)
	lineWidth := indentWidth

	for i, word := range words {
		wordWidth := utf8.RuneCountInString(word)
		switch {
		case i == 0:
			line.WriteString(word)
			lineWidth += wordWidth
		case lineWidth+1+wordWidth > width:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(hanging)
			line.WriteString(word)
			lineWidth = indentWidth + wordWidth
		default:
			line.WriteString(" ")
			line.WriteString(word)
			lineWidth += 1 + wordWidth
		}
	}
	lines = append(lines, line.String())

	return strings.Join(lines, "\n")
}

// ReportWidth returns the report width based on terminal width.
func ReportWidth() int {
	return min(GetTerminalWidth(), MaxReportWidth)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
