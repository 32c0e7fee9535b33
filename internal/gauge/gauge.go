// Package gauge draws animated score rings in the terminal.
//
// A gauge starts at zero whenever its value is set and, after a short delay,
// eases to the target. Each SetValue or Stop bumps the gauge's tag; ticks
// carrying an older tag are dropped, which is how a pending transition is
// cancelled.
package gauge

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/richhaase/codescan/internal/domain"
)

const (
	// DefaultSize is the ring diameter.
	DefaultSize = 110.0
	// DefaultStrokeWidth is the ring thickness on the same scale as DefaultSize.
	DefaultStrokeWidth = 10.0
	// DefaultMaxValue is the value that fills the whole ring.
	DefaultMaxValue = float64(domain.MaxScore)
	// DefaultDelay is the wait between SetValue and the start of the fill.
	DefaultDelay = 100 * time.Millisecond
	// DefaultTransition is how long the fill takes to reach its target.
	DefaultTransition = time.Second
	// DefaultColumns is the rendered width in terminal cells.
	DefaultColumns = 14

	frameInterval = time.Second / 30

	// Terminal cells are coarse; a ring thinner than this reads as dots.
	minRingThickness = 0.3

	trackColor = "#e5e7eb"
	filledRune = "█"
	trackRune  = "░"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

type settleMsg struct {
	id, tag int
}

type frameMsg struct {
	id, tag, frame int
}

// Model is a bubbletea component for one score ring.
type Model struct {
	id  int
	tag int

	geometry   Geometry
	label      string
	icon       string
	gradient   domain.Gradient
	columns    int
	delay      time.Duration
	transition time.Duration

	target    float64
	displayed float64
	pending   bool
	animating bool
	frame     int
	frames    int
}

// Option configures a Model.
type Option func(*Model)

// WithGeometry sets the ring geometry.
func WithGeometry(g Geometry) Option {
	return func(m *Model) { m.geometry = g }
}

// WithIcon sets the glyph drawn above the value.
func WithIcon(icon string) Option {
	return func(m *Model) { m.icon = icon }
}

// WithGradient sets the two-stop colour of the filled arc.
func WithGradient(g domain.Gradient) Option {
	return func(m *Model) { m.gradient = g }
}

// WithColumns sets the rendered ring width in terminal columns.
func WithColumns(cols int) Option {
	return func(m *Model) { m.columns = cols }
}

// WithDelay sets the pause before the entry animation starts.
func WithDelay(d time.Duration) Option {
	return func(m *Model) { m.delay = d }
}

// WithTransition sets the entry animation length. Zero jumps straight to
// the target once the delay elapses.
func WithTransition(d time.Duration) Option {
	return func(m *Model) { m.transition = d }
}

// New creates a gauge with the default geometry and overall gradient.
func New(label string, opts ...Option) Model {
	m := Model{
		id:         nextID(),
		geometry:   DefaultGeometry(),
		label:      label,
		gradient:   domain.StyleForMetric(domain.MetricOverall).Gradient,
		columns:    DefaultColumns,
		delay:      DefaultDelay,
		transition: DefaultTransition,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ForMetric creates a gauge styled for a score metric.
func ForMetric(metric string, opts ...Option) Model {
	style := domain.StyleForMetric(metric)
	base := []Option{WithGradient(style.Gradient), WithIcon(style.Icon)}
	return New(metric, append(base, opts...)...)
}

// ID identifies the gauge in its messages.
func (m Model) ID() int { return m.id }

// Label returns the metric label.
func (m Model) Label() string { return m.label }

// Value returns the target value.
func (m Model) Value() float64 { return m.target }

// Displayed returns the value currently drawn.
func (m Model) Displayed() float64 { return m.displayed }

// Settled reports whether no transition is pending or running.
func (m Model) Settled() bool { return !m.pending && !m.animating }

// Geometry returns the ring geometry.
func (m Model) Geometry() Geometry { return m.geometry }

// SetValue restarts the gauge at zero and schedules the transition to v.
// Any transition still pending for an earlier value is cancelled.
func (m *Model) SetValue(v float64) tea.Cmd {
	m.tag++
	m.target = v
	m.displayed = 0
	m.frame = 0
	m.animating = false
	m.pending = true

	id, tag := m.id, m.tag
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return settleMsg{id: id, tag: tag}
	})
}

// Stop cancels any pending or running transition, leaving the displayed
// value where it is.
func (m *Model) Stop() {
	m.tag++
	m.pending = false
	m.animating = false
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update advances the transition. Messages for other gauges or older tags
// are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settleMsg:
		if msg.id != m.id || msg.tag != m.tag || !m.pending {
			return m, nil
		}
		m.pending = false
		m.frames = frameCount(m.transition)
		if m.frames == 0 {
			m.displayed = m.target
			return m, nil
		}
		m.animating = true
		return m, m.nextFrame(1)

	case frameMsg:
		if msg.id != m.id || msg.tag != m.tag || !m.animating {
			return m, nil
		}
		m.frame = msg.frame
		if m.frame >= m.frames {
			m.displayed = m.target
			m.animating = false
			return m, nil
		}
		m.displayed = m.target * easeOutCubic(float64(m.frame)/float64(m.frames))
		return m, m.nextFrame(m.frame + 1)
	}
	return m, nil
}

func (m Model) nextFrame(frame int) tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id, tag: tag, frame: frame}
	})
}

func frameCount(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(d)/float64(frameInterval))))
}

func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// DisplayedLabel is the live value rounded to an integer.
func (m Model) DisplayedLabel() string {
	return fmt.Sprintf("%d", int(math.Round(m.displayed)))
}

// View draws the ring with the icon, live value and scale inside it and the
// label underneath.
func (m Model) View() string {
	cols := max(m.columns, 6)
	rows := cols / 2
	if rows%2 == 0 {
		rows++
	}

	fraction := m.geometry.Fraction(m.displayed)
	inner := 1 - math.Max(m.geometry.StrokeRatio(), minRingThickness)
	from, to := parseGradient(m.gradient)
	track := lipgloss.NewStyle().Foreground(lipgloss.Color(trackColor))

	lines := make([]string, rows)
	for r := range rows {
		var left, right strings.Builder
		spanStart, spanEnd := -1, -1
		for c := range cols {
			x := (float64(c) + 0.5 - float64(cols)/2) / (float64(cols) / 2)
			y := (float64(r) + 0.5 - float64(rows)/2) / (float64(rows) / 2)
			d := math.Hypot(x, y)

			var cell string
			switch {
			case d > 1:
				cell = " "
			case d >= inner:
				t := clockwiseFraction(x, y)
				if t < fraction {
					hex := from.BlendLab(to, t).Clamped().Hex()
					cell = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(filledRune)
				} else {
					cell = track.Render(trackRune)
				}
			default:
				if spanStart < 0 {
					spanStart = c
				}
				spanEnd = c
				continue
			}
			if spanStart < 0 {
				left.WriteString(cell)
			} else {
				right.WriteString(cell)
			}
		}

		width := 0
		if spanStart >= 0 {
			width = spanEnd - spanStart + 1
		}
		lines[r] = left.String() + m.centreText(r, rows, width) + right.String()
	}

	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4b5563")).Render(capitalize(m.label))
	lines = append(lines, lipgloss.PlaceHorizontal(cols, lipgloss.Center, label))
	return strings.Join(lines, "\n")
}

// centreText fills the hollow of row r with the icon, value or scale.
func (m Model) centreText(r, rows, width int) string {
	if width <= 0 {
		return ""
	}
	mid := rows / 2
	var text string
	switch r {
	case mid - 1:
		text = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Render(m.icon)
	case mid:
		text = lipgloss.NewStyle().Bold(true).Render(m.DisplayedLabel())
	case mid + 1:
		text = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Render(fmt.Sprintf("/ %g", m.geometry.MaxValue))
	}
	if lipgloss.Width(text) > width {
		text = ""
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// clockwiseFraction is the angle of (x, y) measured clockwise from
// twelve o'clock, as a fraction of a full turn. y grows downwards.
func clockwiseFraction(x, y float64) float64 {
	theta := math.Atan2(x, -y)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta / (2 * math.Pi)
}

func parseGradient(g domain.Gradient) (colorful.Color, colorful.Color) {
	fallback := domain.StyleForMetric(domain.MetricOverall).Gradient
	from, err := colorful.Hex(g.From)
	if err != nil {
		from, _ = colorful.Hex(fallback.From)
	}
	to, err := colorful.Hex(g.To)
	if err != nil {
		to, _ = colorful.Hex(fallback.To)
	}
	return from, to
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
