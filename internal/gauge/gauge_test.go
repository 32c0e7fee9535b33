package gauge

import (
	"strings"
	"testing"
	"time"
)

// settle delivers the pending settle message for m's current tag.
func settle(m Model) (Model, bool) {
	m, cmd := m.Update(settleMsg{id: m.id, tag: m.tag})
	return m, cmd != nil
}

// runFrames drives every frame of the transition, returning the displayed
// values seen after each frame.
func runFrames(m Model) (Model, []float64) {
	var seen []float64
	for f := 1; m.animating; f++ {
		m, _ = m.Update(frameMsg{id: m.id, tag: m.tag, frame: f})
		seen = append(seen, m.displayed)
	}
	return m, seen
}

func TestNewDefaults(t *testing.T) {
	m := New("overall")
	if m.Geometry() != DefaultGeometry() {
		t.Errorf("geometry = %+v, want %+v", m.Geometry(), DefaultGeometry())
	}
	if m.delay != DefaultDelay {
		t.Errorf("delay = %v, want %v", m.delay, DefaultDelay)
	}
	if m.transition != DefaultTransition {
		t.Errorf("transition = %v, want %v", m.transition, DefaultTransition)
	}
	if m.Label() != "overall" {
		t.Errorf("label = %q, want overall", m.Label())
	}
	if !m.Settled() {
		t.Error("new gauge should be settled")
	}
	if m.Displayed() != 0 {
		t.Errorf("displayed = %v, want 0", m.Displayed())
	}
}

func TestNewAssignsDistinctIDs(t *testing.T) {
	a, b := New("a"), New("b")
	if a.ID() == b.ID() {
		t.Errorf("both gauges got ID %d", a.ID())
	}
}

func TestForMetricStyles(t *testing.T) {
	m := ForMetric("security")
	if m.gradient.From != "#f87171" {
		t.Errorf("security gradient from = %q, want #f87171", m.gradient.From)
	}
	if m.icon != "⛨" {
		t.Errorf("security icon = %q, want ⛨", m.icon)
	}

	unknown := ForMetric("style")
	if unknown.gradient.From != "#6366f1" {
		t.Errorf("unknown metric gradient from = %q, want overall's #6366f1", unknown.gradient.From)
	}
	if unknown.icon != "" {
		t.Errorf("unknown metric icon = %q, want none", unknown.icon)
	}
}

func TestSetValueStartsAtZero(t *testing.T) {
	m := New("overall")
	cmd := m.SetValue(8)
	if cmd == nil {
		t.Fatal("SetValue should schedule the settle")
	}
	if m.Value() != 8 {
		t.Errorf("value = %v, want 8", m.Value())
	}
	if m.Displayed() != 0 {
		t.Errorf("displayed = %v, want 0", m.Displayed())
	}
	if m.Settled() {
		t.Error("gauge with a pending settle should not be settled")
	}
}

func TestTransitionLandsOnTarget(t *testing.T) {
	m := New("overall")
	m.SetValue(8.4)

	m, scheduled := settle(m)
	if !scheduled || !m.animating {
		t.Fatal("settle should start the transition")
	}

	m, seen := runFrames(m)
	if len(seen) == 0 {
		t.Fatal("no frames ran")
	}
	if m.Displayed() != 8.4 {
		t.Errorf("displayed = %v, want exactly 8.4", m.Displayed())
	}
	if !m.Settled() {
		t.Error("gauge should be settled after the last frame")
	}

	for i := 1; i < len(seen); i++ {
		if seen[i] < seen[i-1] {
			t.Errorf("frame %d went backwards: %v < %v", i, seen[i], seen[i-1])
		}
	}
	if got := m.DisplayedLabel(); got != "8" {
		t.Errorf("label = %q, want 8", got)
	}
}

func TestFrameCountFollowsTransition(t *testing.T) {
	m := New("overall")
	m.SetValue(5)
	m, _ = settle(m)
	if m.frames != 30 {
		t.Errorf("frames = %d, want 30", m.frames)
	}
}

func TestZeroTransitionJumps(t *testing.T) {
	m := New("overall", WithTransition(0))
	m.SetValue(7)

	m, scheduled := settle(m)
	if scheduled {
		t.Error("zero transition should not schedule frames")
	}
	if m.Displayed() != 7 {
		t.Errorf("displayed = %v, want 7", m.Displayed())
	}
	if !m.Settled() {
		t.Error("gauge should be settled")
	}
}

func TestStaleSettleIgnored(t *testing.T) {
	m := New("overall")
	m.SetValue(3)
	stale := settleMsg{id: m.id, tag: m.tag}
	m.SetValue(9)

	m, cmd := m.Update(stale)
	if cmd != nil {
		t.Error("stale settle should not schedule frames")
	}
	if m.animating {
		t.Error("stale settle should not start the transition")
	}
	if m.Displayed() != 0 {
		t.Errorf("displayed = %v, want 0", m.Displayed())
	}
}

func TestStopCancelsPendingSettle(t *testing.T) {
	m := New("overall")
	m.SetValue(6)
	msg := settleMsg{id: m.id, tag: m.tag}
	m.Stop()

	m, cmd := m.Update(msg)
	if cmd != nil {
		t.Error("settle after Stop should be ignored")
	}
	if m.Displayed() != 0 {
		t.Errorf("displayed = %v, want 0", m.Displayed())
	}
	if !m.Settled() {
		t.Error("stopped gauge should be settled")
	}
}

func TestStopCancelsRunningAnimation(t *testing.T) {
	m := New("overall")
	m.SetValue(6)
	m, _ = settle(m)
	m, _ = m.Update(frameMsg{id: m.id, tag: m.tag, frame: 1})
	mid := m.Displayed()
	frame := frameMsg{id: m.id, tag: m.tag, frame: 2}
	m.Stop()

	m, cmd := m.Update(frame)
	if cmd != nil {
		t.Error("frame after Stop should be ignored")
	}
	if m.Displayed() != mid {
		t.Errorf("displayed = %v, want it frozen at %v", m.Displayed(), mid)
	}
}

func TestOtherGaugeMessagesIgnored(t *testing.T) {
	a, b := New("a"), New("b")
	a.SetValue(5)
	b.SetValue(5)

	a, cmd := a.Update(settleMsg{id: b.id, tag: b.tag})
	if cmd != nil {
		t.Error("another gauge's settle should be ignored")
	}
	if a.animating {
		t.Error("another gauge's settle started this transition")
	}
}

func TestSettleAfterSettledIgnored(t *testing.T) {
	m := New("overall", WithTransition(0))
	m.SetValue(4)
	msg := settleMsg{id: m.id, tag: m.tag}
	m, _ = m.Update(msg)

	m, cmd := m.Update(msg)
	if cmd != nil {
		t.Error("duplicate settle should be ignored")
	}
	if m.Displayed() != 4 {
		t.Errorf("displayed = %v, want 4", m.Displayed())
	}
}

func TestOverMaxLabelShowsRawValue(t *testing.T) {
	m := New("overall", WithTransition(0))
	m.SetValue(12)
	m, _ = settle(m)
	if got := m.DisplayedLabel(); got != "12" {
		t.Errorf("label = %q, want 12", got)
	}
	if got := m.Geometry().Fraction(m.Displayed()); got != 1 {
		t.Errorf("fraction = %v, want 1", got)
	}
}

func TestEaseOutCubic(t *testing.T) {
	if got := easeOutCubic(0); got != 0 {
		t.Errorf("easeOutCubic(0) = %v, want 0", got)
	}
	if got := easeOutCubic(1); got != 1 {
		t.Errorf("easeOutCubic(1) = %v, want 1", got)
	}
	if got := easeOutCubic(0.5); got <= 0.5 {
		t.Errorf("easeOutCubic(0.5) = %v, want > 0.5", got)
	}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Millisecond, 1},
		{time.Second, 30},
	}
	for _, tt := range tests {
		if got := frameCount(tt.d); got != tt.want {
			t.Errorf("frameCount(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func countCells(view string) (filled, track int) {
	return strings.Count(view, filledRune), strings.Count(view, trackRune)
}

func settledView(t *testing.T, v float64, opts ...Option) string {
	t.Helper()
	m := New("overall", append([]Option{WithTransition(0)}, opts...)...)
	m.SetValue(v)
	m, _ = settle(m)
	return m.View()
}

func TestViewRingFill(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		check func(filled, track int) bool
	}{
		{"empty", 0, func(f, tr int) bool { return f == 0 && tr > 0 }},
		{"full", 10, func(f, tr int) bool { return f > 0 && tr == 0 }},
		{"half", 5, func(f, tr int) bool { return f > 0 && f == tr }},
		{"over max", 42, func(f, tr int) bool { return f > 0 && tr == 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filled, track := countCells(settledView(t, tt.value))
			if !tt.check(filled, track) {
				t.Errorf("value %v: filled=%d track=%d", tt.value, filled, track)
			}
		})
	}
}

func TestViewShowsValueScaleAndLabel(t *testing.T) {
	view := settledView(t, 7, WithIcon("★"))
	for _, want := range []string{"7", "/ 10", "★", "Overall"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewRowCount(t *testing.T) {
	// 7 ring rows plus the label line.
	if got := len(strings.Split(settledView(t, 5, WithColumns(14)), "\n")); got != 8 {
		t.Errorf("14 columns: rows = %d, want 8", got)
	}
	// Even row counts are rounded up so the value sits on a centre row.
	if got := len(strings.Split(settledView(t, 5, WithColumns(16)), "\n")); got != 10 {
		t.Errorf("16 columns: rows = %d, want 10", got)
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"security": "Security",
		"":         "",
		"éclat":    "Éclat",
	}
	for in, want := range tests {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
