// Package tui is the interactive code review screen: an editor, a language
// selector, a scan action, and the score rings and findings of the last
// successful review.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/richhaase/codescan/internal/domain"
	"github.com/richhaase/codescan/internal/filter"
	"github.com/richhaase/codescan/internal/gauge"
	"github.com/richhaase/codescan/internal/session"
	"github.com/richhaase/codescan/internal/terminal"
)

// Key bindings handled by the screen itself. Language keys are owned by
// terminal.LanguageSelector. KeyEsc quits only while the findings pane has
// focus.
const (
	KeyScan  = "ctrl+s"
	KeyFocus = "tab"
	KeyQuit  = "ctrl+c"
	KeyEsc   = "esc"
)

// Placeholder is shown in the empty editor.
const Placeholder = "// Paste your code to start scanning..."

// Editor height in rows: one row per line plus chrome, clamped.
const (
	minEditorRows = 8
	maxEditorRows = 25
	editorPadRows = 3
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	wideLayoutWidth = 120
	gaugeColumns    = 14
	gaugeGap        = 2
	minFindingsRows = 3
)

// Service is the analysis backend.
type Service interface {
	Health(ctx context.Context) error
	Review(ctx context.Context, req domain.ReviewRequest) (*domain.ReviewResult, error)
}

// Options configures the screen. Code preloads the editor.
type Options struct {
	Service  Service
	Language string
	Code     string
	Filter   *filter.Filter
	Logger   *terminal.Logger
}

type focusArea int

const (
	focusEditor focusArea = iota
	focusFindings
)

type healthMsg struct {
	err error
}

type reviewMsg struct {
	id      string
	result  *domain.ReviewResult
	err     error
	elapsed time.Duration
}

// Model is the bubbletea model for the review screen.
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	service Service
	session *session.Controller
	filter  *filter.Filter
	logger  *terminal.Logger

	editor    textarea.Model
	languages terminal.LanguageSelector
	spinner   spinner.Model
	findings  viewport.Model
	gauges    []gauge.Model
	filtered  int

	focus    focusArea
	width    int
	height   int
	quitting bool
}

// New creates the review screen. Requests run under a context derived from
// ctx that is cancelled when the screen is torn down.
func New(ctx context.Context, opts Options) Model {
	ctx, cancel := context.WithCancel(ctx)

	logger := opts.Logger
	if logger == nil {
		logger = terminal.NewLoggerTo(nil)
	}

	ctrl := session.New(opts.Language)

	editor := textarea.New()
	editor.Placeholder = Placeholder
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Focus()

	m := Model{
		ctx:       ctx,
		cancel:    cancel,
		service:   opts.Service,
		session:   ctrl,
		filter:    opts.Filter,
		logger:    logger,
		editor:    editor,
		languages: terminal.NewLanguageSelector(ctrl.State().Language),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(titleStyle)),
		findings:  viewport.New(defaultWidth, minFindingsRows),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	if opts.Code != "" {
		m.setCode(opts.Code)
	} else {
		m.layout()
	}
	return m
}

// State returns the session snapshot.
func (m Model) State() session.State {
	return m.session.State()
}

// Gauges returns the score rings of the current result in service order.
func (m Model) Gauges() []gauge.Model {
	return m.gauges
}

// Init starts the health probe and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.probe(), textarea.Blink)
}

func (m Model) probe() tea.Cmd {
	if m.service == nil {
		return nil
	}
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		return healthMsg{err: svc.Health(ctx)}
	}
}

func (m Model) review(req domain.ReviewRequest) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		start := time.Now()
		result, err := svc.Review(ctx, req)
		return reviewMsg{id: req.ID, result: result, err: err, elapsed: time.Since(start)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case healthMsg:
		online := msg.err == nil
		m.session.SetServiceOnline(online)
		if online {
			m.logger.Log("analysis service is online", terminal.StyleSuccess)
		} else {
			m.logger.Logf(terminal.StyleWarning, "analysis service is offline: %v", msg.err)
		}
		return m, nil

	case reviewMsg:
		cmd := m.settle(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.session.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	for i := range m.gauges {
		m.gauges[i], cmd = m.gauges[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit:
		m.teardown()
		return m, tea.Quit

	case KeyEsc:
		// Only quits from the findings pane so a stray esc keeps the editor.
		if m.focus != focusFindings {
			return m, nil
		}
		m.teardown()
		return m, tea.Quit

	case KeyScan:
		cmd := m.submit()
		return m, cmd

	case KeyFocus:
		if m.focus == focusEditor {
			m.focus = focusFindings
			m.editor.Blur()
			return m, nil
		}
		m.focus = focusEditor
		return m, m.editor.Focus()

	case terminal.KeyNextLanguage, terminal.KeyPrevLanguage:
		m.languages, _ = m.languages.Update(msg)
		if err := m.session.SetLanguage(m.languages.Selected().ID); err != nil {
			m.logger.Logf(terminal.StyleError, "%v", err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusFindings {
		m.findings, cmd = m.findings.Update(msg)
		return m, cmd
	}
	m.editor, cmd = m.editor.Update(msg)
	m.session.SetCode(m.editor.Value())
	m.layout()
	return m, cmd
}

// submit starts a review of the editor contents. Blank code and submissions
// while one is in flight are no-ops.
func (m *Model) submit() tea.Cmd {
	if m.service == nil {
		return nil
	}
	req, ok := m.session.Submit()
	if !ok {
		return nil
	}
	for i := range m.gauges {
		m.gauges[i].Stop()
	}
	m.gauges = nil
	m.filtered = 0
	m.layout()

	m.logger.Logf(terminal.StylePhase, "submitting %s (%s, %d lines)", req.ID, req.Language, strings.Count(req.Code, "\n")+1)
	return tea.Batch(m.spinner.Tick, m.review(req))
}

func (m *Model) settle(msg reviewMsg) tea.Cmd {
	var result *domain.ReviewResult
	filtered := 0
	if msg.err == nil && msg.result != nil {
		kept, n := m.filter.Apply(*msg.result)
		result, filtered = &kept, n
	}

	switch m.session.Settle(msg.id, result, msg.err) {
	case session.SettlementIgnored:
		m.logger.Logf(terminal.StyleDim, "dropping settlement for %s", msg.id)
		return nil
	case session.SettlementFailed:
		if msg.err == nil {
			m.logger.Logf(terminal.StyleError, "review %s failed: empty result", msg.id)
		} else {
			m.logger.Logf(terminal.StyleError, "review %s failed: %v", msg.id, msg.err)
		}
		m.layout()
		return nil
	}

	m.filtered = filtered
	m.logger.Logf(terminal.StyleSuccess, "review %s finished in %s: %d issues", msg.id, terminal.FormatDuration(msg.elapsed), len(result.Issues))
	if filtered > 0 {
		m.logger.Logf(terminal.StyleDim, "%d issues hidden by exclude patterns", filtered)
	}

	cmds := make([]tea.Cmd, 0, len(result.Scores))
	m.gauges = make([]gauge.Model, 0, len(result.Scores))
	for _, s := range result.Scores {
		g := gauge.ForMetric(s.Metric, gauge.WithColumns(gaugeColumns))
		cmds = append(cmds, g.SetValue(s.Value))
		m.gauges = append(m.gauges, g)
	}
	m.layout()
	m.findings.GotoTop()
	return tea.Batch(cmds...)
}

// teardown cancels in-flight requests and gauge timers. Settlements that
// arrive afterwards are dropped.
func (m *Model) teardown() {
	m.cancel()
	for i := range m.gauges {
		m.gauges[i].Stop()
	}
	m.session.Close()
	m.quitting = true
}

func (m Model) wide() bool {
	return m.width >= wideLayoutWidth
}

func (m Model) paneWidth() int {
	if m.wide() {
		return (m.width - 3) / 2
	}
	return m.width
}

// layout sizes the editor and the findings viewport to the window.
func (m *Model) layout() {
	pane := m.paneWidth()
	m.editor.SetWidth(max(10, pane-4))
	m.editor.SetHeight(editorHeight(m.editor.LineCount(), m.height-10))

	m.findings.Width = pane
	m.findings.SetContent(m.findingsContent(pane))

	used := lipgloss.Height(m.headerView()) + lipgloss.Height(m.helpView()) + 2
	if !m.wide() {
		used += lipgloss.Height(m.inputView()) + 1
	}
	if result := m.session.State().Result; result != nil {
		used += lipgloss.Height(m.gaugesView(pane)) + lipgloss.Height(m.summaryView(result, pane))
	}
	m.findings.Height = max(minFindingsRows, m.height-used)
}

// editorHeight returns the editor rows for a line count, capped at limit
// when limit is positive.
func editorHeight(lines, limit int) int {
	h := min(max(lines+editorPadRows, minEditorRows), maxEditorRows)
	if limit > 0 && h > limit {
		h = max(limit, 1)
	}
	return h
}

// setCode replaces the editor contents.
func (m *Model) setCode(code string) {
	m.editor.SetValue(code)
	m.session.SetCode(code)
	m.layout()
}
