package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/richhaase/codescan/internal/domain"
)

const (
	emptyStateRows = 9
	highIcon       = "⛨"
	otherIcon      = "!"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	input := m.inputView()
	results := m.resultsView()

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, input, "   ", results)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, input, "", results)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), "", body, "", m.helpView())
}

func (m Model) headerView() string {
	dot, status := lipgloss.NewStyle().Foreground(colorRed).Render("●"), "Engine Offline"
	if m.session.State().ServiceOnline {
		dot, status = lipgloss.NewStyle().Foreground(colorOnline).Render("●"), "Engine Active"
	}
	return titleStyle.Render("CodeScanner") + "  " + dot + " " + mutedStyle.Render(status)
}

func (m Model) inputView() string {
	lang := m.languages.Selected()
	label := mutedStyle.Render("Language") + " " + titleStyle.Render(lang.Name) + mutedStyle.Render(" ("+lang.Group+")")

	box := editorStyle
	if m.focus == focusEditor {
		box = editorFocusedStyle
	}
	editor := box.Render(m.editor.View())

	return lipgloss.JoinVertical(lipgloss.Left, label, m.languages.View(), editor, m.buttonView())
}

func (m Model) buttonView() string {
	if m.session.State().Loading {
		return buttonDisabledStyle.Render(m.spinner.View() + "Analyzing...")
	}
	if !m.session.CanSubmit() {
		return buttonDisabledStyle.Render("Scan")
	}
	return buttonStyle.Render("Scan")
}

func (m Model) helpView() string {
	return mutedStyle.Render("ctrl+s scan • ctrl+l/ctrl+g language • tab focus • ctrl+c quit")
}

func (m Model) resultsView() string {
	pane := m.paneWidth()
	result := m.session.State().Result
	if result == nil {
		return emptyStyle.Width(pane - 2).Height(emptyStateRows).Render("◌\n\nSystem Ready For Input")
	}

	findings := m.findings.View()
	box := cardStyle
	if m.focus == focusFindings {
		box = box.BorderForeground(colorAccent)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.gaugesView(pane),
		m.summaryView(result, pane),
		box.Width(pane-2).Render(findings),
	)
}

// gaugesView lays the score rings out in rows that fit width.
func (m Model) gaugesView(width int) string {
	if len(m.gauges) == 0 {
		return ""
	}
	perRow := max(1, (width+gaugeGap)/(gaugeColumns+gaugeGap))
	gap := strings.Repeat(" ", gaugeGap)

	var rows []string
	for start := 0; start < len(m.gauges); start += perRow {
		end := min(start+perRow, len(m.gauges))
		var cells []string
		for i, g := range m.gauges[start:end] {
			if i > 0 {
				cells = append(cells, gap)
			}
			cells = append(cells, g.View())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return cardStyle.Width(width - 2).Render(strings.Join(rows, "\n\n"))
}

func (m Model) summaryView(result *domain.ReviewResult, width int) string {
	text := summaryStyle.Width(max(10, width-4)).Render("\"" + result.Summary + "\"")
	return cardStyle.Width(width - 2).Render(summaryTitle.Render("AI Audit Summary") + "\n" + text)
}

// findingsContent renders the scrollable findings list for the current
// result.
func (m Model) findingsContent(width int) string {
	result := m.session.State().Result
	if result == nil {
		return ""
	}
	return renderFindings(*result, m.filtered, max(10, width-4))
}

func renderFindings(result domain.ReviewResult, filtered, width int) string {
	var lines []string
	lines = append(lines, sectionStyle.Render(fmt.Sprintf("Detailed Findings (%d)", len(result.Issues))))

	if len(result.Issues) == 0 {
		lines = append(lines, "", suggestionStyle.Render("✓ No issues found"))
	}

	textWidth := max(10, width-3)
	for _, issue := range result.Issues {
		icon, style := otherIcon, otherStyle
		if issue.Severity.IsHigh() {
			icon, style = highIcon, highStyle
		}
		heading := style.Render(icon + " " + strings.ToUpper(string(issue.Severity)))
		if issue.Category != "" {
			heading += mutedStyle.Render(" · " + issue.Category)
		}
		lines = append(lines, "", heading)
		if issue.Description != "" {
			lines = append(lines, indent(descStyle.Width(textWidth).Render(issue.Description), "   "))
		}
		if issue.Suggestion != "" {
			lines = append(lines, indent(suggestionStyle.Width(textWidth).Render("› "+issue.Suggestion), "   "))
		}
	}

	if len(result.Recommendations) > 0 {
		lines = append(lines, "", sectionStyle.Render("Recommendations"))
		for _, rec := range result.Recommendations {
			lines = append(lines, mutedStyle.Width(width).Render("• "+rec))
		}
	}

	if filtered > 0 {
		word := "issue"
		if filtered != 1 {
			word = "issues"
		}
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("ℹ %d %s hidden by exclude patterns", filtered, word)))
	}
	return strings.Join(lines, "\n")
}

func indent(s, prefix string) string {
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, "\n")
}
