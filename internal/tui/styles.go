package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorIndigo = lipgloss.Color("#4f46e5")
	colorAccent = lipgloss.Color("#6366f1")
	colorBorder = lipgloss.Color("#e5e7eb")
	colorMuted  = lipgloss.Color("#9ca3af")
	colorText   = lipgloss.Color("#374151")
	colorOnline = lipgloss.Color("#10b981")
	colorRed    = lipgloss.Color("#ef4444")
	colorAmber  = lipgloss.Color("#d97706")
	colorGreen  = lipgloss.Color("#15803d")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorIndigo)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	editorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	editorFocusedStyle = editorStyle.BorderForeground(colorAccent)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorIndigo).
			Padding(0, 3)
	buttonDisabledStyle = buttonStyle.Background(colorMuted)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Foreground(colorMuted).
			Align(lipgloss.Center, lipgloss.Center)

	sectionStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorMuted)
	summaryTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorIndigo)
	summaryStyle    = lipgloss.NewStyle().Italic(true).Foreground(colorText)
	descStyle       = lipgloss.NewStyle().Bold(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(colorGreen)
	highStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	otherStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorAmber)
)
