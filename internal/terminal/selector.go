package terminal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/richhaase/codescan/internal/domain"
)

// Language selector key bindings.
const (
	KeyNextLanguage = "ctrl+l"
	KeyPrevLanguage = "ctrl+g"
)

var (
	selectorGroupStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	selectorItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	selectorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#6366f1")).Padding(0, 1)
)

// LanguageSelector is the bubbletea component for picking a catalog language.
// It cycles through the catalog in display order and wraps at both ends.
type LanguageSelector struct {
	langs  []domain.Language
	cursor int
}

// NewLanguageSelector creates a selector positioned on id, or on the default
// language if id is not in the catalog.
func NewLanguageSelector(id string) LanguageSelector {
	s := LanguageSelector{langs: domain.Languages()}
	if !s.Select(id) {
		s.Select(domain.DefaultLanguage)
	}
	return s
}

// Init implements tea.Model.
func (s LanguageSelector) Init() tea.Cmd {
	return nil
}

// Update moves the selection on the next/previous key bindings.
func (s LanguageSelector) Update(msg tea.Msg) (LanguageSelector, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(s.langs) == 0 {
		return s, nil
	}
	switch key.String() {
	case KeyNextLanguage:
		s.cursor = (s.cursor + 1) % len(s.langs)
	case KeyPrevLanguage:
		s.cursor = (s.cursor - 1 + len(s.langs)) % len(s.langs)
	}
	return s, nil
}

// Select moves the cursor to id. Returns false if id is not in the catalog.
func (s *LanguageSelector) Select(id string) bool {
	for i, l := range s.langs {
		if l.ID == id {
			s.cursor = i
			return true
		}
	}
	return false
}

// Selected returns the language under the cursor.
func (s LanguageSelector) Selected() domain.Language {
	if len(s.langs) == 0 {
		return domain.Language{}
	}
	return s.langs[s.cursor]
}

// View renders the catalog grouped as "Web: ... System: ...".
func (s LanguageSelector) View() string {
	var groups []string
	for _, group := range domain.LanguageGroups() {
		parts := []string{selectorGroupStyle.Render(group + ":")}
		for i, l := range s.langs {
			if l.Group != group {
				continue
			}
			if i == s.cursor {
				parts = append(parts, selectorSelectedStyle.Render(l.Name))
			} else {
				parts = append(parts, selectorItemStyle.Render(l.Name))
			}
		}
		groups = append(groups, strings.Join(parts, " "))
	}
	return strings.Join(groups, "   ")
}
