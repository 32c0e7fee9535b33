package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Language groups shown in the selector.
const (
	GroupWeb    = "Web"
	GroupSystem = "System"
)

// DefaultLanguage is selected when nothing else is configured.
const DefaultLanguage = "python"

// Language is an entry in the fixed language catalog. ID is the value sent to
// the analysis service.
type Language struct {
	ID         string
	Name       string
	Group      string
	Extensions []string
}

var languages = []Language{
	{ID: "javascript", Name: "JavaScript", Group: GroupWeb, Extensions: []string{".js", ".mjs", ".cjs", ".jsx"}},
	{ID: "typescript", Name: "TypeScript", Group: GroupWeb, Extensions: []string{".ts", ".tsx", ".mts"}},
	{ID: "php", Name: "PHP", Group: GroupWeb, Extensions: []string{".php"}},
	{ID: "python", Name: "Python", Group: GroupSystem, Extensions: []string{".py"}},
	{ID: "java", Name: "Java", Group: GroupSystem, Extensions: []string{".java"}},
	{ID: "cpp", Name: "C++", Group: GroupSystem, Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".h"}},
	{ID: "rust", Name: "Rust", Group: GroupSystem, Extensions: []string{".rs"}},
}

// Languages returns the catalog in display order.
func Languages() []Language {
	return slices.Clone(languages)
}

// LanguageIDs returns the catalog identifiers in display order.
func LanguageIDs() []string {
	ids := make([]string, 0, len(languages))
	for _, l := range languages {
		ids = append(ids, l.ID)
	}
	return ids
}

// LanguageGroups returns the group names in display order.
func LanguageGroups() []string {
	var groups []string
	for _, l := range languages {
		if !slices.Contains(groups, l.Group) {
			groups = append(groups, l.Group)
		}
	}
	return groups
}

// LookupLanguage finds a catalog entry by ID.
func LookupLanguage(id string) (Language, bool) {
	for _, l := range languages {
		if l.ID == id {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageIndex returns the catalog position of id, or -1.
func LanguageIndex(id string) int {
	return slices.IndexFunc(languages, func(l Language) bool { return l.ID == id })
}

// LanguageForPath guesses the language from a file extension.
func LanguageForPath(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Language{}, false
	}
	for _, l := range languages {
		if slices.Contains(l.Extensions, ext) {
			return l, true
		}
	}
	return Language{}, false
}
