// Package filter provides filtering capabilities for review issues.
package filter

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/richhaase/codescan/internal/domain"
)

// Filter holds compiled regex patterns for excluding issues.
type Filter struct {
	excludePatterns []*regexp.Regexp
}

// New creates a Filter from pattern strings.
// Returns an error if any pattern is an invalid regex.
func New(patterns []string) (*Filter, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &Filter{excludePatterns: compiled}, nil
}

// Apply returns a copy of result with excluded issues removed, and how many
// were removed. Scores, summary and recommendations are never filtered.
// A nil Filter keeps everything.
func (f *Filter) Apply(result domain.ReviewResult) (domain.ReviewResult, int) {
	if f == nil || len(f.excludePatterns) == 0 {
		return result, 0
	}

	kept := make([]domain.Issue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		if !f.shouldExclude(issue) {
			kept = append(kept, issue)
		}
	}

	out := result
	out.Scores = slices.Clone(result.Scores)
	out.Recommendations = slices.Clone(result.Recommendations)
	out.Issues = kept
	return out, len(result.Issues) - len(kept)
}

// shouldExclude returns true if any pattern matches the issue's category,
// description, or suggestion.
func (f *Filter) shouldExclude(issue domain.Issue) bool {
	for _, re := range f.excludePatterns {
		if re.MatchString(issue.Description) || re.MatchString(issue.Category) || re.MatchString(issue.Suggestion) {
			return true
		}
	}
	return false
}
