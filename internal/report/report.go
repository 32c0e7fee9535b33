// Package report renders review results for non-interactive output.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/richhaase/codescan/internal/domain"
	"github.com/richhaase/codescan/internal/gauge"
	"github.com/richhaase/codescan/internal/terminal"
)

const barWidth = 20

// Stats is the context printed alongside a result.
type Stats struct {
	SubmissionID  string
	Language      string
	FilteredCount int
	Duration      time.Duration
}

// RenderReport renders a terminal report for a review result.
func RenderReport(result domain.ReviewResult, stats Stats) string {
	width := terminal.ReportWidth()

	var lines []string

	lines = append(lines, "")
	header := fmt.Sprintf("%s%sAI Audit Summary%s", terminal.Color(terminal.Indigo), terminal.Color(terminal.Bold), terminal.Color(terminal.Reset))
	if stats.Language != "" {
		header += fmt.Sprintf(" %s(%s)%s", terminal.Color(terminal.Dim), languageName(stats.Language), terminal.Color(terminal.Reset))
	}
	lines = append(lines, header)
	lines = append(lines, terminal.Ruler(width, "━"))
	if result.Summary != "" {
		lines = append(lines, terminal.WrapText(result.Summary, width, "  "))
	}

	if len(result.Scores) > 0 {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%sScores%s", terminal.Color(terminal.Bold), terminal.Color(terminal.Reset)))
		lines = append(lines, terminal.Ruler(width, "─"))
		lines = append(lines, strings.TrimRight(renderScoreTable(result.Scores), "\n"))
	}

	lines = append(lines, "")
	if !result.HasIssues() {
		lines = append(lines, fmt.Sprintf("%s✓%s %s%sNo issues found%s",
			terminal.Color(terminal.Green), terminal.Color(terminal.Reset),
			terminal.Color(terminal.Green), terminal.Color(terminal.Bold), terminal.Color(terminal.Reset)))
	} else {
		issueWord := "issue"
		if len(result.Issues) != 1 {
			issueWord = "issues"
		}
		title := fmt.Sprintf("%s%sDetailed Findings%s %s(%d %s",
			terminal.Color(terminal.Cyan), terminal.Color(terminal.Bold), terminal.Color(terminal.Reset),
			terminal.Color(terminal.Dim), len(result.Issues), issueWord)
		if high := result.HighSeverityCount(); high > 0 {
			title += fmt.Sprintf(", %d high", high)
		}
		title += ")" + terminal.Color(terminal.Reset)
		lines = append(lines, title)
		lines = append(lines, terminal.Ruler(width, "━"))

		for idx, issue := range result.Issues {
			lines = append(lines, "")
			lines = append(lines, issueHeading(idx+1, issue))
			if issue.Description != "" {
				lines = append(lines, terminal.WrapText(issue.Description, width, "   "))
			}
			if issue.Suggestion != "" {
				prefix := fmt.Sprintf("   %s→%s ", terminal.Color(terminal.Green), terminal.Color(terminal.Reset))
				lines = append(lines, terminal.WrapText(issue.Suggestion, width, prefix))
			}
		}
	}

	if len(result.Recommendations) > 0 {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%sRecommendations%s", terminal.Color(terminal.Bold), terminal.Color(terminal.Reset)))
		lines = append(lines, terminal.Ruler(width, "─"))
		for _, rec := range result.Recommendations {
			if rec == "" {
				continue
			}
			prefix := fmt.Sprintf("  %s•%s ", terminal.Color(terminal.Dim), terminal.Color(terminal.Reset))
			lines = append(lines, terminal.WrapText(rec, width, prefix))
		}
	}

	lines = append(lines, "")
	lines = append(lines, terminal.Ruler(width, "━"))

	if stats.FilteredCount > 0 {
		issueWord := "issue"
		if stats.FilteredCount != 1 {
			issueWord = "issues"
		}
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%sℹ %d %s hidden by exclude patterns%s",
			terminal.Color(terminal.Dim), stats.FilteredCount, issueWord, terminal.Color(terminal.Reset)))
	}

	if stats.Duration > 0 || stats.SubmissionID != "" {
		var parts []string
		if stats.Duration > 0 {
			parts = append(parts, "analyzed in "+terminal.FormatDuration(stats.Duration))
		}
		if stats.SubmissionID != "" {
			parts = append(parts, "submission "+stats.SubmissionID)
		}
		lines = append(lines, fmt.Sprintf("%s%s%s", terminal.Color(terminal.Dim), strings.Join(parts, " · "), terminal.Color(terminal.Reset)))
	}

	return strings.Join(lines, "\n")
}

func issueHeading(n int, issue domain.Issue) string {
	icon, color := "●", terminal.Yellow
	if issue.Severity.IsHigh() {
		icon, color = "▲", terminal.Red
	}
	severity := strings.ToUpper(strings.TrimSpace(string(issue.Severity)))
	if severity == "" {
		severity = "UNRATED"
	}
	category := ""
	if issue.Category != "" {
		category = fmt.Sprintf(" %s%s%s", terminal.Color(terminal.Dim), issue.Category, terminal.Color(terminal.Reset))
	}
	return fmt.Sprintf("%s%d.%s %s%s %s%s%s",
		terminal.Color(terminal.Bold), n, terminal.Color(terminal.Reset),
		terminal.Color(color), icon, severity, terminal.Color(terminal.Reset), category)
}

func renderScoreTable(scores domain.Scores) string {
	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "  ", Right: "  "}),
	)
	table.Header([]string{"Metric", "Score", ""})

	geometry := gauge.DefaultGeometry()
	for _, s := range scores {
		_ = table.Append([]string{
			s.Metric,
			fmt.Sprintf("%.1f / %d", s.Value, domain.MaxScore),
			ScoreBar(geometry, s.Value, barWidth),
		})
	}
	_ = table.Render()
	return buf.String()
}

// ScoreBar draws value as a horizontal bar of width cells, filled in the
// same proportion as the ring gauge.
func ScoreBar(g gauge.Geometry, value float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(g.Fraction(value)*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func languageName(id string) string {
	if lang, ok := domain.LookupLanguage(id); ok {
		return lang.Name
	}
	return id
}

// RenderJSON writes the result as indented JSON. Empty lists are written as
// [] rather than null.
func RenderJSON(w io.Writer, result domain.ReviewResult) error {
	if result.Scores == nil {
		result.Scores = domain.Scores{}
	}
	if result.Issues == nil {
		result.Issues = []domain.Issue{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
