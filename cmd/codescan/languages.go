package main

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/richhaase/codescan/internal/domain"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printLanguages(cmd.OutOrStdout())
		},
	}
}

func printLanguages(w io.Writer) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header([]string{"Group", "ID", "Name", "Extensions"})

	for _, lang := range domain.Languages() {
		id := lang.ID
		if id == domain.DefaultLanguage {
			id += " (default)"
		}
		if err := table.Append([]string{lang.Group, id, lang.Name, strings.Join(lang.Extensions, " ")}); err != nil {
			return err
		}
	}
	return table.Render()
}
