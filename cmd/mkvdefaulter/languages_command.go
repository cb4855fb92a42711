package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mkvdefaulter/internal/language"
)

const defaultTerminalWidth = 80

func newLanguagesCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "languages",
		Short:       "List the language codes accepted by --audio and --subtitle",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := language.Codes()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), codes)
			}
			entries := make([]string, 0, len(codes))
			for _, c := range codes {
				entries = append(entries, c.String())
			}
			out := cmd.OutOrStdout()
			writeColumns(out, entries, terminalWidth(out))
			fmt.Fprintf(out, "\nUse %q for --subtitle to disable subtitles by default.\n", language.Off)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the table as JSON")
	return cmd
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// writeColumns lays entries out column-major in as many columns as width allows.
func writeColumns(w io.Writer, entries []string, width int) {
	if len(entries) == 0 {
		return
	}
	cell := 0
	for _, e := range entries {
		cell = max(cell, len([]rune(e)))
	}
	cell += 2
	cols := max(1, width/cell)
	rows := (len(entries) + cols - 1) / cols

	for r := range rows {
		var line strings.Builder
		for c := range cols {
			i := c*rows + r
			if i >= len(entries) {
				break
			}
			entry := entries[i]
			line.WriteString(entry)
			if c < cols-1 && (c+1)*rows+r < len(entries) {
				line.WriteString(strings.Repeat(" ", cell-len([]rune(entry))))
			}
		}
		fmt.Fprintln(w, line.String())
	}
}
