package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"mkvdefaulter/internal/batch"
	"mkvdefaulter/internal/textutil"
)

var outcomeLabels = map[batch.Outcome]string{
	batch.OutcomeChanged:     "Changed",
	batch.OutcomeWouldChange: "Would change",
	batch.OutcomeUnchanged:   "Unchanged",
	batch.OutcomeSkipped:     "Skipped",
	batch.OutcomeInvalid:     "Invalid",
	batch.OutcomeError:       "Errors",
	batch.OutcomeCancelled:   "Cancelled",
}

var outcomeColors = map[batch.Outcome]color.Attribute{
	batch.OutcomeChanged:     color.FgGreen,
	batch.OutcomeWouldChange: color.FgGreen,
	batch.OutcomeSkipped:     color.FgYellow,
	batch.OutcomeInvalid:     color.FgYellow,
	batch.OutcomeError:       color.FgRed,
	batch.OutcomeCancelled:   color.FgMagenta,
}

// renderSummary prints outcome counts, per-extension counts, the problem
// files, and the total runtime.
func renderSummary(w io.Writer, rep batch.Report, root string, colorize bool) {
	paint := func(o batch.Outcome, s string) string {
		attr, ok := outcomeColors[o]
		if !ok {
			return s
		}
		c := color.New(attr)
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.Sprint(s)
	}

	title := "Summary"
	if rep.DryRun {
		title += " (DRY RUN)"
	}
	fmt.Fprintln(w, title)

	if rep.Total() == 0 {
		fmt.Fprintln(w, "No matching files found.")
		fmt.Fprintf(w, "Total runtime: %s\n", formatRuntime(rep.Elapsed))
		return
	}

	rows := make([][]string, 0, len(batch.Outcomes))
	for _, outcome := range summaryOutcomes(rep) {
		rows = append(rows, []string{
			paint(outcome, outcomeLabels[outcome]),
			humanize.Comma(int64(rep.Count(outcome))),
		})
	}
	fmt.Fprintln(w, reportTable{
		headers: []string{"Outcome", "Files"},
		rows:    rows,
		footer:  []string{"Total", humanize.Comma(int64(rep.Total()))},
		counts:  []int{1},
	}.render())

	exts := rep.SortedExtensions()
	parts := make([]string, 0, len(exts))
	for _, ext := range exts {
		parts = append(parts, fmt.Sprintf("%s %s", ext, humanize.Comma(int64(rep.Extensions[ext]))))
	}
	fmt.Fprintf(w, "Extensions: %s\n", strings.Join(parts, ", "))

	if problems := rep.Problems(); len(problems) > 0 {
		problemRows := make([][]string, 0, len(problems))
		for _, p := range problems {
			problemRows = append(problemRows, []string{
				displayPath(root, p.Path),
				paint(p.Outcome, string(p.Outcome)),
				p.Stage,
				p.Reason,
			})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, reportTable{
			title:   "Problems",
			headers: []string{"File", "Outcome", "Stage", "Reason"},
			rows:    problemRows,
			wrap:    []int{3},
		}.render())
	}

	fmt.Fprintf(w, "Total runtime: %s\n", formatRuntime(rep.Elapsed))
}

// summaryOutcomes lists the rows to show: the change row for the run mode,
// unchanged and skipped always, and the rest only when they occurred.
func summaryOutcomes(rep batch.Report) []batch.Outcome {
	changeRow := textutil.Ternary(rep.DryRun, batch.OutcomeWouldChange, batch.OutcomeChanged)
	out := []batch.Outcome{changeRow, batch.OutcomeUnchanged, batch.OutcomeSkipped}
	for _, o := range []batch.Outcome{batch.OutcomeInvalid, batch.OutcomeError, batch.OutcomeCancelled} {
		if rep.Count(o) > 0 {
			out = append(out, o)
		}
	}
	return out
}

func displayPath(root, path string) string {
	if root == "" {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func formatRuntime(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(10 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
