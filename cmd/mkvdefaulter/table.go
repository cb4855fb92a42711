package main

import (
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// reasonWidth is the wrap width of free-text columns.
const reasonWidth = 60

// reportTable describes one of the tables printed by run and doctor.
type reportTable struct {
	title   string
	headers []string
	rows    [][]string
	// footer is rendered below a separator, e.g. the file total.
	footer []string
	// counts marks right-aligned numeric columns by index.
	counts []int
	// wrap marks columns wrapped at reasonWidth by index.
	wrap []int
}

func (rt reportTable) render() string {
	columns := len(rt.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	if rt.title != "" {
		tw.SetTitle(rt.title)
	}
	tw.AppendHeader(rt.row(rt.headers))
	for _, row := range rt.rows {
		tw.AppendRow(rt.row(row))
	}
	if len(rt.footer) > 0 {
		tw.AppendFooter(rt.row(rt.footer))
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		cfg := table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
		if slices.Contains(rt.counts, i) {
			cfg.Align = text.AlignRight
			cfg.AlignFooter = text.AlignRight
		}
		if slices.Contains(rt.wrap, i) {
			cfg.WidthMax = reasonWidth
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// row pads or truncates cells to the header width.
func (rt reportTable) row(cells []string) table.Row {
	r := make(table.Row, len(rt.headers))
	for i := range r {
		if i < len(cells) {
			r[i] = cells[i]
		} else {
			r[i] = ""
		}
	}
	return r
}
