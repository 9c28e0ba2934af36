// Package format renders command output as terminal tables.
package format

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode selects how a table is rendered.
type Mode string

const (
	// Table renders box-drawn terminal tables.
	Table Mode = "table"
	// Markdown renders GitHub-flavoured Markdown tables.
	Markdown Mode = "markdown"
	// CSV renders comma-separated values.
	CSV Mode = "csv"
)

// ParseMode converts a flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Table, Markdown, CSV:
		return m, nil
	case "":
		return Table, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: table, markdown, csv)", s)
	}
}

// Builder accumulates rows and renders them in one Mode.
type Builder struct {
	writer  table.Writer
	mode    Mode
	columns []table.ColumnConfig

	// records mirrors the header and rows for CSV output.
	records [][]string
}

// NewTable returns a Builder for the given mode.
func NewTable(m Mode) *Builder {
	w := table.NewWriter()
	if m == Table {
		w.SetStyle(table.StyleLight)
	}
	w.Style().Format.Header = text.FormatDefault
	return &Builder{writer: w, mode: m}
}

// Header sets the column headers.
func (b *Builder) Header(cols ...string) *Builder {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	b.writer.AppendHeader(row)
	b.records = append(b.records, cols)
	return b
}

// Row appends a data row.
func (b *Builder) Row(vals ...any) *Builder {
	b.writer.AppendRow(table.Row(vals))
	record := make([]string, len(vals))
	for i, v := range vals {
		record[i] = fmt.Sprint(v)
	}
	b.records = append(b.records, record)
	return b
}

// MaxWidth wraps the 1-based column at width characters.
func (b *Builder) MaxWidth(column, width int) *Builder {
	b.columns = append(b.columns, table.ColumnConfig{
		Number:   column,
		WidthMax: width,
	})
	b.writer.SetColumnConfigs(b.columns)
	return b
}

// Len returns the number of data rows.
func (b *Builder) Len() int {
	return b.writer.Length()
}

// String renders the table.
func (b *Builder) String() string {
	switch b.mode {
	case Markdown:
		return b.writer.RenderMarkdown()
	case CSV:
		return b.renderCSV()
	default:
		return b.writer.Render()
	}
}

// renderCSV writes RFC 4180 records. go-pretty backslash-escapes embedded
// commas, which spreadsheet tools do not read back.
func (b *Builder) renderCSV() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.WriteAll(b.records)
	return strings.TrimSuffix(sb.String(), "\n")
}
