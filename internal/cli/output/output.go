// Package output provides output formatting for flexnotes-cli.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formatter renders a table or arbitrary data to a writer.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter returns the formatter for the given output mode
// ("table" or "json").
func NewFormatter(mode string) (Formatter, error) {
	switch mode {
	case "table", "":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want table or json)", mode)
}

// Table is a simple header-and-rows structure built by commands.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Add appends a row.
func (t *Table) Add(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// TableFormatter renders a Table with aligned columns. Non-table data
// falls back to indented JSON.
type TableFormatter struct{}

// Format renders the data.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	t, ok := data.(*Table)
	if !ok {
		return (&JSONFormatter{}).Format(w, data)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// JSONFormatter renders data as indented JSON.
type JSONFormatter struct{}

// Format renders the data.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
