package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// writeOutput encodes value as json or yaml, or renders it with table
func writeOutput(w io.Writer, format string, value any, table func(t *tableWriter) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()

	case "table":
		t := newTableWriter(w, 4)
		if err := table(t); err != nil {
			return err
		}
		return t.Flush()

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// tableWriter writes aligned columns with a fixed float precision
type tableWriter struct {
	tw        *tabwriter.Writer
	precision int
	upper     cases.Caser
	err       error
}

func newTableWriter(w io.Writer, precision int) *tableWriter {
	return &tableWriter{
		tw:        tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		precision: precision,
		upper:     cases.Upper(language.English),
	}
}

func (t *tableWriter) SetPrecision(precision int) {
	if precision >= 0 {
		t.precision = precision
	}
}

// Header writes upper-cased column names followed by a rule
func (t *tableWriter) Header(columns ...string) {
	names := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, c := range columns {
		names[i] = t.upper.String(c)
		rules[i] = strings.Repeat("-", len(c))
	}
	t.line(names)
	t.line(rules)
}

// Row writes one row; floats use the table precision
func (t *tableWriter) Row(values ...any) {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = t.format(v)
	}
	t.line(cells)
}

// Summary writes mean and standard deviation rows for each column of data
func (t *tableWriter) Summary(label string, skip int, columns [][]float64) {
	means := make([]any, 0, skip+len(columns))
	stddevs := make([]any, 0, skip+len(columns))

	means = append(means, label+" mean")
	stddevs = append(stddevs, label+" stddev")
	for range skip - 1 {
		means = append(means, "")
		stddevs = append(stddevs, "")
	}

	for _, column := range columns {
		if len(column) == 0 {
			means = append(means, "-")
			stddevs = append(stddevs, "-")
			continue
		}
		mean, std := stat.MeanStdDev(column, nil)
		means = append(means, mean)
		stddevs = append(stddevs, std)
	}

	t.Row(means...)
	t.Row(stddevs...)
}

func (t *tableWriter) Flush() error {
	if t.err != nil {
		return t.err
	}
	return t.tw.Flush()
}

func (t *tableWriter) format(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', t.precision, 64)
	case []float64:
		parts := make([]string, len(x))
		for i, f := range x {
			parts[i] = strconv.FormatFloat(f, 'f', t.precision, 64)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

func (t *tableWriter) line(cells []string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
}
