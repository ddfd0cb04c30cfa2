// Package report prints dataset diagnostics as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/olekukonko/tablewriter"

	"github.com/jengzang/bikeshare-eda/internal/models"
	"github.com/jengzang/bikeshare-eda/internal/stats"
)

var titleColor = color.New(color.FgCyan, color.Bold)

func title(w io.Writer, text string) {
	titleColor.Fprintln(w, text)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

// PrintShape prints (rows, columns) of the raw frame
func PrintShape(w io.Writer, frame dataframe.DataFrame) {
	rows, cols := frame.Dims()
	title(w, "Shape")
	fmt.Fprintf(w, "(%d, %d)\n\n", rows, cols)
}

// PrintHead prints the first n rows of the raw frame with every column
func PrintHead(w io.Writer, frame dataframe.DataFrame, n int) {
	rows, _ := frame.Dims()
	if n > rows {
		n = rows
	}
	names := frame.Names()

	title(w, fmt.Sprintf("Head (%d rows)", n))
	table := newTable(w, append([]string{""}, names...))
	for i := 0; i < n; i++ {
		row := []string{strconv.Itoa(i)}
		for _, name := range names {
			row = append(row, formatElem(frame.Col(name), i))
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintDtypes prints the diagnostic type of every raw frame column
func PrintDtypes(w io.Writer, frame dataframe.DataFrame) {
	title(w, "Dtypes")
	table := newTable(w, []string{"column", "dtype"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, t := range frame.Types() {
		table.Append([]string{frame.Names()[i], dtypeName(t)})
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintTableHead prints the first n rows of the enriched table, derived
// columns included
func PrintTableHead(w io.Writer, t *models.Table, n int) {
	rows := t.Head(n)
	cols := t.Columns()

	header := []string{""}
	for _, c := range cols {
		header = append(header, c.String())
	}

	title(w, fmt.Sprintf("Enriched head (%d rows)", len(rows)))
	table := newTable(w, header)
	for i, r := range rows {
		row := []string{strconv.Itoa(i)}
		for _, c := range cols {
			row = append(row, r.Value(c))
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintDescribe prints count, mean, std and quartiles of the numeric columns
func PrintDescribe(w io.Writer, t *models.Table) {
	var cols []models.Column
	for _, c := range models.InputColumns() {
		if c.Dtype() != models.DtypeObject {
			cols = append(cols, c)
		}
	}

	header := []string{""}
	summaries := make([]stats.Summary, len(cols))
	for i, c := range cols {
		header = append(header, c.String())
		summaries[i] = stats.Describe(t.Floats(c))
	}

	title(w, "Describe")
	table := newTable(w, header)
	rows := []struct {
		name string
		get  func(stats.Summary) float64
	}{
		{"count", func(s stats.Summary) float64 { return float64(s.Count) }},
		{"mean", func(s stats.Summary) float64 { return s.Mean }},
		{"std", func(s stats.Summary) float64 { return s.Std }},
		{"min", func(s stats.Summary) float64 { return s.Min }},
		{"25%", func(s stats.Summary) float64 { return s.Q1 }},
		{"50%", func(s stats.Summary) float64 { return s.Median }},
		{"75%", func(s stats.Summary) float64 { return s.Q3 }},
		{"max", func(s stats.Summary) float64 { return s.Max }},
	}
	for _, r := range rows {
		line := []string{r.name}
		for _, s := range summaries {
			line = append(line, strconv.FormatFloat(r.get(s), 'f', 6, 64))
		}
		table.Append(line)
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintMissing prints the number of missing cells per column of the
// enriched table
func PrintMissing(w io.Writer, t *models.Table) {
	counts := t.MissingCounts()

	title(w, "Missing values")
	table := newTable(w, []string{"column", "missing"})
	for _, c := range t.Columns() {
		table.Append([]string{c.String(), strconv.Itoa(counts[c])})
	}
	table.Render()
	fmt.Fprintln(w)
}

func formatElem(s series.Series, i int) string {
	e := s.Elem(i)
	if e.IsNA() {
		return "NaN"
	}
	if s.Type() == series.Float {
		return strconv.FormatFloat(e.Float(), 'f', -1, 64)
	}
	return e.String()
}

func dtypeName(t series.Type) string {
	switch t {
	case series.Int:
		return string(models.DtypeInt64)
	case series.Float:
		return string(models.DtypeFloat64)
	case series.Bool:
		return "bool"
	default:
		return string(models.DtypeObject)
	}
}
