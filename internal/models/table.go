package models

import "math"

// Table is the enriched record table. It is built once by the feature
// deriver and only read afterwards.
type Table struct {
	Source string
	Rows   []EnrichedRecord
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Columns returns the table's columns in order
func (t *Table) Columns() []Column {
	return AllColumns()
}

// Floats extracts a numeric column; missing cells become NaN
func (t *Table) Floats(c Column) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		v, ok := r.Float(c)
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// Head returns at most n leading rows
func (t *Table) Head(n int) []EnrichedRecord {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// MissingCounts returns the number of missing cells per column
func (t *Table) MissingCounts() map[Column]int {
	counts := make(map[Column]int)
	for _, r := range t.Rows {
		for _, c := range AllColumns() {
			if r.IsMissing(c) {
				counts[c]++
			}
		}
	}
	return counts
}
