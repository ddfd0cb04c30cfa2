package features

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Bins is an equal-width partition of a numeric range.
// Interval i is (Edges[i], Edges[i+1]], except the first which also
// includes Edges[0].
type Bins struct {
	Edges  []float64
	Index  []int // bin of each input value, -1 when the value is NaN
	Labels []string
}

// Cut partitions the observed range of values into n equal-width bins and
// assigns each value to its bin. NaN values are ignored when computing the range.
func Cut(values []float64, n int) (Bins, error) {
	if n < 1 {
		return Bins{}, fmt.Errorf("%w: %d", ErrInvalidBinCount, n)
	}

	mn, mx := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		mn = math.Min(mn, v)
		mx = math.Max(mx, v)
	}
	if math.IsInf(mn, 1) {
		return Bins{}, ErrEmptyRange
	}

	if mn == mx {
		// widen a degenerate range so the single value sits inside it
		if mn != 0 {
			mn -= 0.001 * math.Abs(mn)
			mx += 0.001 * math.Abs(mx)
		} else {
			mn, mx = -0.001, 0.001
		}
	}

	width := (mx - mn) / float64(n)
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = mn + float64(i)*width
	}
	edges[n] = mx

	b := Bins{
		Edges:  edges,
		Index:  make([]int, len(values)),
		Labels: make([]string, n),
	}
	for i := 0; i < n; i++ {
		open := "("
		if i == 0 {
			open = "["
		}
		b.Labels[i] = open + formatEdge(edges[i]) + ", " + formatEdge(edges[i+1]) + "]"
	}
	for i, v := range values {
		b.Index[i] = b.Locate(v)
	}
	return b, nil
}

// Len returns the number of bins
func (b Bins) Len() int {
	return len(b.Labels)
}

// Locate returns the bin containing v, or -1 when v is NaN or out of range
func (b Bins) Locate(v float64) int {
	n := len(b.Edges) - 1
	if n < 1 || math.IsNaN(v) || v < b.Edges[0] || v > b.Edges[n] {
		return -1
	}
	// first upper edge >= v
	i := sort.SearchFloat64s(b.Edges[1:], v)
	if i >= n {
		i = n - 1
	}
	return i
}

// LabelOf returns the interval label of the i-th input value, or "" for NaN
func (b Bins) LabelOf(i int) string {
	if i < 0 || i >= len(b.Index) || b.Index[i] < 0 {
		return ""
	}
	return b.Labels[b.Index[i]]
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
