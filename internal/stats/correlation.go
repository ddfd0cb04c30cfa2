package stats

import "math"

// PearsonCorrelation calculates the Pearson correlation coefficient between
// two variables over the pairs where both values are present.
// Returns NaN with fewer than two complete pairs or zero variance.
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) {
		return math.NaN()
	}

	var xs, ys []float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}

	meanX := Mean(xs)
	meanY := Mean(ys)

	var sumXY, sumX2, sumY2 float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sumXY += dx * dy
		sumX2 += dx * dx
		sumY2 += dy * dy
	}

	if sumX2 == 0 || sumY2 == 0 {
		return math.NaN()
	}

	return sumXY / math.Sqrt(sumX2*sumY2)
}

// Matrix is a square correlation matrix with named rows and columns
type Matrix struct {
	Names  []string    `json:"names"`
	Values [][]float64 `json:"values"`
}

// CorrelationMatrix computes pairwise Pearson correlations between columns.
// columns[i] holds the values named names[i]; all columns have equal length.
func CorrelationMatrix(names []string, columns [][]float64) Matrix {
	n := len(columns)
	m := Matrix{
		Names:  append([]string(nil), names...),
		Values: make([][]float64, n),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := PearsonCorrelation(columns[i], columns[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}
