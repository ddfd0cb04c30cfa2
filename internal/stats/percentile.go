package stats

import (
	"math"
	"sort"
)

// FiveNumberSummary returns the five-number summary (min, Q1, median, Q3, max),
// ignoring NaN. All results are NaN for an empty input.
func FiveNumberSummary(values []float64) (min, q1, median, q3, max float64) {
	sorted := DropNaN(values)
	if len(sorted) == 0 {
		nan := math.NaN()
		return nan, nan, nan, nan, nan
	}
	sort.Float64s(sorted)

	min = sorted[0]
	max = sorted[len(sorted)-1]
	q1 = quantileSorted(sorted, 0.25)
	median = quantileSorted(sorted, 0.5)
	q3 = quantileSorted(sorted, 0.75)

	return
}

// OutliersBounds calculates the lower and upper bounds for outliers using IQR method
// Outliers are values < Q1 - 1.5*IQR or > Q3 + 1.5*IQR
func OutliersBounds(values []float64) (lowerBound, upperBound float64) {
	_, q1, _, q3, _ := FiveNumberSummary(values)
	iqr := q3 - q1

	lowerBound = q1 - 1.5*iqr
	upperBound = q3 + 1.5*iqr

	return
}

// CountOutliers counts the values outside the IQR fences
func CountOutliers(values []float64) int {
	lowerBound, upperBound := OutliersBounds(values)

	n := 0
	for _, v := range values {
		if v < lowerBound || v > upperBound {
			n++
		}
	}
	return n
}
