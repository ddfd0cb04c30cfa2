package stats

import "math"

// GroupKey identifies one (x, hue) cell of a grouped aggregate.
// Hue is empty for ungrouped data.
type GroupKey struct {
	X   string
	Hue string
}

// GroupMean averages y per (x, hue) key. Rows with an empty x, an empty hue
// (when grouped), or a NaN y are skipped.
func GroupMean(xs, hues []string, ys []float64) map[GroupKey]float64 {
	sums := make(map[GroupKey]float64)
	counts := make(map[GroupKey]int)

	for i, y := range ys {
		if math.IsNaN(y) || i >= len(xs) || xs[i] == "" {
			continue
		}
		key := GroupKey{X: xs[i]}
		if hues != nil {
			if i >= len(hues) || hues[i] == "" {
				continue
			}
			key.Hue = hues[i]
		}
		sums[key] += y
		counts[key]++
	}

	means := make(map[GroupKey]float64, len(sums))
	for k, s := range sums {
		means[k] = s / float64(counts[k])
	}
	return means
}

// GroupValues collects y per x, skipping empty x and NaN y
func GroupValues(xs []string, ys []float64) map[string][]float64 {
	out := make(map[string][]float64)
	for i, y := range ys {
		if math.IsNaN(y) || i >= len(xs) || xs[i] == "" {
			continue
		}
		out[xs[i]] = append(out[xs[i]], y)
	}
	return out
}
