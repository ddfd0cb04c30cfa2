package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/jengzang/bikeshare-eda/internal/features"
	"github.com/jengzang/bikeshare-eda/internal/models"
	"github.com/jengzang/bikeshare-eda/internal/stats"
)

const (
	facetHeight = 5.0 // inches per humidity band
	facetAspect = 2.0
)

// HumidityTempCount draws mean count per temperature band, one facet row per
// humidity band, bars colored by holiday label
func HumidityTempCount(t *models.Table, opts Options) (*Figure, error) {
	if opts.Bins < 1 {
		opts.Bins = DefaultOptions().Bins
	}

	humidity, err := features.Cut(t.Floats(models.ColHumidity), opts.Bins)
	if err != nil {
		return nil, fmt.Errorf("humidity bands: %w", err)
	}
	temp, err := features.Cut(t.Floats(models.ColTemp), opts.Bins)
	if err != nil {
		return nil, fmt.Errorf("temp bands: %w", err)
	}

	holidays := Categories(t, models.ColHolidayMap)
	hueLevels := Levels(models.ColHolidayMap, holidays)
	counts := t.Floats(models.ColCount)

	tempBands := make([]string, t.Len())
	for i := range tempBands {
		tempBands[i] = temp.LabelOf(i)
	}

	barWidth := vg.Points(24)
	plots := make([][]*plot.Plot, humidity.Len())
	inLegend := make(map[string]bool)
	var legend *plot.Legend

	for band := 0; band < humidity.Len(); band++ {
		// Restrict the grouping to rows of this humidity band
		xs := make([]string, t.Len())
		for i, b := range humidity.Index {
			if b == band {
				xs[i] = tempBands[i]
			}
		}
		means := stats.GroupMean(xs, holidays, counts)

		p := plot.New()
		p.Title.Text = "humidity_band = " + humidity.Labels[band]
		p.X.Label.Text = "temp_band"
		p.Y.Label.Text = "count"
		p.Y.Min = 0
		p.Add(plotter.NewGrid())
		if legend == nil {
			legend = &p.Legend
		}

		for k, hue := range hueLevels {
			bars, err := hueBars(means, temp.Labels, hue, k, len(hueLevels), barWidth)
			if err != nil {
				return nil, err
			}
			for _, b := range bars {
				p.Add(b)
			}
			if len(bars) > 0 && !inLegend[hue] {
				inLegend[hue] = true
				legend.Add(hue, bars[0])
			}
		}
		p.Legend.Top = true
		p.NominalX(temp.Labels...)

		plots[band] = []*plot.Plot{p}
	}

	return &Figure{
		Width:  vg.Length(facetHeight*facetAspect) * vg.Inch,
		Height: vg.Length(facetHeight*float64(humidity.Len())) * vg.Inch,
		Plots:  plots,
	}, nil
}

// hueBars builds one bar per temperature band that has rows for hue.
// Bands without rows are left empty.
func hueBars(means map[stats.GroupKey]float64, xLabels []string, hue string, k, nHues int, width vg.Length) ([]*plotter.BarChart, error) {
	var bars []*plotter.BarChart
	for j, x := range xLabels {
		mean, ok := means[stats.GroupKey{X: x, Hue: hue}]
		if !ok {
			continue
		}
		b, err := plotter.NewBarChart(plotter.Values{mean}, width)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s bars: %w", hue, err)
		}
		b.XMin = float64(j)
		b.Color = plotutil.Color(k)
		b.LineStyle.Width = 0
		b.Offset = vg.Length(float64(k)-float64(nHues-1)/2) * width
		bars = append(bars, b)
	}
	return bars, nil
}
