package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/jengzang/bikeshare-eda/internal/models"
	"github.com/jengzang/bikeshare-eda/internal/stats"
)

// BoxPlots draws count by season and count by hour side by side
func BoxPlots(t *models.Table, _ Options) (*Figure, error) {
	season, err := boxPlot(t, models.ColSeason, "Box Plot On Count Across Season", "Season")
	if err != nil {
		return nil, err
	}
	hour, err := boxPlot(t, models.ColHour, "Box Plot On Count Across Hour Of The Day", "Hour Of The Day")
	if err != nil {
		return nil, err
	}

	return &Figure{
		Width:  14 * vg.Inch,
		Height: 5 * vg.Inch,
		Plots:  [][]*plot.Plot{{season, hour}},
	}, nil
}

func boxPlot(t *models.Table, x models.Column, title, xLabel string) (*plot.Plot, error) {
	xs := Categories(t, x)
	xLevels := Levels(x, xs)
	if len(xLevels) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, x)
	}
	groups := stats.GroupValues(xs, t.Floats(models.ColCount))

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Count"

	width := vg.Points(40)
	if len(xLevels) > 8 {
		width = vg.Points(14)
	}

	drawn := 0
	for i, level := range xLevels {
		if len(groups[level]) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(width, float64(i), plotter.Values(groups[level]))
		if err != nil {
			return nil, fmt.Errorf("failed to build box for %s=%s: %w", x, level, err)
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
		drawn++
	}
	if drawn == 0 {
		return nil, fmt.Errorf("%w: count", ErrNoData)
	}
	p.NominalX(xLevels...)
	return p, nil
}
