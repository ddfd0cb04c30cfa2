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

// noHue marks an ungrouped point plot
const noHue models.Column = -1

type pointPlot struct {
	title  string
	x, y   models.Column
	hue    models.Column
	height float64 // inches; width is height * 1.5
}

// SeasonHour plots mean count per hour, one line per season
func SeasonHour(t *models.Table, _ Options) (*Figure, error) {
	return pointPlot{
		title: "Count by hour of the day across seasons",
		x:     models.ColHour, y: models.ColCount, hue: models.ColSeasonLabel,
		height: 15,
	}.render(t)
}

// WeatherDay plots mean count per date, one line per weather label
func WeatherDay(t *models.Table, _ Options) (*Figure, error) {
	return pointPlot{
		title: "Count by date across weather",
		x:     models.ColDate, y: models.ColCount, hue: models.ColWeatherLabel,
		height: 10,
	}.render(t)
}

// WeekdayHour plots mean count per hour, one line per weekday
func WeekdayHour(t *models.Table, _ Options) (*Figure, error) {
	return pointPlot{
		title: "Count by hour of the day across weekdays",
		x:     models.ColHour, y: models.ColCount, hue: models.ColWeekday,
		height: 10,
	}.render(t)
}

// MonthRegistered plots mean registered users per month
func MonthRegistered(t *models.Table, _ Options) (*Figure, error) {
	return pointPlot{
		title: "Registered users by month",
		x:     models.ColMonth, y: models.ColRegistered, hue: noHue,
		height: 10,
	}.render(t)
}

// HourRegistered plots mean registered users per hour
func HourRegistered(t *models.Table, _ Options) (*Figure, error) {
	return pointPlot{
		title: "Registered users by hour of the day",
		x:     models.ColHour, y: models.ColRegistered, hue: noHue,
		height: 10,
	}.render(t)
}

func (pp pointPlot) render(t *models.Table) (*Figure, error) {
	xs := Categories(t, pp.x)
	xLevels := Levels(pp.x, xs)
	if len(xLevels) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, pp.x)
	}
	xIndex := indexOf(xLevels)

	var hues, hueLevels []string
	if pp.hue != noHue {
		hues = Categories(t, pp.hue)
		hueLevels = Levels(pp.hue, hues)
	} else {
		hueLevels = []string{""}
	}

	means := stats.GroupMean(xs, hues, t.Floats(pp.y))

	p := plot.New()
	p.Title.Text = pp.title
	p.X.Label.Text = pp.x.String()
	p.Y.Label.Text = pp.y.String()
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	drawn := 0
	for k, hue := range hueLevels {
		pts := make(plotter.XYs, 0, len(xLevels))
		for _, x := range xLevels {
			if m, ok := means[stats.GroupKey{X: x, Hue: hue}]; ok {
				pts = append(pts, plotter.XY{X: float64(xIndex[x]), Y: m})
			}
		}
		if len(pts) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s line: %w", hue, err)
		}
		line.Color = plotutil.Color(k)
		line.Width = vg.Points(1.5)
		points.Color = plotutil.Color(k)
		points.Shape = plotutil.Shape(5)
		points.Radius = vg.Points(3)

		p.Add(line, points)
		if pp.hue != noHue {
			p.Legend.Add(hue, line, points)
		}
		drawn++
	}
	if drawn == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, pp.y)
	}

	p.NominalX(xLevels...)
	return single(p, pp.height*1.5, pp.height), nil
}
