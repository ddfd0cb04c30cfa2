package service

import (
	"fmt"

	"github.com/jengzang/bikeshare-eda/internal/charts"
	"github.com/jengzang/bikeshare-eda/internal/models"
	"github.com/jengzang/bikeshare-eda/internal/stats"
)

// boxGroupings are the columns count can be grouped by
var boxGroupings = map[string]models.Column{
	"season":  models.ColSeason,
	"hour":    models.ColHour,
	"weekday": models.ColWeekday,
	"month":   models.ColMonth,
	"weather": models.ColWeather,
	"holiday": models.ColHoliday,
}

// StatsService handles descriptive statistics of the enriched table
type StatsService struct {
	table *models.Table
}

// NewStatsService creates a new stats service
func NewStatsService(table *models.Table) *StatsService {
	return &StatsService{table: table}
}

// Correlation returns the correlation matrix drawn by the correlation chart
func (s *StatsService) Correlation() *models.Correlation {
	m := charts.CorrelationMatrix(s.table)
	out := &models.Correlation{
		Names:  m.Names,
		Values: make([][]models.JSONFloat, len(m.Values)),
	}
	for i, row := range m.Values {
		out.Values[i] = make([]models.JSONFloat, len(row))
		for j, v := range row {
			out.Values[i][j] = models.JSONFloat(v)
		}
	}
	return out
}

// Describe summarizes every numeric input column
func (s *StatsService) Describe() []models.ColumnStats {
	var out []models.ColumnStats
	for _, c := range models.InputColumns() {
		if c.Dtype() == models.DtypeObject {
			continue
		}
		d := stats.Describe(s.table.Floats(c))
		out = append(out, models.ColumnStats{
			Column: c.String(),
			Count:  d.Count,
			Mean:   models.JSONFloat(d.Mean),
			Std:    models.JSONFloat(d.Std),
			Min:    models.JSONFloat(d.Min),
			Q1:     models.JSONFloat(d.Q1),
			Median: models.JSONFloat(d.Median),
			Q3:     models.JSONFloat(d.Q3),
			Max:    models.JSONFloat(d.Max),
		})
	}
	return out
}

// Box returns the box plot statistics of count grouped by the named column
func (s *StatsService) Box(by string) ([]models.BoxStats, error) {
	col, ok := boxGroupings[by]
	if !ok {
		return nil, fmt.Errorf("%w: cannot group by %q", ErrInvalidArgument, by)
	}

	xs := charts.Categories(s.table, col)
	groups := stats.GroupValues(xs, s.table.Floats(models.ColCount))

	var out []models.BoxStats
	for _, level := range charts.Levels(col, xs) {
		values := groups[level]
		if len(values) == 0 {
			continue
		}
		min, q1, median, q3, max := stats.FiveNumberSummary(values)
		lower, upper := stats.OutliersBounds(values)
		out = append(out, models.BoxStats{
			Category: level,
			N:        len(values),
			Min:      models.JSONFloat(min),
			Q1:       models.JSONFloat(q1),
			Median:   models.JSONFloat(median),
			Q3:       models.JSONFloat(q3),
			Max:      models.JSONFloat(max),
			Lower:    models.JSONFloat(lower),
			Upper:    models.JSONFloat(upper),
			Outliers: stats.CountOutliers(values),
		})
	}
	return out, nil
}
