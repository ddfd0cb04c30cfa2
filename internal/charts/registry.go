// Package charts renders the descriptive figures of the enriched table.
package charts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jengzang/bikeshare-eda/internal/models"
)

var (
	ErrUnknownChart      = errors.New("unknown chart")
	ErrUnsupportedFormat = errors.New("unsupported chart format")
	ErrNoData            = errors.New("no data to plot")
)

// Options tunes producers that need more than the table
type Options struct {
	// Bins is the number of humidity and temperature bands
	Bins int
}

// DefaultOptions matches the six bands of the humidity/temperature chart
func DefaultOptions() Options {
	return Options{Bins: 6}
}

// Producer builds one figure from the enriched table
type Producer func(t *models.Table, opts Options) (*Figure, error)

// Chart is a named producer
type Chart struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Produce Producer `json:"-"`
}

// Registry holds charts in registration order
type Registry struct {
	charts []Chart
	byName map[string]int
}

// NewRegistry creates a registry of the given charts
func NewRegistry(charts ...Chart) *Registry {
	r := &Registry{byName: make(map[string]int)}
	for _, c := range charts {
		r.Register(c)
	}
	return r
}

// Register adds c, replacing a chart of the same name
func (r *Registry) Register(c Chart) {
	if i, ok := r.byName[c.Name]; ok {
		r.charts[i] = c
		return
	}
	r.byName[c.Name] = len(r.charts)
	r.charts = append(r.charts, c)
}

// Names returns chart names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.charts))
	for i, c := range r.charts {
		names[i] = c.Name
	}
	return names
}

// Charts returns every registered chart
func (r *Registry) Charts() []Chart {
	return append([]Chart(nil), r.charts...)
}

// Lookup finds a chart by name
func (r *Registry) Lookup(name string) (Chart, error) {
	i, ok := r.byName[name]
	if !ok {
		return Chart{}, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	return r.charts[i], nil
}

// Render produces the named chart and writes it to w
func (r *Registry) Render(ctx context.Context, w io.Writer, name string, t *models.Table, format string, opts Options) error {
	chart, err := r.Lookup(name)
	if err != nil {
		return err
	}
	if err := CheckFormat(format); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.Len() == 0 {
		return fmt.Errorf("chart %s: %w", name, ErrNoData)
	}

	start := time.Now()
	fig, err := chart.Produce(t, opts)
	if err != nil {
		return fmt.Errorf("chart %s: %w", name, err)
	}
	if err := fig.Encode(w, format); err != nil {
		return fmt.Errorf("chart %s: %w", name, err)
	}

	slog.DebugContext(ctx, "Chart rendered",
		slog.String("chart", name),
		slog.String("format", format),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// DefaultRegistry returns the nine descriptive charts
func DefaultRegistry() *Registry {
	return NewRegistry(
		Chart{Name: "season_hour", Title: "Count by hour per season", Produce: SeasonHour},
		Chart{Name: "weather_day", Title: "Count by date per weather", Produce: WeatherDay},
		Chart{Name: "weekday_hour", Title: "Count by hour per weekday", Produce: WeekdayHour},
		Chart{Name: "month_registered", Title: "Registered users by month", Produce: MonthRegistered},
		Chart{Name: "hour_registered", Title: "Registered users by hour", Produce: HourRegistered},
		Chart{Name: "humidity_temp_count", Title: "Count by temperature and humidity band", Produce: HumidityTempCount},
		Chart{Name: "boxplot", Title: "Count across season and hour", Produce: BoxPlots},
		Chart{Name: "correlation", Title: "Correlation of numeric columns", Produce: Correlation},
		Chart{Name: "missing", Title: "Missing values", Produce: MissingMatrix},
	)
}
