// Package features derives the calendar and label columns of the record table.
package features

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jengzang/bikeshare-eda/internal/models"
)

const dateLayout = "2006-01-02"

// Options controls label derivation
type Options struct {
	// StrictLabels makes an unmapped season/weather/holiday code abort the
	// derivation instead of producing a null label.
	StrictLabels bool
	Logger       *slog.Logger
}

// SplitTimestamp splits "<date> <time>" into the date part and the hour
// component of the time part.
func SplitTimestamp(ts string) (date, hour string, err error) {
	parts := strings.Fields(ts)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}
	hour, _, _ = strings.Cut(parts[1], ":")
	if hour == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}
	return parts[0], hour, nil
}

// CalendarNames returns the English weekday and month names of a YYYY-MM-DD date
func CalendarNames(date string) (weekday, month string, err error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrMalformedDate, date, err)
	}
	return t.Weekday().String(), t.Month().String(), nil
}

// Derive builds the enriched table from raw records. The row count is
// preserved; the first malformed row aborts the whole derivation.
func Derive(records []models.Record, opts Options) (*models.Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rows := make([]models.EnrichedRecord, len(records))
	unmapped := make(map[models.Column]int)

	for i, r := range records {
		e := models.EnrichedRecord{Record: r}

		date, hour, err := SplitTimestamp(r.Datetime)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		weekday, month, err := CalendarNames(date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		e.Date, e.Hour, e.Weekday, e.Month = date, hour, weekday, month

		labels := []struct {
			src   models.Column
			dst   models.Column
			code  int
			label func() (string, bool)
			out   *string
		}{
			{models.ColSeason, models.ColSeasonLabel, r.Season, r.SeasonLabel, &e.SeasonLabel},
			{models.ColWeather, models.ColWeatherLabel, r.Weather, r.WeatherLabel, &e.WeatherLabel},
			{models.ColHoliday, models.ColHolidayMap, r.Holiday, r.HolidayLabel, &e.HolidayLabel},
		}
		for _, l := range labels {
			if v, ok := l.label(); ok {
				*l.out = v
				continue
			}
			if !r.IsMissing(l.src) {
				if opts.StrictLabels {
					return nil, fmt.Errorf("row %d: %w: %s=%d", i, ErrUnmappedCode, l.src, l.code)
				}
				unmapped[l.src]++
			}
			e.Missing.Add(l.dst)
		}

		rows[i] = e
	}

	for col, n := range unmapped {
		logger.Warn("Codes without a label left empty",
			slog.String("column", col.String()),
			slog.Int("rows", n))
	}
	logger.Debug("Derived feature columns", slog.Int("rows", len(rows)))

	return &models.Table{Rows: rows}, nil
}
