// Package dataset loads the hourly bike-sharing observations from csv, xlsx
// or sqlite sources into typed records.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/jengzang/bikeshare-eda/internal/models"
)

// DefaultTable is the sqlite table read when none is configured
const DefaultTable = "bike"

var (
	ErrMissingColumn     = errors.New("missing required column")
	ErrMalformedValue    = errors.New("malformed value")
	ErrUnsupportedSource = errors.New("unsupported data source")
	ErrEmptyDataset      = errors.New("dataset has no rows")
)

// nanTokens are read as missing values
var nanTokens = []string{"", "NA", "NaN", "nan", "null", "NULL", "<nil>"}

// Options selects the part of a source to read
type Options struct {
	Sheet string // xlsx sheet, first sheet when empty
	Table string // sqlite table, DefaultTable when empty
}

// LoadResult is a loaded dataset
type LoadResult struct {
	Source  string
	Records []models.Record
	// Frame is the raw typed frame, kept for diagnostics
	Frame dataframe.DataFrame
}

// Load reads the dataset at path and converts it to typed records
func Load(ctx context.Context, path string, opts Options) (*LoadResult, error) {
	start := time.Now()

	raw, err := ReadRecords(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := FromRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res.Source = path

	rows, cols := res.Frame.Dims()
	slog.Info("Dataset loaded",
		slog.String("path", path),
		slog.Int("rows", rows),
		slog.Int("columns", cols),
		slog.Duration("elapsed", time.Since(start)))
	return res, nil
}

// FromRecords builds a LoadResult from a header row followed by data rows
func FromRecords(raw [][]string) (*LoadResult, error) {
	if len(raw) < 2 {
		return nil, ErrEmptyDataset
	}
	raw = normalize(raw)

	if missing := missingColumns(raw[0]); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	frame := dataframe.LoadRecords(raw,
		dataframe.HasHeader(true),
		dataframe.NaNValues(nanTokens),
		dataframe.WithTypes(columnTypes()),
	)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to build frame: %w", frame.Err)
	}

	records, err := toRecords(frame, raw)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Records: records, Frame: frame}, nil
}

// normalize trims cells and pads short rows to the header width
func normalize(raw [][]string) [][]string {
	width := len(raw[0])
	out := make([][]string, len(raw))
	for i, row := range raw {
		cells := make([]string, width)
		for j := 0; j < width && j < len(row); j++ {
			cells[j] = strings.TrimSpace(row[j])
		}
		out[i] = cells
	}
	return out
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range models.InputColumns() {
		if !present[c.String()] {
			missing = append(missing, c.String())
		}
	}
	return missing
}

func columnTypes() map[string]series.Type {
	types := make(map[string]series.Type)
	for _, c := range models.InputColumns() {
		switch c.Dtype() {
		case models.DtypeInt64:
			types[c.String()] = series.Int
		case models.DtypeFloat64:
			types[c.String()] = series.Float
		default:
			types[c.String()] = series.String
		}
	}
	return types
}

func isNaNToken(s string) bool {
	for _, t := range nanTokens {
		if s == t {
			return true
		}
	}
	return false
}

func toRecords(frame dataframe.DataFrame, raw [][]string) ([]models.Record, error) {
	nrows, _ := frame.Dims()
	records := make([]models.Record, nrows)

	headerIndex := make(map[string]int, len(raw[0]))
	for i, h := range raw[0] {
		if _, dup := headerIndex[h]; !dup {
			headerIndex[h] = i
		}
	}

	for _, c := range models.InputColumns() {
		col := frame.Col(c.String())
		if col.Err != nil {
			return nil, fmt.Errorf("column %s: %w", c, col.Err)
		}
		idx := headerIndex[c.String()]

		for i := 0; i < nrows; i++ {
			rec := &records[i]
			elem := col.Elem(i)
			cell := raw[i+1][idx]

			if elem.IsNA() {
				if !isNaNToken(cell) {
					return nil, fmt.Errorf("row %d: %w: %s=%q", i, ErrMalformedValue, c, cell)
				}
				if c != models.ColDatetime {
					rec.Missing.Add(c)
				}
				continue
			}

			if err := setField(rec, c, elem); err != nil {
				return nil, fmt.Errorf("row %d: %w: %s=%q", i, ErrMalformedValue, c, cell)
			}
		}
	}
	return records, nil
}

func setField(r *models.Record, c models.Column, e series.Element) error {
	if c == models.ColDatetime {
		r.Datetime = e.String()
		return nil
	}
	if c.Dtype() == models.DtypeFloat64 {
		v := e.Float()
		switch c {
		case models.ColTemp:
			r.Temp = v
		case models.ColATemp:
			r.ATemp = v
		case models.ColHumidity:
			r.Humidity = v
		case models.ColWindSpeed:
			r.WindSpeed = v
		}
		return nil
	}

	v, err := e.Int()
	if err != nil {
		return err
	}
	switch c {
	case models.ColSeason:
		r.Season = v
	case models.ColHoliday:
		r.Holiday = v
	case models.ColWorkingDay:
		r.WorkingDay = v
	case models.ColWeather:
		r.Weather = v
	case models.ColCasual:
		r.Casual = v
	case models.ColRegistered:
		r.Registered = v
	case models.ColCount:
		r.Count = v
	}
	return nil
}
