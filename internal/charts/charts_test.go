package charts

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jengzang/bikeshare-eda/internal/dataset"
	"github.com/jengzang/bikeshare-eda/internal/features"
	"github.com/jengzang/bikeshare-eda/internal/models"
	"github.com/jengzang/bikeshare-eda/internal/stats"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func fixtureTable(t *testing.T) *models.Table {
	t.Helper()
	raw := [][]string{
		{"datetime", "season", "holiday", "workingday", "weather", "temp", "atemp", "humidity", "windspeed", "casual", "registered", "count"},
		{"2011-01-01 00:00:00", "1", "0", "0", "1", "9.84", "14.395", "81", "0", "3", "13", "16"},
		{"2011-01-01 01:00:00", "1", "0", "0", "1", "9.02", "13.635", "80", "0", "8", "32", "40"},
		{"2011-01-03 13:00:00", "1", "1", "0", "2", "12.3", "15.15", "45", "12.998", "20", "80", "100"},
		{"2011-05-02 05:00:00", "2", "0", "1", "2", "20.5", "24.24", "60", "7.0015", "", "40", "45"},
		{"2011-05-02 13:00:00", "2", "0", "1", "3", "26.24", "30.3", "39", "19.0012", "60", "150", "210"},
		{"2011-08-15 17:00:00", "3", "0", "1", "1", "32.8", "37.12", "30", "8.9981", "90", "400", "490"},
		{"2011-11-20 08:00:00", "4", "0", "0", "4", "13.12", "17.425", "93", "", "5", "60", "65"},
		{"2011-11-21 17:00:00", "4", "0", "1", "1", "14.76", "17.425", "50", "11.0014", "25", "380", "405"},
	}
	res, err := dataset.FromRecords(raw)
	require.NoError(t, err)
	table, err := features.Derive(res.Records, features.Options{})
	require.NoError(t, err)
	return table
}

func TestDefaultRegistryNames(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{
		"season_hour", "weather_day", "weekday_hour", "month_registered", "hour_registered",
		"humidity_temp_count", "boxplot", "correlation", "missing",
	}, r.Names())
	assert.Len(t, r.Charts(), 9)
}

func TestRenderEveryChartAsPNG(t *testing.T) {
	table := fixtureTable(t)
	r := DefaultRegistry()

	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := r.Render(context.Background(), &buf, name, table, "png", DefaultOptions())
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
		})
	}
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	err := DefaultRegistry().Render(context.Background(), &buf, "correlation", fixtureTable(t), "svg", DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderErrors(t *testing.T) {
	table := fixtureTable(t)
	r := DefaultRegistry()
	var buf bytes.Buffer

	err := r.Render(context.Background(), &buf, "pie", table, "png", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownChart)

	err = r.Render(context.Background(), &buf, "correlation", table, "bmp", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	err = r.Render(context.Background(), &buf, "correlation", &models.Table{}, "png", DefaultOptions())
	assert.ErrorIs(t, err, ErrNoData)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Render(ctx, &buf, "correlation", table, "png", DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderRejectsFormatBeforeProducing(t *testing.T) {
	calls := 0
	r := NewRegistry(Chart{Name: "counted", Produce: func(t *models.Table, opts Options) (*Figure, error) {
		calls++
		return Correlation(t, opts)
	}})

	var buf bytes.Buffer
	err := r.Render(context.Background(), &buf, "counted", fixtureTable(t), "bmp", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, calls)
	assert.Zero(t, buf.Len())

	require.NoError(t, CheckFormat("svg"))
	assert.ErrorIs(t, CheckFormat("gif"), ErrUnsupportedFormat)
}

func TestHueBarsLeaveEmptyBandsOut(t *testing.T) {
	means := map[stats.GroupKey]float64{
		{X: "a", Hue: "holiday"}:    10,
		{X: "c", Hue: "holiday"}:    0,
		{X: "b", Hue: "no holiday"}: 7,
	}

	bars, err := hueBars(means, []string{"a", "b", "c"}, "holiday", 0, 2, vg.Points(10))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 0.0, bars[0].XMin)
	assert.Equal(t, plotter.Values{10}, bars[0].Values)
	assert.Equal(t, 2.0, bars[1].XMin)
	assert.Equal(t, plotter.Values{0}, bars[1].Values)

	bars, err = hueBars(means, []string{"a", "b", "c"}, "weekend", 1, 2, vg.Points(10))
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry(Chart{Name: "a"}, Chart{Name: "b"})
	r.Register(Chart{Name: "a", Title: "again"})

	assert.Equal(t, []string{"a", "b"}, r.Names())
	c, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "again", c.Title)
}

func TestLevelsOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"February", "March", "December"},
		Levels(models.ColMonth, []string{"December", "", "March", "February", "March"}))

	assert.Equal(t,
		[]string{"Monday", "Saturday", "Sunday"},
		Levels(models.ColWeekday, []string{"Sunday", "Saturday", "Monday"}))

	assert.Equal(t,
		[]string{"Spring", "Fall", "Winter"},
		Levels(models.ColSeasonLabel, []string{"Winter", "Spring", "Fall"}))

	assert.Equal(t,
		[]string{"2", "10", "23"},
		Levels(models.ColHour, []string{"23", "10", "2"}))

	assert.Equal(t,
		[]string{"2011-01-01", "2011-01-03", "2012-01-01"},
		Levels(models.ColDate, []string{"2012-01-01", "2011-01-03", "2011-01-01"}))
}

func TestWeekdayNamesStartMonday(t *testing.T) {
	names := weekdayNames()
	require.Len(t, names, 7)
	assert.Equal(t, "Monday", names[0])
	assert.Equal(t, "Sunday", names[6])
}

func TestLowerTriangleMasksUpperHalf(t *testing.T) {
	g := lowerTriangle{
		{1, 0.5, 0.2},
		{0.5, 1, -0.3},
		{0.2, -0.3, 1},
	}
	// r = 2 is the first matrix row
	assert.Equal(t, 1.0, g.Z(0, 2))
	assert.True(t, math.IsNaN(g.Z(1, 2)))
	assert.True(t, math.IsNaN(g.Z(2, 2)))
	// last matrix row is fully shown
	assert.Equal(t, 0.2, g.Z(0, 0))
	assert.Equal(t, -0.3, g.Z(1, 0))
	assert.Equal(t, 1.0, g.Z(2, 0))
}

func TestCorrelationMatrixColumns(t *testing.T) {
	m := CorrelationMatrix(fixtureTable(t))
	assert.Equal(t, []string{"count", "temp", "atemp", "humidity", "windspeed", "casual", "registered"}, m.Names)
	for i := range m.Names {
		assert.Equal(t, 1.0, m.Values[i][i])
	}
	assert.Greater(t, m.Values[0][6], 0.9, "count follows registered")
}

func TestMissingGrid(t *testing.T) {
	table := fixtureTable(t)
	g := missingGrid{t: table, cols: table.Columns()}

	c, r := g.Dims()
	assert.Equal(t, 19, c)
	assert.Equal(t, 8, r)

	// casual of the fourth row is missing; row index 3 sits at y = 8-1-3
	assert.Equal(t, 1.0, g.Z(int(models.ColCasual), 4))
	assert.Equal(t, 0.0, g.Z(int(models.ColCount), 4))
	// windspeed of the seventh row
	assert.Equal(t, 1.0, g.Z(int(models.ColWindSpeed), 1))
}
