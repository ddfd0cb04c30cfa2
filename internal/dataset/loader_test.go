package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jengzang/bikeshare-eda/internal/database/dbtest"
	"github.com/jengzang/bikeshare-eda/internal/models"
)

const header = "datetime,season,holiday,workingday,weather,temp,atemp,humidity,windspeed,casual,registered,count"

const fixtureCSV = header + `
2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13,16
2011-06-15 13:00:00,2,1,0,2,28.7,32.575,48,15.0013,80,200,280
2011-06-15 14:00:00,2,0,1,3,29.52,,45,19.0012,,180,
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "bike.csv", "\uFEFF"+fixtureCSV)

	res, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, path, res.Source)
	require.Len(t, res.Records, 3)
	rows, cols := res.Frame.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 12, cols)

	first := res.Records[0]
	assert.Equal(t, "2011-01-01 00:00:00", first.Datetime)
	assert.Equal(t, 1, first.Season)
	assert.InDelta(t, 9.84, first.Temp, 1e-9)
	assert.Equal(t, 16, first.Count)
	assert.Zero(t, first.Missing.Len())

	second := res.Records[1]
	assert.Equal(t, 1, second.Holiday)
	assert.InDelta(t, 15.0013, second.WindSpeed, 1e-9)

	third := res.Records[2]
	assert.True(t, third.IsMissing(models.ColATemp))
	assert.True(t, third.IsMissing(models.ColCasual))
	assert.True(t, third.IsMissing(models.ColCount))
	assert.False(t, third.IsMissing(models.ColRegistered))
	assert.Equal(t, 3, third.Missing.Len())
}

func TestLoadNaNTokens(t *testing.T) {
	csv := header + "\n2011-01-01 00:00:00,NA,null,0,nan,9.84,14.395,81,0,3,13,16\n"
	res, err := Load(context.Background(), writeFile(t, "bike.csv", csv), Options{})
	require.NoError(t, err)

	r := res.Records[0]
	assert.True(t, r.IsMissing(models.ColSeason))
	assert.True(t, r.IsMissing(models.ColHoliday))
	assert.True(t, r.IsMissing(models.ColWeather))
	assert.False(t, r.IsMissing(models.ColWorkingDay))
}

func TestLoadShortRowPadded(t *testing.T) {
	csv := header + "\n2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13\n2011-01-01 01:00:00,1,0,0,1,9.02,13.635,80,0,8,32,40\n"
	res, err := Load(context.Background(), writeFile(t, "bike.csv", csv), Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	short := res.Records[0]
	assert.True(t, short.IsMissing(models.ColCount))
	assert.Equal(t, 1, short.Missing.Len())
	assert.Equal(t, 13, short.Registered)
	assert.Equal(t, 40, res.Records[1].Count)
}

func TestLoadExtraColumnsIgnored(t *testing.T) {
	csv := "id," + header + "\n7,2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13,16\n"
	res, err := Load(context.Background(), writeFile(t, "bike.csv", csv), Options{})
	require.NoError(t, err)
	assert.Equal(t, 16, res.Records[0].Count)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{
			name:    "missing column",
			file:    "bike.csv",
			content: strings.Replace(header, ",count", "", 1) + "\n2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13\n",
			want:    ErrMissingColumn,
		},
		{
			name:    "malformed integer",
			file:    "bike.csv",
			content: header + "\n2011-01-01 00:00:00,one,0,0,1,9.84,14.395,81,0,3,13,16\n",
			want:    ErrMalformedValue,
		},
		{
			name:    "fractional count",
			file:    "bike.csv",
			content: header + "\n2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13,16.5\n",
			want:    ErrMalformedValue,
		},
		{
			name:    "malformed float",
			file:    "bike.csv",
			content: header + "\n2011-01-01 00:00:00,1,0,0,1,warm,14.395,81,0,3,13,16\n",
			want:    ErrMalformedValue,
		},
		{
			name:    "header only",
			file:    "bike.csv",
			content: header + "\n",
			want:    ErrEmptyDataset,
		},
		{
			name:    "unsupported extension",
			file:    "bike.parquet",
			content: "x",
			want:    ErrUnsupportedSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), writeFile(t, tt.file, tt.content), Options{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bike.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("hourly")
	require.NoError(t, err)
	rows := [][]interface{}{
		toRow(strings.Split(header, ",")),
		{"2011-01-01 00:00:00", 1, 0, 0, 1, 9.84, 14.395, 81, 0, 3, 13, 16},
		{"2011-01-01 01:00:00", 1, 0, 0, 1, 9.02, 13.635, 80, 0, 8, 32},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("hourly", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := Load(context.Background(), path, Options{Sheet: "hourly"})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.InDelta(t, 9.84, res.Records[0].Temp, 1e-9)
	assert.Equal(t, 16, res.Records[0].Count)
	assert.True(t, res.Records[1].IsMissing(models.ColCount), "trailing empty cell")

	// Sheet1 exists but is empty
	_, err = Load(context.Background(), path, Options{})
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestLoadSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bike.db")

	dbtest.Create(t, path,
		`CREATE TABLE bike (
			datetime TEXT, season INTEGER, holiday INTEGER, workingday INTEGER,
			weather INTEGER, temp REAL, atemp REAL, humidity REAL, windspeed REAL,
			casual INTEGER, registered INTEGER, count INTEGER)`,
		`INSERT INTO bike VALUES
			('2011-01-01 00:00:00', 1, 0, 0, 1, 9.84, 14.395, 81, 0, 3, 13, 16),
			('2011-01-01 01:00:00', 1, 0, 0, NULL, 9.02, 13.635, 80, 0, 8, 32, 40)`)

	res, err := Load(ctx, path, Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "2011-01-01 00:00:00", res.Records[0].Datetime)
	assert.InDelta(t, 81, res.Records[0].Humidity, 1e-9)
	assert.Equal(t, 40, res.Records[1].Count)
	assert.True(t, res.Records[1].IsMissing(models.ColWeather))

	_, err = Load(ctx, path, Options{Table: "other"})
	assert.Error(t, err)
}

func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
