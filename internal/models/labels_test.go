package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeasonLabel(t *testing.T) {
	cases := []struct {
		code  Season
		label string
		ok    bool
	}{
		{1, "Spring", true},
		{2, "Summer", true},
		{3, "Fall", true},
		{4, "Winter", true},
		{0, "", false},
		{5, "", false},
		{-1, "", false},
	}
	for _, tc := range cases {
		label, ok := tc.code.Label()
		assert.Equal(t, tc.label, label, "season %d", tc.code)
		assert.Equal(t, tc.ok, ok, "season %d", tc.code)
	}
}

func TestWeatherLabel(t *testing.T) {
	expected := map[Weather]string{1: "sunny", 2: "cloudy", 3: "rainly", 4: "bad-day"}
	for code, want := range expected {
		got, ok := code.Label()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := Weather(9).Label()
	assert.False(t, ok)
}

func TestHolidayLabel(t *testing.T) {
	l, ok := Holiday(0).Label()
	assert.True(t, ok)
	assert.Equal(t, "non-holiday", l)

	l, ok = Holiday(1).Label()
	assert.True(t, ok)
	assert.Equal(t, "holiday", l)

	_, ok = Holiday(2).Label()
	assert.False(t, ok)
}

func TestRecordLabelsRespectMissing(t *testing.T) {
	r := Record{Season: 1, Holiday: 0, Weather: 2}
	r.Missing.Add(ColHoliday)

	l, ok := r.SeasonLabel()
	assert.True(t, ok)
	assert.Equal(t, "Spring", l)

	// a missing holiday cell is zero-valued but must not read as non-holiday
	_, ok = r.HolidayLabel()
	assert.False(t, ok)
}

func TestOrders(t *testing.T) {
	assert.Equal(t, []string{"Spring", "Summer", "Fall", "Winter"}, SeasonOrder())
	assert.Equal(t, []string{"sunny", "cloudy", "rainly", "bad-day"}, WeatherOrder())
	assert.Equal(t, []string{"non-holiday", "holiday"}, HolidayOrder())
}
