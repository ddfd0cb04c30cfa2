package charts

import (
	"sort"
	"strconv"
	"time"

	"github.com/jengzang/bikeshare-eda/internal/models"
)

// Categories returns the display value of column c for every row.
// Missing cells become "" and form no group.
func Categories(t *models.Table, c models.Column) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		if r.IsMissing(c) {
			continue
		}
		out[i] = r.Value(c)
	}
	return out
}

// Levels returns the distinct non-empty values in their display order:
// calendar order for months and weekdays, code order for labels,
// natural ascending order otherwise.
func Levels(c models.Column, values []string) []string {
	present := make(map[string]bool)
	for _, v := range values {
		if v != "" {
			present[v] = true
		}
	}

	var order []string
	switch c {
	case models.ColMonth:
		order = monthNames()
	case models.ColWeekday:
		order = weekdayNames()
	case models.ColSeasonLabel:
		order = models.SeasonOrder()
	case models.ColWeatherLabel:
		order = models.WeatherOrder()
	case models.ColHolidayMap:
		order = models.HolidayOrder()
	}

	var out []string
	for _, v := range order {
		if present[v] {
			out = append(out, v)
			delete(present, v)
		}
	}

	rest := make([]string, 0, len(present))
	for v := range present {
		rest = append(rest, v)
	}
	sort.Slice(rest, func(i, j int) bool { return naturalLess(rest[i], rest[j]) })
	return append(out, rest...)
}

// naturalLess compares numerically when both strings are integers
func naturalLess(a, b string) bool {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return x < y
	}
	return a < b
}

func monthNames() []string {
	names := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		names = append(names, m.String())
	}
	return names
}

// weekdayNames starts on Monday
func weekdayNames() []string {
	names := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		names = append(names, time.Weekday(i%7).String())
	}
	return names
}

func indexOf(levels []string) map[string]int {
	idx := make(map[string]int, len(levels))
	for i, l := range levels {
		idx[l] = i
	}
	return idx
}
