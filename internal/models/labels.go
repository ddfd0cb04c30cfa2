package models

// Season is the dataset's season code
type Season int

const (
	SeasonSpring Season = 1
	SeasonSummer Season = 2
	SeasonFall   Season = 3
	SeasonWinter Season = 4
)

// Label maps the code to its display label. Codes outside 1..4 have no label.
func (s Season) Label() (string, bool) {
	switch s {
	case SeasonSpring:
		return "Spring", true
	case SeasonSummer:
		return "Summer", true
	case SeasonFall:
		return "Fall", true
	case SeasonWinter:
		return "Winter", true
	}
	return "", false
}

// Weather is the dataset's weather situation code
type Weather int

const (
	WeatherSunny  Weather = 1
	WeatherCloudy Weather = 2
	WeatherRainy  Weather = 3
	WeatherBadDay Weather = 4
)

// Label maps the code to its display label. Codes outside 1..4 have no label.
// "rainly" is kept as the dataset's established spelling.
func (w Weather) Label() (string, bool) {
	switch w {
	case WeatherSunny:
		return "sunny", true
	case WeatherCloudy:
		return "cloudy", true
	case WeatherRainy:
		return "rainly", true
	case WeatherBadDay:
		return "bad-day", true
	}
	return "", false
}

// Holiday is the dataset's holiday flag
type Holiday int

const (
	NonHoliday Holiday = 0
	IsHoliday  Holiday = 1
)

// Label maps the flag to its display label. Values other than 0 and 1 have no label.
func (h Holiday) Label() (string, bool) {
	switch h {
	case NonHoliday:
		return "non-holiday", true
	case IsHoliday:
		return "holiday", true
	}
	return "", false
}

// SeasonOrder lists season labels in code order
func SeasonOrder() []string {
	return labelsOf(SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter)
}

// WeatherOrder lists weather labels in code order
func WeatherOrder() []string {
	return labelsOf(WeatherSunny, WeatherCloudy, WeatherRainy, WeatherBadDay)
}

// HolidayOrder lists holiday labels in flag order
func HolidayOrder() []string {
	return labelsOf(NonHoliday, IsHoliday)
}

type labeler interface {
	Label() (string, bool)
}

func labelsOf[T labeler](codes ...T) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if l, ok := c.Label(); ok {
			out = append(out, l)
		}
	}
	return out
}
