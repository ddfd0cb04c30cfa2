package models

import (
	"math"
	"strconv"
)

// Record is one hourly observation as read from the dataset
type Record struct {
	Datetime   string  `json:"datetime" db:"datetime"` // "YYYY-MM-DD HH:MM:SS"
	Season     int     `json:"season" db:"season"`
	Holiday    int     `json:"holiday" db:"holiday"`
	WorkingDay int     `json:"workingday" db:"workingday"`
	Weather    int     `json:"weather" db:"weather"`
	Temp       float64 `json:"temp" db:"temp"`
	ATemp      float64 `json:"atemp" db:"atemp"`
	Humidity   float64 `json:"humidity" db:"humidity"`
	WindSpeed  float64 `json:"windspeed" db:"windspeed"`
	Casual     int     `json:"casual" db:"casual"`
	Registered int     `json:"registered" db:"registered"`
	Count      int     `json:"count" db:"count"`

	// Missing holds the columns whose cell was empty in the source
	Missing ColumnSet `json:"-" db:"-"`
}

// IsMissing reports whether column c has no value in this record
func (r Record) IsMissing(c Column) bool {
	return r.Missing.Has(c)
}

// SeasonLabel returns the season label, or false when the code is missing or unmapped
func (r Record) SeasonLabel() (string, bool) {
	if r.IsMissing(ColSeason) {
		return "", false
	}
	return Season(r.Season).Label()
}

// WeatherLabel returns the weather label, or false when the code is missing or unmapped
func (r Record) WeatherLabel() (string, bool) {
	if r.IsMissing(ColWeather) {
		return "", false
	}
	return Weather(r.Weather).Label()
}

// HolidayLabel returns the holiday label, or false when the flag is missing or unmapped
func (r Record) HolidayLabel() (string, bool) {
	if r.IsMissing(ColHoliday) {
		return "", false
	}
	return Holiday(r.Holiday).Label()
}

// Float returns the numeric value of an input column.
// The second result is false for missing cells and non-numeric columns.
func (r Record) Float(c Column) (float64, bool) {
	if r.IsMissing(c) {
		return math.NaN(), false
	}
	switch c {
	case ColSeason:
		return float64(r.Season), true
	case ColHoliday:
		return float64(r.Holiday), true
	case ColWorkingDay:
		return float64(r.WorkingDay), true
	case ColWeather:
		return float64(r.Weather), true
	case ColTemp:
		return r.Temp, true
	case ColATemp:
		return r.ATemp, true
	case ColHumidity:
		return r.Humidity, true
	case ColWindSpeed:
		return r.WindSpeed, true
	case ColCasual:
		return float64(r.Casual), true
	case ColRegistered:
		return float64(r.Registered), true
	case ColCount:
		return float64(r.Count), true
	}
	return math.NaN(), false
}

// EnrichedRecord is a Record with the derived calendar and label columns
type EnrichedRecord struct {
	Record

	Date    string `json:"date"`    // YYYY-MM-DD
	Hour    string `json:"hour"`    // "00".."23", as written in the timestamp
	Weekday string `json:"weekday"` // English weekday name
	Month   string `json:"month"`   // English month name

	// Empty when the code has no label; the column is then also in Missing
	SeasonLabel  string `json:"season_label"`
	WeatherLabel string `json:"weather_label"`
	HolidayLabel string `json:"holiday_map"`
}

// Value formats any column of the enriched record for display.
// Missing cells are rendered as "NaN".
func (e EnrichedRecord) Value(c Column) string {
	if e.IsMissing(c) {
		return "NaN"
	}
	switch c {
	case ColDatetime:
		return e.Datetime
	case ColDate:
		return e.Date
	case ColHour:
		return e.Hour
	case ColWeekday:
		return e.Weekday
	case ColMonth:
		return e.Month
	case ColSeasonLabel:
		return e.SeasonLabel
	case ColWeatherLabel:
		return e.WeatherLabel
	case ColHolidayMap:
		return e.HolidayLabel
	}
	v, ok := e.Float(c)
	if !ok {
		return "NaN"
	}
	if c.Dtype() == DtypeInt64 {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Map returns the record keyed by column name. Missing cells are nil.
func (e EnrichedRecord) Map() map[string]any {
	out := make(map[string]any, numColumns)
	for _, c := range AllColumns() {
		switch {
		case e.IsMissing(c):
			out[c.String()] = nil
		case c.Dtype() == DtypeObject:
			out[c.String()] = e.Value(c)
		default:
			v, _ := e.Float(c)
			if c.Dtype() == DtypeInt64 {
				out[c.String()] = int(v)
			} else {
				out[c.String()] = v
			}
		}
	}
	return out
}
