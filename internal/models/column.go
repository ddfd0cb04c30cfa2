package models

// Column identifies a column of the record table, input or derived
type Column int

const (
	ColDatetime Column = iota
	ColSeason
	ColHoliday
	ColWorkingDay
	ColWeather
	ColTemp
	ColATemp
	ColHumidity
	ColWindSpeed
	ColCasual
	ColRegistered
	ColCount

	// Derived
	ColDate
	ColHour
	ColWeekday
	ColMonth
	ColSeasonLabel
	ColWeatherLabel
	ColHolidayMap

	numColumns
)

// Dtype is the diagnostic type name of a column
type Dtype string

const (
	DtypeObject  Dtype = "object"
	DtypeInt64   Dtype = "int64"
	DtypeFloat64 Dtype = "float64"
)

var columnNames = [numColumns]string{
	"datetime", "season", "holiday", "workingday", "weather",
	"temp", "atemp", "humidity", "windspeed",
	"casual", "registered", "count",
	"date", "hour", "weekday", "month",
	"season_label", "weather_label", "holiday_map",
}

var columnDtypes = [numColumns]Dtype{
	DtypeObject, DtypeInt64, DtypeInt64, DtypeInt64, DtypeInt64,
	DtypeFloat64, DtypeFloat64, DtypeFloat64, DtypeFloat64,
	DtypeInt64, DtypeInt64, DtypeInt64,
	DtypeObject, DtypeObject, DtypeObject, DtypeObject,
	DtypeObject, DtypeObject, DtypeObject,
}

// String returns the column name as it appears in the dataset header
func (c Column) String() string {
	if c < 0 || c >= numColumns {
		return "unknown"
	}
	return columnNames[c]
}

// Dtype returns the column's diagnostic type
func (c Column) Dtype() Dtype {
	if c < 0 || c >= numColumns {
		return DtypeObject
	}
	return columnDtypes[c]
}

// Derived reports whether the column is computed by the feature deriver
func (c Column) Derived() bool {
	return c >= ColDate && c < numColumns
}

// InputColumns returns the columns every source must provide, in file order
func InputColumns() []Column {
	cols := make([]Column, 0, ColDate)
	for c := ColDatetime; c < ColDate; c++ {
		cols = append(cols, c)
	}
	return cols
}

// AllColumns returns input and derived columns in table order
func AllColumns() []Column {
	cols := make([]Column, 0, numColumns)
	for c := ColDatetime; c < numColumns; c++ {
		cols = append(cols, c)
	}
	return cols
}

// ColumnByName looks up a column by its header name
func ColumnByName(name string) (Column, bool) {
	for i, n := range columnNames {
		if n == name {
			return Column(i), true
		}
	}
	return 0, false
}

// ColumnSet is a bit set of columns
type ColumnSet uint32

// Has reports whether c is in the set
func (s ColumnSet) Has(c Column) bool {
	return s&(1<<uint(c)) != 0
}

// Add puts c into the set
func (s *ColumnSet) Add(c Column) {
	*s |= 1 << uint(c)
}

// Len returns the number of columns in the set
func (s ColumnSet) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}
