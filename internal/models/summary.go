package models

import (
	"math"
	"strconv"
)

// JSONFloat encodes NaN and infinities as null
type JSONFloat float64

// MarshalJSON implements json.Marshaler
func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// ColumnInfo describes one column of the dataset
type ColumnInfo struct {
	Name    string `json:"name"`
	Dtype   Dtype  `json:"dtype"`
	Derived bool   `json:"derived"`
	Missing int    `json:"missing"`
}

// DatasetSummary is the shape and schema of the loaded dataset
type DatasetSummary struct {
	Source     string       `json:"source"`
	Rows       int          `json:"rows"`
	RawColumns int          `json:"raw_columns"`
	Columns    []ColumnInfo `json:"columns"`
}

// BoxStats is the five-number summary of count for one category
type BoxStats struct {
	Category string    `json:"category"`
	N        int       `json:"n"`
	Min      JSONFloat `json:"min"`
	Q1       JSONFloat `json:"q1"`
	Median   JSONFloat `json:"median"`
	Q3       JSONFloat `json:"q3"`
	Max      JSONFloat `json:"max"`
	Lower    JSONFloat `json:"lower_fence"`
	Upper    JSONFloat `json:"upper_fence"`
	Outliers int       `json:"outliers"`
}

// ColumnStats is the describe() row of one numeric column
type ColumnStats struct {
	Column string    `json:"column"`
	Count  int       `json:"count"`
	Mean   JSONFloat `json:"mean"`
	Std    JSONFloat `json:"std"`
	Min    JSONFloat `json:"min"`
	Q1     JSONFloat `json:"q1"`
	Median JSONFloat `json:"median"`
	Q3     JSONFloat `json:"q3"`
	Max    JSONFloat `json:"max"`
}

// Correlation is a named square correlation matrix
type Correlation struct {
	Names  []string      `json:"names"`
	Values [][]JSONFloat `json:"values"`
}
