package structured

// ColumnKind is the value shape inferred for a column
type ColumnKind string

const (
	KindNumeric ColumnKind = "numeric"
	KindBoolean ColumnKind = "boolean"
	KindDate    ColumnKind = "date"
	KindEmail   ColumnKind = "email"
	KindPhone   ColumnKind = "phone"
	KindText    ColumnKind = "text"
	KindEmpty   ColumnKind = "empty"
)

// NumericSummary holds descriptive statistics for a numeric column
type NumericSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// ColumnProfile describes one column of a detection for the import preview
type ColumnProfile struct {
	Header     string          `json:"header"`
	SampleSize int             `json:"sample_size"`
	NonEmpty   int             `json:"non_empty"`
	FillRate   float64         `json:"fill_rate"`
	Distinct   int             `json:"distinct"`
	Kind       ColumnKind      `json:"kind"`
	KindRatio  float64         `json:"kind_ratio"`
	Numeric    *NumericSummary `json:"numeric,omitempty"`
}
