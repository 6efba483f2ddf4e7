package structured

import (
	"fmt"
	"strings"
)

// EntityType is the kind of entity list a block of tabular text represents
type EntityType string

const (
	TypeStudentRoster EntityType = "student_roster"
	TypeClassSchedule EntityType = "class_schedule"
	TypeLeadList      EntityType = "lead_list"
	TypeUnknown       EntityType = "unknown"
)

// AllEntityTypes lists every valid tag in tie-break order
var AllEntityTypes = []EntityType{
	TypeStudentRoster,
	TypeClassSchedule,
	TypeLeadList,
	TypeUnknown,
}

// ParseEntityType converts a wire string into an EntityType
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.TrimSpace(s))
	for _, known := range AllEntityTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

// String returns the wire representation
func (t EntityType) String() string {
	return string(t)
}

// Label returns the prose label used in summaries
func (t EntityType) Label() string {
	switch t {
	case TypeStudentRoster:
		return "student roster"
	case TypeClassSchedule:
		return "class schedule"
	case TypeLeadList:
		return "lead list"
	default:
		return "data"
	}
}

// IsKnown reports whether the type is one of the three recognized lists
func (t EntityType) IsKnown() bool {
	return t == TypeStudentRoster || t == TypeClassSchedule || t == TypeLeadList
}

// Delimiter separates columns within a line
type Delimiter string

const (
	DelimiterTab       Delimiter = "\t"
	DelimiterComma     Delimiter = ","
	DelimiterPipe      Delimiter = "|"
	DelimiterSemicolon Delimiter = ";"
	// DelimiterFixedWidth is the sentinel for columns separated by runs of
	// two or more whitespace characters.
	DelimiterFixedWidth Delimiter = "fixed-width"
)

// CandidateDelimiters are the single-character delimiters in priority order
var CandidateDelimiters = []Delimiter{
	DelimiterTab,
	DelimiterComma,
	DelimiterPipe,
	DelimiterSemicolon,
}

// IsFixedWidth reports whether d is the fixed-width sentinel
func (d Delimiter) IsFixedWidth() bool {
	return d == DelimiterFixedWidth
}

// Name returns a human-readable delimiter name
func (d Delimiter) Name() string {
	switch d {
	case DelimiterTab:
		return "tab"
	case DelimiterComma:
		return "comma"
	case DelimiterPipe:
		return "pipe"
	case DelimiterSemicolon:
		return "semicolon"
	case DelimiterFixedWidth:
		return "fixed-width"
	default:
		return "none"
	}
}

// Record maps each header to its positional value in one data line
type Record map[string]string

// DetectedStructuredData is the result of a successful detection.
// It is built once per call and never mutated afterwards.
type DetectedStructuredData struct {
	Type       EntityType `json:"type" yaml:"type"`
	Confidence float64    `json:"confidence" yaml:"confidence"`
	Headers    []string   `json:"headers" yaml:"headers"`
	Rows       []Record   `json:"rows" yaml:"rows"`
	RawText    string     `json:"rawText" yaml:"rawText"`
	Summary    string     `json:"summary" yaml:"summary"`
}

// RowCount returns the number of data rows
func (d *DetectedStructuredData) RowCount() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// PreviewRows returns at most n rows for display
func (d *DetectedStructuredData) PreviewRows(n int) []Record {
	if d == nil || n <= 0 {
		return nil
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// Column returns every value for a header in row order
func (d *DetectedStructuredData) Column(header string) []string {
	if d == nil {
		return nil
	}
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[header]
	}
	return values
}
