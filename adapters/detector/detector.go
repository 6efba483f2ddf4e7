// Package detector decides whether pasted text is tabular, recovers its
// delimiter and columns, and classifies the entity list it represents.
//
// Everything here is a pure function of its input: no I/O, no shared
// state, safe to call from any number of goroutines.
package detector

import (
	"strings"

	"structdetect/domain/structured"
)

const minColumns = 2

// Detector implements ports.StructuredDetector
type Detector struct{}

// New creates a detector
func New() *Detector {
	return &Detector{}
}

// Detect runs the full detection on raw text. A nil result means the text
// is not recognisable as tabular data; it is not an error.
func (d *Detector) Detect(text string) *structured.DetectedStructuredData {
	return Detect(text)
}

// LooksLikeStructuredData is the cheap pre-check gating Detect
func (d *Detector) LooksLikeStructuredData(text string) bool {
	return LooksLikeStructuredData(text)
}

// Detect runs the full detection on raw text
func Detect(text string) *structured.DetectedStructuredData {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	lines := nonBlankLines(trimmed)
	if len(lines) < 2 {
		return nil
	}

	delimiter, ok := DetectDelimiter(lines[0])
	if !ok {
		return nil
	}

	headers := ParseRow(lines[0], delimiter)
	if countNonEmpty(headers) < minColumns {
		return nil
	}

	rows := make([]structured.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := ParseRow(line, delimiter)
		if len(values) == 0 {
			continue
		}
		rows = append(rows, buildRecord(headers, values))
	}
	if len(rows) == 0 {
		return nil
	}

	entityType, maxScore := ClassifyHeaders(headers)
	entityType, confidence := Confidence(entityType, maxScore, len(headers))

	return &structured.DetectedStructuredData{
		Type:       entityType,
		Confidence: confidence,
		Headers:    headers,
		Rows:       rows,
		RawText:    trimmed,
		Summary:    Summarize(entityType, len(rows), headers),
	}
}

// LooksLikeStructuredData reports whether text is worth running Detect on.
// It requires two non-blank lines, a delimiter on the first line, at least
// two columns on that line, and a second line whose column count is within
// one of the first. Columns are counted with a plain split, ignoring quotes.
func LooksLikeStructuredData(text string) bool {
	lines := nonBlankLines(strings.TrimSpace(text))
	if len(lines) < 2 {
		return false
	}

	delimiter, ok := DetectDelimiter(lines[0])
	if !ok {
		return false
	}

	first := countColumns(lines[0], delimiter)
	second := countColumns(lines[1], delimiter)
	if first < minColumns {
		return false
	}

	diff := first - second
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// buildRecord maps headers to positional values; missing values become ""
// and values past the last header are dropped
func buildRecord(headers, values []string) structured.Record {
	record := make(structured.Record, len(headers))
	for i, header := range headers {
		if i < len(values) {
			record[header] = values[i]
		} else {
			record[header] = ""
		}
	}
	return record
}

func nonBlankLines(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func countColumns(line string, delimiter structured.Delimiter) int {
	if delimiter.IsFixedWidth() {
		return len(parseFixedWidth(line))
	}
	return len(strings.Split(line, string(delimiter)))
}

func countNonEmpty(values []string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
