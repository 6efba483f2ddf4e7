// Package profile summarizes the columns of a detection so an import
// preview can show fill rates and value shapes next to the sample rows.
package profile

import (
	"structdetect/domain/structured"

	"github.com/montanaflynn/stats"
)

// Config holds the thresholds used to pick a column kind
type Config struct {
	SampleSize       int     `json:"sample_size"`
	NumericThreshold float64 `json:"numeric_threshold"`
	BooleanThreshold float64 `json:"boolean_threshold"`
	DateThreshold    float64 `json:"date_threshold"`
	EmailThreshold   float64 `json:"email_threshold"`
	PhoneThreshold   float64 `json:"phone_threshold"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		SampleSize:       200,
		NumericThreshold: 0.8,
		BooleanThreshold: 0.9,
		DateThreshold:    0.8,
		EmailThreshold:   0.8,
		PhoneThreshold:   0.8,
	}
}

// Profiler implements ports.ProfilerPort
type Profiler struct {
	config Config
}

// NewProfiler creates a profiler with the given config
func NewProfiler(config Config) *Profiler {
	if config.SampleSize <= 0 {
		config.SampleSize = DefaultConfig().SampleSize
	}
	return &Profiler{config: config}
}

// ProfileColumns profiles every header of a detection in header order
func (p *Profiler) ProfileColumns(data *structured.DetectedStructuredData) []structured.ColumnProfile {
	if data == nil {
		return nil
	}

	rows := data.Rows
	if len(rows) > p.config.SampleSize {
		rows = rows[:p.config.SampleSize]
	}

	profiles := make([]structured.ColumnProfile, 0, len(data.Headers))
	seen := make(map[string]bool, len(data.Headers))
	for _, header := range data.Headers {
		if seen[header] {
			continue
		}
		seen[header] = true

		values := make([]string, len(rows))
		for i, row := range rows {
			values[i] = row[header]
		}
		profiles = append(profiles, p.profileColumn(header, values))
	}
	return profiles
}

type kindCounts struct {
	numeric, boolean, date, email, phone int
}

func (p *Profiler) profileColumn(header string, values []string) structured.ColumnProfile {
	profile := structured.ColumnProfile{
		Header:     header,
		SampleSize: len(values),
	}

	distinct := make(map[string]struct{})
	var counts kindCounts
	var numbers []float64

	for _, v := range values {
		if v == "" {
			continue
		}
		profile.NonEmpty++
		distinct[v] = struct{}{}

		if n, ok := parseNumeric(v); ok {
			counts.numeric++
			numbers = append(numbers, n)
		}
		if isBoolean(v) {
			counts.boolean++
		}
		if isDate(v) {
			counts.date++
		}
		if isEmail(v) {
			counts.email++
		}
		if isPhone(v) {
			counts.phone++
		}
	}

	profile.Distinct = len(distinct)
	if profile.SampleSize > 0 {
		profile.FillRate = float64(profile.NonEmpty) / float64(profile.SampleSize)
	}

	profile.Kind, profile.KindRatio = p.pickKind(counts, profile.NonEmpty)
	if profile.Kind == structured.KindNumeric {
		profile.Numeric = summarize(numbers)
	}

	return profile
}

// pickKind checks thresholds in order of preference, most restrictive first
func (p *Profiler) pickKind(counts kindCounts, nonEmpty int) (structured.ColumnKind, float64) {
	if nonEmpty == 0 {
		return structured.KindEmpty, 0
	}

	ratio := func(n int) float64 { return float64(n) / float64(nonEmpty) }

	switch {
	case ratio(counts.numeric) >= p.config.NumericThreshold:
		return structured.KindNumeric, ratio(counts.numeric)
	case ratio(counts.boolean) >= p.config.BooleanThreshold:
		return structured.KindBoolean, ratio(counts.boolean)
	case ratio(counts.date) >= p.config.DateThreshold:
		return structured.KindDate, ratio(counts.date)
	case ratio(counts.email) >= p.config.EmailThreshold:
		return structured.KindEmail, ratio(counts.email)
	case ratio(counts.phone) >= p.config.PhoneThreshold:
		return structured.KindPhone, ratio(counts.phone)
	default:
		return structured.KindText, 1
	}
}

func summarize(numbers []float64) *structured.NumericSummary {
	if len(numbers) == 0 {
		return nil
	}

	data := stats.Float64Data(numbers)
	summary := &structured.NumericSummary{}
	summary.Min, _ = data.Min()
	summary.Max, _ = data.Max()
	summary.Mean, _ = data.Mean()
	summary.Median, _ = data.Median()
	return summary
}
