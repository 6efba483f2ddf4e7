package structured

import (
	"structdetect/domain/core"
)

// Source records how text reached the detector
type Source string

const (
	SourcePaste Source = "paste"
	SourceFile  Source = "file"
	SourceBatch Source = "batch"
)

// HistoryEntry is the audit record of one successful detection.
// Only the fingerprint of the raw text is kept, never the text itself.
type HistoryEntry struct {
	ID          core.DetectionID `json:"id" db:"id"`
	Fingerprint core.Fingerprint `json:"fingerprint" db:"fingerprint"`
	Type        EntityType       `json:"type" db:"entity_type"`
	Confidence  float64          `json:"confidence" db:"confidence"`
	Headers     []string         `json:"headers" db:"-"`
	RowCount    int              `json:"row_count" db:"row_count"`
	Summary     string           `json:"summary" db:"summary"`
	Source      Source           `json:"source" db:"source"`
	CreatedAt   core.Timestamp   `json:"created_at" db:"-"`
}

// NewHistoryEntry builds an audit record from a detection
func NewHistoryEntry(data *DetectedStructuredData, source Source) *HistoryEntry {
	headers := make([]string, len(data.Headers))
	copy(headers, data.Headers)

	return &HistoryEntry{
		ID:          core.NewDetectionID(),
		Fingerprint: core.NewFingerprint(data.RawText),
		Type:        data.Type,
		Confidence:  data.Confidence,
		Headers:     headers,
		RowCount:    len(data.Rows),
		Summary:     data.Summary,
		Source:      source,
		CreatedAt:   core.Now(),
	}
}
