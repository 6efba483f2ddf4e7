package ports

import (
	"structdetect/domain/structured"
)

// StructuredDetector classifies pasted text. Implementations must be pure
// and safe for concurrent use; a nil result is a normal outcome.
type StructuredDetector interface {
	Detect(text string) *structured.DetectedStructuredData
	LooksLikeStructuredData(text string) bool
}
