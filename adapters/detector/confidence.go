package detector

import (
	"math"

	"structdetect/domain/structured"
)

const (
	unknownConfidence = 0.3
	baseConfidence    = 0.5
	maxConfidence     = 0.95
)

// Confidence derives a 0-1 score from the winning vocabulary's match count.
// With no match the type collapses to unknown at 0.3; otherwise the score
// starts at 0.5 and is capped at 0.95 even when every header matches.
func Confidence(entityType structured.EntityType, maxScore, headerCount int) (structured.EntityType, float64) {
	if maxScore == 0 || headerCount == 0 {
		return structured.TypeUnknown, unknownConfidence
	}
	ratio := float64(maxScore) / float64(headerCount)
	return entityType, math.Min(maxConfidence, baseConfidence+ratio*0.5)
}
