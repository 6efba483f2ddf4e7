package detector

import (
	"fmt"
	"strings"

	"structdetect/domain/structured"
)

const summaryHeaderLimit = 4

// Summarize describes a detection in one line
func Summarize(entityType structured.EntityType, rowCount int, headers []string) string {
	noun := "entries"
	if rowCount == 1 {
		noun = "entry"
	}

	shown := headers
	suffix := ""
	if len(headers) > summaryHeaderLimit {
		shown = headers[:summaryHeaderLimit]
		suffix = "..."
	}

	return fmt.Sprintf("Detected %s with %d %s (columns: %s%s)",
		entityType.Label(), rowCount, noun, strings.Join(shown, ", "), suffix)
}
