package ports

import (
	"structdetect/domain/structured"
)

// ProfilerPort summarizes the columns of a detection for the import preview
type ProfilerPort interface {
	ProfileColumns(data *structured.DetectedStructuredData) []structured.ColumnProfile
}
