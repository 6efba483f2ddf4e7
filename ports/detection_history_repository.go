package ports

import (
	"context"

	"structdetect/domain/core"
	"structdetect/domain/structured"
)

// DetectionHistoryRepository stores audit records of successful detections
type DetectionHistoryRepository interface {
	Save(ctx context.Context, entry *structured.HistoryEntry) error
	GetByID(ctx context.Context, id core.DetectionID) (*structured.HistoryEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*structured.HistoryEntry, error)
	CountByType(ctx context.Context) (map[structured.EntityType]int, error)
}
