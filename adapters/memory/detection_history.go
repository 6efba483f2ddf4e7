package memory

import (
	"context"
	"sync"

	"structdetect/domain/core"
	"structdetect/domain/structured"
	"structdetect/ports"
)

// DetectionHistory is an in-process history store used when no database
// is configured. It keeps the most recent entries up to a fixed capacity.
type DetectionHistory struct {
	mu       sync.RWMutex
	entries  []*structured.HistoryEntry
	byID     map[core.DetectionID]*structured.HistoryEntry
	capacity int
}

var _ ports.DetectionHistoryRepository = (*DetectionHistory)(nil)

// NewDetectionHistory creates a store holding at most capacity entries
func NewDetectionHistory(capacity int) *DetectionHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &DetectionHistory{
		byID:     make(map[core.DetectionID]*structured.HistoryEntry),
		capacity: capacity,
	}
}

// Save appends an entry, evicting the oldest when full
func (h *DetectionHistory) Save(ctx context.Context, entry *structured.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == h.capacity {
		oldest := h.entries[0]
		delete(h.byID, oldest.ID)
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, entry)
	h.byID[entry.ID] = entry
	return nil
}

// GetByID returns one entry
func (h *DetectionHistory) GetByID(ctx context.Context, id core.DetectionID) (*structured.HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	entry, ok := h.byID[id]
	if !ok {
		return nil, core.NewNotFoundError("detection", id.String())
	}
	return entry, nil
}

// ListRecent returns up to limit entries, newest first
func (h *DetectionHistory) ListRecent(ctx context.Context, limit int) ([]*structured.HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 || limit > len(h.entries) {
		limit = len(h.entries)
	}

	result := make([]*structured.HistoryEntry, 0, limit)
	for i := len(h.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, h.entries[i])
	}
	return result, nil
}

// CountByType tallies stored entries per entity type
func (h *DetectionHistory) CountByType(ctx context.Context) (map[structured.EntityType]int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	counts := make(map[structured.EntityType]int)
	for _, entry := range h.entries {
		counts[entry.Type]++
	}
	return counts, nil
}
