package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"structdetect/domain/core"
	"structdetect/domain/structured"
	"structdetect/ports"

	"github.com/jmoiron/sqlx"
)

// detectionRepository implements the DetectionHistoryRepository interface
type detectionRepository struct {
	db *sqlx.DB
}

// NewDetectionRepository creates a new detection history repository
func NewDetectionRepository(db *sqlx.DB) ports.DetectionHistoryRepository {
	return &detectionRepository{db: db}
}

// detectionRow mirrors the detections table
type detectionRow struct {
	ID          string    `db:"id"`
	Fingerprint string    `db:"fingerprint"`
	EntityType  string    `db:"entity_type"`
	Confidence  float64   `db:"confidence"`
	Headers     []byte    `db:"headers"`
	RowCount    int       `db:"row_count"`
	Summary     string    `db:"summary"`
	Source      string    `db:"source"`
	CreatedAt   time.Time `db:"created_at"`
}

const detectionColumns = `id, fingerprint, entity_type, confidence, headers, row_count, summary, source, created_at`

// Save inserts a new detection record
func (r *detectionRepository) Save(ctx context.Context, entry *structured.HistoryEntry) error {
	headersJSON, err := json.Marshal(entry.Headers)
	if err != nil {
		return fmt.Errorf("failed to marshal headers: %w", err)
	}

	query := `INSERT INTO detections (` + detectionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		entry.ID.String(), entry.Fingerprint.String(), entry.Type.String(), entry.Confidence,
		string(headersJSON), entry.RowCount, entry.Summary, string(entry.Source), entry.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save detection: %w", err)
	}

	return nil
}

// GetByID retrieves a detection record by its ID
func (r *detectionRepository) GetByID(ctx context.Context, id core.DetectionID) (*structured.HistoryEntry, error) {
	query := `SELECT ` + detectionColumns + ` FROM detections WHERE id = $1`

	var row detectionRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("detection", id.String())
		}
		return nil, fmt.Errorf("failed to get detection: %w", err)
	}

	return row.toEntry()
}

// ListRecent retrieves the newest detection records
func (r *detectionRepository) ListRecent(ctx context.Context, limit int) ([]*structured.HistoryEntry, error) {
	query := `SELECT ` + detectionColumns + `
	FROM detections
	ORDER BY created_at DESC
	LIMIT $1`

	var rows []detectionRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list detections: %w", err)
	}

	entries := make([]*structured.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// CountByType returns the number of stored detections per entity type
func (r *detectionRepository) CountByType(ctx context.Context) (map[structured.EntityType]int, error) {
	query := `SELECT entity_type, COUNT(*) AS total FROM detections GROUP BY entity_type`

	var rows []struct {
		EntityType string `db:"entity_type"`
		Total      int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count detections: %w", err)
	}

	counts := make(map[structured.EntityType]int, len(rows))
	for _, row := range rows {
		counts[structured.EntityType(row.EntityType)] = row.Total
	}
	return counts, nil
}

func (row detectionRow) toEntry() (*structured.HistoryEntry, error) {
	entry := &structured.HistoryEntry{
		ID:          core.DetectionID(row.ID),
		Fingerprint: core.Fingerprint(row.Fingerprint),
		Type:        structured.EntityType(row.EntityType),
		Confidence:  row.Confidence,
		RowCount:    row.RowCount,
		Summary:     row.Summary,
		Source:      structured.Source(row.Source),
		CreatedAt:   core.NewTimestamp(row.CreatedAt.UTC()),
	}

	if len(row.Headers) > 0 {
		if err := json.Unmarshal(row.Headers, &entry.Headers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal headers: %w", err)
		}
	}

	return entry, nil
}
