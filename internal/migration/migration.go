package migration

import (
	"context"

	"structdetect/internal"
	"structdetect/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
	logger  *internal.Logger
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		logger:  internal.DefaultLogger,
	}
}

// WithLogger sets the logger used for non-fatal warnings
func (r *MigrationRunner) WithLogger(logger *internal.Logger) *MigrationRunner {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createDetectionsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create detections table")
	}

	if err := r.addDetectionsColumns(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add detections columns")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createDetectionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS detections (
			id UUID PRIMARY KEY,
			fingerprint CHAR(64) NOT NULL,
			entity_type VARCHAR(32) NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			headers JSONB NOT NULL DEFAULT '[]'::jsonb,
			row_count INTEGER NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

// addDetectionsColumns upgrades tables created before the source column existed
func (r *MigrationRunner) addDetectionsColumns(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'detections' AND column_name = 'source'
			) THEN
				ALTER TABLE detections ADD COLUMN source VARCHAR(16) NOT NULL DEFAULT 'paste';
			END IF;
		END $$;
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_detections_created_at ON detections(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_detections_entity_type ON detections(entity_type)",
		"CREATE INDEX IF NOT EXISTS idx_detections_fingerprint ON detections(fingerprint)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Index failures are not fatal; queries still work without them
			r.logger.Warn("[Migration] failed to create index: %v", err)
		}
	}

	return nil
}
