package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS batches (
		id                 TEXT PRIMARY KEY,
		seed               INTEGER NOT NULL,
		requested          INTEGER NOT NULL,
		record_count       INTEGER NOT NULL DEFAULT 0,
		duplicates_removed INTEGER NOT NULL DEFAULT 0,
		generator_version  TEXT NOT NULL,
		created_at         TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS records (
		id                   TEXT NOT NULL,
		batch_id             TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
		position             INTEGER NOT NULL,
		intent_type          TEXT NOT NULL
		                     CHECK(intent_type IN ('DEPLOYMENT','MODIFICATION','PERFORMANCE_ASSURANCE',
		                                           'REPORT_REQUEST','FEASIBILITY_CHECK','NOTIFICATION_REQUEST')),
		description          TEXT NOT NULL,
		timestamp            TEXT NOT NULL,
		priority             TEXT NOT NULL
		                     CHECK(priority IN ('LOW','MEDIUM','HIGH','CRITICAL','EMERGENCY')),
		network_slice        TEXT NOT NULL,
		location             TEXT NOT NULL,
		technical_complexity INTEGER NOT NULL CHECK(technical_complexity BETWEEN 1 AND 10),
		research_context     TEXT NOT NULL DEFAULT '',
		compliance           TEXT NOT NULL DEFAULT '',
		parameters           TEXT NOT NULL,
		metadata             TEXT NOT NULL,
		PRIMARY KEY (batch_id, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_batch ON records(batch_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_records_id ON records(id)`,
	`CREATE INDEX IF NOT EXISTS idx_records_type ON records(intent_type)`,
	`CREATE INDEX IF NOT EXISTS idx_records_priority ON records(priority)`,
	`ALTER TABLE batches ADD COLUMN session_id TEXT NOT NULL DEFAULT ''`,
}

// Migrate runs all schema migrations.
func Migrate(db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
