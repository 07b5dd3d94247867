package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs every schema statement in order. All statements are
// idempotent (IF NOT EXISTS), so the full list re-runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS booking_sessions (
		id TEXT PRIMARY KEY,
		participant_id TEXT NOT NULL,
		participant_name TEXT NOT NULL,
		session_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		activities TEXT NOT NULL DEFAULT '',
		lifecycle_status TEXT NOT NULL DEFAULT 'scheduled'
			CHECK (lifecycle_status IN ('scheduled','completed','cancelled','no_show','rescheduled')),
		assignment_status TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_booking_sessions_date
		ON booking_sessions (session_date)`,

	`CREATE INDEX IF NOT EXISTS idx_booking_sessions_participant
		ON booking_sessions (participant_id)`,

	`CREATE TABLE IF NOT EXISTS availability_marks (
		id TEXT PRIMARY KEY,
		mark_date TEXT NOT NULL,
		kind TEXT NOT NULL
			CHECK (kind IN ('available','unavailable','absence_pending','absence_approved')),
		note TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_availability_marks_date
		ON availability_marks (mark_date)`,
}
