package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS photographers (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		price       NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
		rating      NUMERIC(2,1) NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
		styles      TEXT[] NOT NULL DEFAULT '{}',
		tags        TEXT[] NOT NULL DEFAULT '{}',
		bio         TEXT NOT NULL DEFAULT '',
		profile_pic TEXT NOT NULL DEFAULT '',
		reviews     JSONB NOT NULL DEFAULT '[]',
		portfolio   TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS inquiries (
		id              UUID PRIMARY KEY,
		photographer_id BIGINT NOT NULL,
		name            TEXT NOT NULL,
		email           TEXT NOT NULL,
		phone           TEXT NOT NULL,
		event_type      TEXT NOT NULL,
		event_date      DATE NOT NULL,
		location        TEXT NOT NULL,
		guest_count     INTEGER,
		budget          TEXT,
		message         TEXT NOT NULL,
		status          TEXT NOT NULL,
		error_message   TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		sent_at         TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inquiries_photographer ON inquiries (photographer_id)`,
}

// EnsureSchema creates the catalog tables when they are missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
