package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS dashboards (
	id                        UUID PRIMARY KEY,
	user_id                   TEXT NOT NULL UNIQUE,
	profile_completion        INTEGER NOT NULL DEFAULT 0,
	generated_content_count   INTEGER NOT NULL DEFAULT 0,
	match_count               INTEGER NOT NULL DEFAULT 0,
	active_relationship_count INTEGER NOT NULL DEFAULT 0,
	milestone_count           INTEGER NOT NULL DEFAULT 0,
	last_updated              TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
	id          UUID PRIMARY KEY,
	user_id     TEXT NOT NULL,
	type        TEXT NOT NULL,
	description VARCHAR(500),
	metadata    TEXT,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activities_user_created ON activities (user_id, created_at DESC);
`

// ConnectPostgres establishes a connection to PostgreSQL
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
