package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS leads (
    lead_id TEXT PRIMARY KEY,
    restaurant_name TEXT NOT NULL,
    contact_person TEXT,
    phone TEXT NOT NULL,
    city TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT 'Manual',
    current_status TEXT NOT NULL DEFAULT 'New',
    lead_stage TEXT NOT NULL DEFAULT 'Cold',
    next_follow_up_date TEXT,
    last_follow_up_date TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS follow_ups (
    follow_up_id TEXT PRIMARY KEY,
    lead_id TEXT NOT NULL,
    follow_up_date TEXT NOT NULL,
    status TEXT NOT NULL,
    notes TEXT,
    next_follow_up_date TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_follow_ups_lead_id ON follow_ups(lead_id);
CREATE INDEX IF NOT EXISTS idx_leads_next_follow_up ON leads(next_follow_up_date);
`

// NewSQLiteConnection opens (or creates) the embedded store and ensures
// the schema exists. This is the zero-infrastructure deployment: one file
// on disk, no server.
func NewSQLiteConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}

	return db, nil
}
