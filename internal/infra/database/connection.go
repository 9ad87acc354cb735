package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS leads (
    lead_id UUID PRIMARY KEY,
    restaurant_name TEXT NOT NULL,
    contact_person TEXT,
    phone TEXT NOT NULL,
    city TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT 'Manual',
    current_status TEXT NOT NULL DEFAULT 'New',
    lead_stage TEXT NOT NULL DEFAULT 'Cold',
    next_follow_up_date DATE,
    last_follow_up_date TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS follow_ups (
    follow_up_id UUID PRIMARY KEY,
    lead_id UUID NOT NULL REFERENCES leads(lead_id) ON DELETE CASCADE,
    follow_up_date TIMESTAMPTZ NOT NULL,
    status TEXT NOT NULL,
    notes TEXT,
    next_follow_up_date DATE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_follow_ups_lead_id ON follow_ups(lead_id);
CREATE INDEX IF NOT EXISTS idx_leads_next_follow_up ON leads(next_follow_up_date);
`

// NewPostgresConnection opens the pool, pings it and ensures the schema
// exists.
func NewPostgresConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate postgres schema: %w", err)
	}

	return db, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
