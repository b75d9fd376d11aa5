package persistence

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// OpenPostgres connects to PostgreSQL and verifies the connection
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate creates the schema if it does not exist yet
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			full_name TEXT NOT NULL,
			role TEXT NOT NULL,
			domain TEXT,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS budget_items (
			id INT NOT NULL,
			year INT NOT NULL,
			name TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			is_revenue BOOLEAN NOT NULL,
			domains JSONB NOT NULL,
			seq BIGSERIAL,
			PRIMARY KEY (id, year)
		)`,
		`CREATE TABLE IF NOT EXISTS pending_changes (
			id INT PRIMARY KEY,
			item_id INT NOT NULL,
			item_year INT NOT NULL,
			item_name TEXT NOT NULL,
			requester_name TEXT NOT NULL,
			requester_id UUID NOT NULL,
			old_value DOUBLE PRECISION NOT NULL,
			new_value DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			submitted_at TIMESTAMPTZ NOT NULL,
			seq BIGSERIAL
		)`,
		`CREATE TABLE IF NOT EXISTS change_log (
			id BIGSERIAL PRIMARY KEY,
			item_id INT NOT NULL,
			old_value DOUBLE PRECISION NOT NULL,
			new_value DOUBLE PRECISION NOT NULL,
			ts TIMESTAMPTZ NOT NULL,
			actor_name TEXT NOT NULL,
			actor_id UUID NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
