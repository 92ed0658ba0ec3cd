package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Open opens the cycle history database and verifies the connection.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// ApplyMigrations creates the schema if it does not already exist.
func ApplyMigrations(conn *sql.DB) error {
	_, err := conn.Exec(`CREATE TABLE IF NOT EXISTS cycles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		completed_at TEXT NOT NULL,
		off_direction TEXT NOT NULL,
		channel_count INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create cycles table: %w", err)
	}

	log.Debug().Msg("Database migrations applied")
	return nil
}
