package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/thatsimonsguy/stairlight-controller/internal/model"
)

// InsertCycle records one completed lighting cycle.
func InsertCycle(conn *sql.DB, c model.Cycle) error {
	_, err := conn.Exec(
		`INSERT INTO cycles (started_at, completed_at, off_direction, channel_count) VALUES (?, ?, ?, ?)`,
		c.StartedAt.UTC().Format(time.RFC3339),
		c.CompletedAt.UTC().Format(time.RFC3339),
		string(c.OffDirection),
		c.ChannelCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cycle: %w", err)
	}
	return nil
}

// RecentCycles retrieves the most recent cycles, newest first.
func RecentCycles(conn *sql.DB, limit int) ([]model.Cycle, error) {
	rows, err := conn.Query(
		`SELECT id, started_at, completed_at, off_direction, channel_count FROM cycles ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	defer rows.Close()

	var cycles []model.Cycle
	for rows.Next() {
		var c model.Cycle
		var startedAt, completedAt, offDirection string
		if err := rows.Scan(&c.ID, &startedAt, &completedAt, &offDirection, &c.ChannelCount); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		c.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		c.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		c.OffDirection = model.Direction(offDirection)
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

// CycleCount returns the total number of recorded cycles.
func CycleCount(conn *sql.DB) (int, error) {
	var count int
	err := conn.QueryRow(`SELECT COUNT(*) FROM cycles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cycles: %w", err)
	}
	return count, nil
}
