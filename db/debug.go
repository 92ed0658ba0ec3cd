package db

import (
	"fmt"

	"github.com/thatsimonsguy/stairlight-controller/internal/model"
)

func RecentCyclesCLI(dbPath string, limit int) ([]model.Cycle, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return RecentCycles(conn, limit)
}

func CycleCountCLI(dbPath string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return CycleCount(conn)
}

func PurgeCyclesCLI(dbPath string) (int64, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	res, err := conn.Exec(`DELETE FROM cycles`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cycles: %w", err)
	}
	return res.RowsAffected()
}
