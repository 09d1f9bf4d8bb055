package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// RawPing probes connection liveness with a bare "SELECT 1", bypassing
// GORM so health checks exercise the driver directly.
func RawPing(ctx context.Context, db *sql.DB) error {
	var ok int
	row := db.QueryRowContext(ctx, "SELECT 1")
	if err := row.Scan(&ok); err != nil {
		return fmt.Errorf("raw ping failed: %w", err)
	}
	if ok != 1 {
		return fmt.Errorf("raw ping returned unexpected value: %d", ok)
	}
	return nil
}
