package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cloudsim-dash/cloudsim-backend/config"
	_ "github.com/lib/pq"
)

// OpenDB connects to the optional Postgres metrics archive and creates its
// schema if needed. Returns (nil, nil) when no archive is configured.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS simulation_metrics_history (
			id            TEXT PRIMARY KEY,
			simulation_id TEXT NOT NULL,
			cpu_usage     DOUBLE PRECISION NOT NULL,
			memory_usage  DOUBLE PRECISION NOT NULL,
			network_io    DOUBLE PRECISION NOT NULL,
			disk_io       DOUBLE PRECISION NOT NULL,
			recorded_at   TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_metrics_history_sim_time
			ON simulation_metrics_history (simulation_id, recorded_at);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	return db, nil
}
