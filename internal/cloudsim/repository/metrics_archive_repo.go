package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
)

// MetricsArchiveRepository handles PostgreSQL persistence of the full metric
// history. The Redis store keeps only the capped recent window; the archive,
// when configured, retains everything for long-range queries.
type MetricsArchiveRepository struct {
	db *sql.DB
}

// NewMetricsArchiveRepository creates a new MetricsArchiveRepository
func NewMetricsArchiveRepository(db *sql.DB) *MetricsArchiveRepository {
	return &MetricsArchiveRepository{db: db}
}

// InsertBatch inserts multiple metric samples in a single transaction.
// This is more efficient than inserting one at a time.
func (r *MetricsArchiveRepository) InsertBatch(ctx context.Context, samples []*domain.MetricSample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO simulation_metrics_history (
			id, simulation_id, cpu_usage, memory_usage, network_io, disk_io, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, sample := range samples {
		ts := sample.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}

		_, err = stmt.ExecContext(ctx,
			sample.ID,
			sample.SimulationID,
			sample.CPUUsage,
			sample.MemoryUsage,
			sample.NetworkIO,
			sample.DiskIO,
			ts,
		)
		if err != nil {
			return fmt.Errorf("failed to insert metric sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBySimulationID retrieves archived samples for a simulation, optionally
// bounded by a time range, oldest first.
func (r *MetricsArchiveRepository) GetBySimulationID(
	ctx context.Context,
	simulationID string,
	fromTime *time.Time,
	toTime *time.Time,
) ([]*domain.MetricSample, error) {
	query := `
		SELECT id, simulation_id, cpu_usage, memory_usage, network_io, disk_io, recorded_at
		FROM simulation_metrics_history
		WHERE simulation_id = $1
	`
	args := []interface{}{simulationID}
	argIndex := 2

	if fromTime != nil {
		query += fmt.Sprintf(" AND recorded_at >= $%d", argIndex)
		args = append(args, *fromTime)
		argIndex++
	}
	if toTime != nil {
		query += fmt.Sprintf(" AND recorded_at <= $%d", argIndex)
		args = append(args, *toTime)
		argIndex++
	}

	query += " ORDER BY recorded_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived metrics: %w", err)
	}
	defer rows.Close()

	var samples []*domain.MetricSample
	for rows.Next() {
		var sample domain.MetricSample
		err := rows.Scan(
			&sample.ID,
			&sample.SimulationID,
			&sample.CPUUsage,
			&sample.MemoryUsage,
			&sample.NetworkIO,
			&sample.DiskIO,
			&sample.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metric sample: %w", err)
		}
		samples = append(samples, &sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating archived metrics: %w", err)
	}

	return samples, nil
}

// CountBySimulationID returns the number of archived samples for a simulation.
func (r *MetricsArchiveRepository) CountBySimulationID(ctx context.Context, simulationID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM simulation_metrics_history WHERE simulation_id = $1`,
		simulationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count archived metrics: %w", err)
	}

	return count, nil
}

// DeleteBySimulationID removes archived samples for a deleted simulation.
func (r *MetricsArchiveRepository) DeleteBySimulationID(ctx context.Context, simulationID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM simulation_metrics_history WHERE simulation_id = $1`,
		simulationID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete archived metrics: %w", err)
	}
	return nil
}
