package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	metricsKeyPrefix = "cloudsim:metrics:" // List of metric samples: cloudsim:metrics:{simulation_id}

	// RetentionCap is the maximum number of metric samples kept per
	// simulation. Older samples are evicted oldest-first.
	RetentionCap = 100

	// DefaultMetricsLimit is the limit applied when a caller asks for
	// metrics without specifying one.
	DefaultMetricsLimit = 50
)

// MetricsRepository handles Redis operations for metric samples. Each
// simulation's samples live in a list ordered oldest to newest, trimmed to
// RetentionCap on every append.
type MetricsRepository struct {
	client *redis.Client
}

// NewMetricsRepository creates a new MetricsRepository
func NewMetricsRepository(client *redis.Client) *MetricsRepository {
	return &MetricsRepository{client: client}
}

// Append adds a sample to the simulation's list, evicting the oldest
// samples beyond the retention cap. CPU and memory percentages are clamped
// to [0,100] here so out-of-range producer values never reach storage.
func (r *MetricsRepository) Append(ctx context.Context, sample *domain.MetricSample) error {
	if sample.SimulationID == "" {
		return fmt.Errorf("sample has no simulation ID")
	}
	if sample.ID == "" {
		sample.ID = uuid.New().String()
	}
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now()
	}

	sample.CPUUsage = clampPercent(sample.CPUUsage)
	sample.MemoryUsage = clampPercent(sample.MemoryUsage)
	if sample.NetworkIO < 0 {
		sample.NetworkIO = 0
	}
	if sample.DiskIO < 0 {
		sample.DiskIO = 0
	}

	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal metric sample: %w", err)
	}

	key := metricsKey(sample.SimulationID)

	pipe := r.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -RetentionCap, -1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append metric sample: %w", err)
	}

	return nil
}

// List returns up to limit samples for a simulation, most recent first.
// A limit <= 0 selects DefaultMetricsLimit.
func (r *MetricsRepository) List(ctx context.Context, simulationID string, limit int) ([]*domain.MetricSample, error) {
	if limit <= 0 {
		limit = DefaultMetricsLimit
	}

	values, err := r.client.LRange(ctx, metricsKey(simulationID), int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list metric samples: %w", err)
	}

	// The list is oldest-first; walk it backwards
	samples := make([]*domain.MetricSample, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		var sample domain.MetricSample
		if err := json.Unmarshal([]byte(values[i]), &sample); err != nil {
			continue
		}
		samples = append(samples, &sample)
	}

	return samples, nil
}

// Count returns the number of retained samples for a simulation.
func (r *MetricsRepository) Count(ctx context.Context, simulationID string) (int64, error) {
	n, err := r.client.LLen(ctx, metricsKey(simulationID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count metric samples: %w", err)
	}
	return n, nil
}

// DeleteBySimulation removes every sample for a simulation.
func (r *MetricsRepository) DeleteBySimulation(ctx context.Context, simulationID string) error {
	if err := r.client.Del(ctx, metricsKey(simulationID)).Err(); err != nil {
		return fmt.Errorf("failed to delete metric samples: %w", err)
	}
	return nil
}

func metricsKey(simulationID string) string {
	return fmt.Sprintf("%s%s", metricsKeyPrefix, simulationID)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
