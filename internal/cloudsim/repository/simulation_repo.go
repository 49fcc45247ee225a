package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	simKeyPrefix      = "cloudsim:sim:"   // Key for simulation data: cloudsim:sim:{id}
	ownerSimSetPrefix = "cloudsim:owner:" // Set of simulation IDs for an owner: cloudsim:owner:{owner_id}:sims
	runningSetKey     = "cloudsim:running" // Set of simulation IDs currently in RUNNING status
)

// SimulationRepository handles Redis operations for simulation records.
// Simulations are stored as JSON blobs with a per-owner index set, plus a
// global set of running simulation IDs consumed by the background sampler.
type SimulationRepository struct {
	client *redis.Client
}

// NewSimulationRepository creates a new SimulationRepository
func NewSimulationRepository(client *redis.Client) *SimulationRepository {
	return &SimulationRepository{client: client}
}

// Create persists a new simulation record
func (r *SimulationRepository) Create(ctx context.Context, sim *domain.Simulation) error {
	if sim.ID == "" {
		sim.ID = uuid.New().String()
	}
	now := time.Now()
	if sim.CreatedAt.IsZero() {
		sim.CreatedAt = now
	}
	if sim.UpdatedAt.IsZero() {
		sim.UpdatedAt = now
	}

	data, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("failed to marshal simulation: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.simKey(sim.ID), data, 0)
	pipe.SAdd(ctx, r.ownerSimSetKey(sim.OwnerID), sim.ID)
	if sim.Status == domain.StatusRunning {
		pipe.SAdd(ctx, runningSetKey, sim.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}

	return nil
}

// GetByID retrieves a simulation by ID, verifying ownership. A record that
// exists under a different owner is reported as not found.
func (r *SimulationRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Simulation, error) {
	data, err := r.client.Get(ctx, r.simKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSimulationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation: %w", err)
	}

	var sim domain.Simulation
	if err := json.Unmarshal([]byte(data), &sim); err != nil {
		return nil, fmt.Errorf("failed to unmarshal simulation: %w", err)
	}

	if sim.OwnerID != ownerID {
		return nil, domain.ErrSimulationNotFound
	}

	return &sim, nil
}

// ListByOwner retrieves all simulations for an owner, newest first.
func (r *SimulationRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Simulation, error) {
	ids, err := r.client.SMembers(ctx, r.ownerSimSetKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations for owner: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Simulation{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.simKey(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch simulations: %w", err)
	}

	sims := make([]*domain.Simulation, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// Index entry without a record, skip it
			continue
		}
		var sim domain.Simulation
		if err := json.Unmarshal([]byte(s), &sim); err != nil {
			continue
		}
		sims = append(sims, &sim)
	}

	sort.Slice(sims, func(i, j int) bool {
		return sims[i].CreatedAt.After(sims[j].CreatedAt)
	})

	return sims, nil
}

// Update persists changes to an existing simulation and refreshes UpdatedAt.
// Membership in the running set follows the new status.
func (r *SimulationRepository) Update(ctx context.Context, sim *domain.Simulation) error {
	sim.UpdatedAt = time.Now()

	data, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("failed to marshal simulation: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.simKey(sim.ID), data, 0)
	if sim.Status == domain.StatusRunning {
		pipe.SAdd(ctx, runningSetKey, sim.ID)
	} else {
		pipe.SRem(ctx, runningSetKey, sim.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update simulation: %w", err)
	}

	return nil
}

// Delete removes a simulation and cascades deletion of its metric samples.
func (r *SimulationRepository) Delete(ctx context.Context, sim *domain.Simulation) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.simKey(sim.ID))
	pipe.SRem(ctx, r.ownerSimSetKey(sim.OwnerID), sim.ID)
	pipe.SRem(ctx, runningSetKey, sim.ID)
	pipe.Del(ctx, metricsKey(sim.ID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete simulation: %w", err)
	}

	return nil
}

// ListRunning returns every simulation currently in RUNNING status, across
// all owners. Stale index entries are pruned as they are found.
func (r *SimulationRepository) ListRunning(ctx context.Context) ([]*domain.Simulation, error) {
	ids, err := r.client.SMembers(ctx, runningSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list running simulations: %w", err)
	}

	sims := make([]*domain.Simulation, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.Get(ctx, r.simKey(id)).Result()
		if err == redis.Nil {
			r.client.SRem(ctx, runningSetKey, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get simulation %s: %w", id, err)
		}

		var sim domain.Simulation
		if err := json.Unmarshal([]byte(data), &sim); err != nil {
			continue
		}
		if sim.Status != domain.StatusRunning {
			r.client.SRem(ctx, runningSetKey, id)
			continue
		}
		sims = append(sims, &sim)
	}

	return sims, nil
}

// Stats counts an owner's simulations grouped by status.
func (r *SimulationRepository) Stats(ctx context.Context, ownerID string) (*domain.Stats, error) {
	sims, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{Total: len(sims)}
	for _, sim := range sims {
		switch sim.Status {
		case domain.StatusRunning:
			stats.Running++
		case domain.StatusStopped:
			stats.Stopped++
		case domain.StatusPaused:
			stats.Paused++
		}
	}

	return stats, nil
}

// Helper methods for key generation
func (r *SimulationRepository) simKey(id string) string {
	return fmt.Sprintf("%s%s", simKeyPrefix, id)
}

func (r *SimulationRepository) ownerSimSetKey(ownerID string) string {
	return fmt.Sprintf("%s%s:sims", ownerSimSetPrefix, ownerID)
}
