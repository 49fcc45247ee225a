package demo

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/repository"
)

func setupSeeder(t *testing.T) (*Seeder, *repository.SimulationRepository, *repository.MetricsRepository, *miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	simRepo := repository.NewSimulationRepository(client)
	metricsRepo := repository.NewMetricsRepository(client)
	return NewSeeder(simRepo, metricsRepo), simRepo, metricsRepo, mr, client
}

func TestSeeder_Seed(t *testing.T) {
	seeder, simRepo, metricsRepo, mr, client := setupSeeder(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	t.Run("creates four demo simulations", func(t *testing.T) {
		sims, err := seeder.Seed(ctx, "user123")
		require.NoError(t, err)
		require.Len(t, sims, 4)

		byStatus := make(map[domain.Status]int)
		for _, sim := range sims {
			assert.Equal(t, "user123", sim.OwnerID)
			assert.NotEmpty(t, sim.ID)
			byStatus[sim.Status]++
		}
		assert.Equal(t, 2, byStatus[domain.StatusRunning])
		assert.Equal(t, 1, byStatus[domain.StatusStopped])
		assert.Equal(t, 1, byStatus[domain.StatusPaused])
	})

	t.Run("backfills metrics for running simulations", func(t *testing.T) {
		sims, err := simRepo.ListByOwner(ctx, "user123")
		require.NoError(t, err)

		for _, sim := range sims {
			n, err := metricsRepo.Count(ctx, sim.ID)
			require.NoError(t, err)
			if sim.Status == domain.StatusRunning {
				// 24h at 5min spacing exceeds the cap, so the cap holds
				assert.Equal(t, int64(repository.RetentionCap), n, sim.Name)
			} else {
				assert.Zero(t, n, sim.Name)
			}
		}
	})

	t.Run("backfilled samples respect the stored bounds", func(t *testing.T) {
		sims, err := simRepo.ListByOwner(ctx, "user123")
		require.NoError(t, err)

		for _, sim := range sims {
			if sim.Status != domain.StatusRunning {
				continue
			}
			samples, err := metricsRepo.List(ctx, sim.ID, repository.RetentionCap)
			require.NoError(t, err)
			for _, s := range samples {
				assert.GreaterOrEqual(t, s.CPUUsage, 5.0)
				assert.LessOrEqual(t, s.CPUUsage, 95.0)
				assert.GreaterOrEqual(t, s.MemoryUsage, 10.0)
				assert.LessOrEqual(t, s.MemoryUsage, 90.0)
			}
		}
	})

	t.Run("idempotent for seeded owners", func(t *testing.T) {
		again, err := seeder.Seed(ctx, "user123")
		require.NoError(t, err)
		assert.Len(t, again, 4)

		sims, err := simRepo.ListByOwner(ctx, "user123")
		require.NoError(t, err)
		assert.Len(t, sims, 4)
	})

	t.Run("independent per owner", func(t *testing.T) {
		sims, err := seeder.Seed(ctx, "user456")
		require.NoError(t, err)
		assert.Len(t, sims, 4)

		mine, err := simRepo.ListByOwner(ctx, "user123")
		require.NoError(t, err)
		assert.Len(t, mine, 4)
	})
}
