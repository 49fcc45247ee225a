// Package demo seeds an owner's account with sample simulations and
// back-dated metrics so the dashboard has something to show on first visit.
package demo

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/repository"
)

// Seeder creates demo simulations through the regular store.
type Seeder struct {
	simRepo     *repository.SimulationRepository
	metricsRepo *repository.MetricsRepository
}

func NewSeeder(simRepo *repository.SimulationRepository, metricsRepo *repository.MetricsRepository) *Seeder {
	return &Seeder{simRepo: simRepo, metricsRepo: metricsRepo}
}

// Seed populates the owner's account with four demo simulations plus 24
// hours of metrics at five-minute spacing for the running ones. It is
// idempotent: an owner who already has simulations is left untouched.
func (s *Seeder) Seed(ctx context.Context, ownerID string) ([]*domain.Simulation, error) {
	existing, err := s.simRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	now := time.Now()
	sims := []*domain.Simulation{
		{
			Name:        "Production Web Server",
			Description: "High-traffic e-commerce website with auto-scaling",
			Template:    domain.TemplateWebServer,
			Status:      domain.StatusRunning,
			Config: domain.SimulationConfig{
				Instances: 3, CPUCores: 4, MemoryGB: 8, StorageGB: 100,
				Region: "us-east-1", AutoScaling: true, LoadBalancer: true,
			},
			CreatedAt: now.Add(-7 * 24 * time.Hour),
			UpdatedAt: now,
			OwnerID:   ownerID,
		},
		{
			Name:        "Development Environment",
			Description: "Microservices development and testing environment",
			Template:    domain.TemplateMicroservices,
			Status:      domain.StatusStopped,
			Config: domain.SimulationConfig{
				Instances: 5, CPUCores: 2, MemoryGB: 4, StorageGB: 50,
				Region: "us-west-2", AutoScaling: false, LoadBalancer: true,
			},
			CreatedAt: now.Add(-3 * 24 * time.Hour),
			UpdatedAt: now.Add(-24 * time.Hour),
			OwnerID:   ownerID,
		},
		{
			Name:        "Load Testing Simulation",
			Description: "Testing auto-scaling behavior under high load",
			Template:    domain.TemplateAutoScaling,
			Status:      domain.StatusPaused,
			Config: domain.SimulationConfig{
				Instances: 2, CPUCores: 2, MemoryGB: 4, StorageGB: 30,
				Region: "eu-west-1", AutoScaling: true, LoadBalancer: true,
			},
			CreatedAt: now.Add(-2 * 24 * time.Hour),
			UpdatedAt: now.Add(-2 * time.Hour),
			OwnerID:   ownerID,
		},
		{
			Name:        "Disaster Recovery Test",
			Description: "Multi-region failover testing environment",
			Template:    domain.TemplateDisasterRecovery,
			Status:      domain.StatusRunning,
			Config: domain.SimulationConfig{
				Instances: 6, CPUCores: 4, MemoryGB: 16, StorageGB: 200,
				Region: "us-east-1", AutoScaling: false, LoadBalancer: true,
			},
			CreatedAt: now.Add(-5 * 24 * time.Hour),
			UpdatedAt: now,
			OwnerID:   ownerID,
		},
	}

	for _, sim := range sims {
		if err := s.simRepo.Create(ctx, sim); err != nil {
			return nil, err
		}
		if sim.Status == domain.StatusRunning {
			if err := s.backfillMetrics(ctx, sim, now); err != nil {
				return nil, err
			}
		}
	}

	return sims, nil
}

// backfillMetrics writes 24 hours of samples at five-minute spacing. The
// store's retention cap keeps only the most recent window.
func (s *Seeder) backfillMetrics(ctx context.Context, sim *domain.Simulation, now time.Time) error {
	const (
		hoursBack       = 24
		intervalMinutes = 5
	)
	totalPoints := hoursBack * 60 / intervalMinutes

	baseCPU, baseMem, baseNet, baseDisk := 30.0, 40.0, 500.0, 100.0
	switch sim.Template {
	case domain.TemplateWebServer:
		baseCPU, baseMem, baseNet, baseDisk = 45, 60, 800, 150
	case domain.TemplateDisasterRecovery:
		baseCPU, baseMem, baseNet, baseDisk = 70, 80, 1200, 300
	}

	for i := totalPoints; i >= 0; i-- {
		ts := now.Add(-time.Duration(i*intervalMinutes) * time.Minute)

		// Daily load curve peaking mid-afternoon, plus ±20% noise
		hourOfDay := float64(ts.Hour())
		daily := 0.7 + 0.6*math.Sin((hourOfDay-6)*math.Pi/12)
		noise := 0.8 + rand.Float64()*0.4

		sample := &domain.MetricSample{
			SimulationID: sim.ID,
			CPUUsage:     clamp(baseCPU*daily*noise, 5, 95),
			MemoryUsage:  clamp(baseMem*daily*noise, 10, 90),
			NetworkIO:    math.Max(50, baseNet*daily*noise),
			DiskIO:       math.Max(20, baseDisk*daily*noise),
			Timestamp:    ts,
		}
		if err := s.metricsRepo.Append(ctx, sample); err != nil {
			return err
		}
	}

	return nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
