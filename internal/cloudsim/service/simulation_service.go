package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/repository"
)

// Sampler produces one resource snapshot per call. Implementations must not
// fail: a sample is always returned.
type Sampler interface {
	Sample(simulationID string) *domain.MetricSample
}

// SimulationService handles business logic for simulations: CRUD over the
// store and the lifecycle state machine for control actions.
type SimulationService struct {
	simRepo     *repository.SimulationRepository
	metricsRepo *repository.MetricsRepository
	archive     *repository.MetricsArchiveRepository // optional, nil when archive is disabled
	sampler     Sampler

	// Per-simulation locks serialize read-decide-write transitions so two
	// rapid control actions cannot both pass their precondition check.
	locks sync.Map
}

// NewSimulationService creates a new SimulationService. archive may be nil.
func NewSimulationService(
	simRepo *repository.SimulationRepository,
	metricsRepo *repository.MetricsRepository,
	archive *repository.MetricsArchiveRepository,
	sampler Sampler,
) *SimulationService {
	return &SimulationService{
		simRepo:     simRepo,
		metricsRepo: metricsRepo,
		archive:     archive,
		sampler:     sampler,
	}
}

// Create validates the request and persists a new simulation. The status is
// always STOPPED regardless of caller input.
func (s *SimulationService) Create(ctx context.Context, req *domain.CreateSimulationRequest) (*domain.Simulation, error) {
	if err := domain.ValidateCreate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	sim := &domain.Simulation{
		Name:        req.Name,
		Description: req.Description,
		Template:    req.Template,
		Status:      domain.StatusStopped,
		Config:      req.Config,
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerID:     req.OwnerID,
	}

	if err := s.simRepo.Create(ctx, sim); err != nil {
		return nil, err
	}

	return sim, nil
}

// Get retrieves a simulation scoped to its owner.
func (s *SimulationService) Get(ctx context.Context, id, ownerID string) (*domain.Simulation, error) {
	return s.simRepo.GetByID(ctx, id, ownerID)
}

// List retrieves all of an owner's simulations, newest first.
func (s *SimulationService) List(ctx context.Context, ownerID string) ([]*domain.Simulation, error) {
	return s.simRepo.ListByOwner(ctx, ownerID)
}

// Update applies a partial update. Config changes are merged field by field;
// omitted sub-fields keep their current values.
func (s *SimulationService) Update(ctx context.Context, id, ownerID string, req *domain.UpdateSimulationRequest) (*domain.Simulation, error) {
	if err := domain.ValidateUpdate(req); err != nil {
		return nil, err
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	sim, err := s.simRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sim.Name = *req.Name
	}
	if req.Description != nil {
		sim.Description = *req.Description
	}
	req.Config.ApplyTo(&sim.Config)

	if err := s.simRepo.Update(ctx, sim); err != nil {
		return nil, err
	}

	return sim, nil
}

// Delete removes a simulation and all of its metric samples. Deletion is
// rejected while the simulation is RUNNING.
func (s *SimulationService) Delete(ctx context.Context, id, ownerID string) error {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	sim, err := s.simRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if sim.Status == domain.StatusRunning {
		return domain.ErrSimulationRunning
	}

	if err := s.simRepo.Delete(ctx, sim); err != nil {
		return err
	}

	if s.archive != nil {
		if err := s.archive.DeleteBySimulationID(ctx, id); err != nil {
			log.Printf("Failed to delete archived metrics for %s: %v", id, err)
		}
	}

	s.locks.Delete(id)
	return nil
}

// Control applies a lifecycle action and returns the updated record with a
// human-readable status message.
//
// Transitions: start is legal from any state except RUNNING, stop from any
// state except STOPPED, pause only from RUNNING, and restart always
// succeeds. Any transition into RUNNING takes one metric sample
// synchronously before returning.
func (s *SimulationService) Control(ctx context.Context, id, ownerID string, action domain.Action) (*domain.Simulation, string, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	sim, err := s.simRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, "", err
	}

	var newStatus domain.Status
	var message string

	switch action {
	case domain.ActionStart:
		if sim.Status == domain.StatusRunning {
			return nil, "", domain.ErrAlreadyRunning
		}
		newStatus = domain.StatusRunning
		message = "Simulation started successfully"

	case domain.ActionStop:
		if sim.Status == domain.StatusStopped {
			return nil, "", domain.ErrAlreadyStopped
		}
		newStatus = domain.StatusStopped
		message = "Simulation stopped successfully"

	case domain.ActionPause:
		if sim.Status != domain.StatusRunning {
			return nil, "", domain.ErrNotRunning
		}
		newStatus = domain.StatusPaused
		message = "Simulation paused successfully"

	case domain.ActionRestart:
		newStatus = domain.StatusRunning
		message = "Simulation restarted successfully"

	default:
		return nil, "", domain.ErrInvalidAction
	}

	sim.Status = newStatus
	if err := s.simRepo.Update(ctx, sim); err != nil {
		return nil, "", err
	}

	// Entering RUNNING produces an initial sample so the dashboard has a
	// data point immediately
	if newStatus == domain.StatusRunning {
		if err := s.recordSample(ctx, sim.ID); err != nil {
			log.Printf("Failed to record initial sample for %s: %v", sim.ID, err)
		}
	}

	return sim, message, nil
}

// ListMetrics returns the retained samples for an owner's simulation, most
// recent first, truncated to limit (default 50).
func (s *SimulationService) ListMetrics(ctx context.Context, id, ownerID string, limit int) ([]*domain.MetricSample, error) {
	if _, err := s.simRepo.GetByID(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return s.metricsRepo.List(ctx, id, limit)
}

// ArchivedMetrics returns the long-range history for an owner's simulation
// from the Postgres archive. Returns an empty slice when no archive is
// configured.
func (s *SimulationService) ArchivedMetrics(ctx context.Context, id, ownerID string, from, to *time.Time) ([]*domain.MetricSample, error) {
	if _, err := s.simRepo.GetByID(ctx, id, ownerID); err != nil {
		return nil, err
	}
	if s.archive == nil {
		return []*domain.MetricSample{}, nil
	}
	return s.archive.GetBySimulationID(ctx, id, from, to)
}

// Stats returns the owner's simulation counts grouped by status.
func (s *SimulationService) Stats(ctx context.Context, ownerID string) (*domain.Stats, error) {
	return s.simRepo.Stats(ctx, ownerID)
}

// SampleRunning takes one sample for every RUNNING simulation. A failure on
// one simulation is logged and does not abort sampling of the others.
func (s *SimulationService) SampleRunning(ctx context.Context) error {
	sims, err := s.simRepo.ListRunning(ctx)
	if err != nil {
		return err
	}

	var archived []*domain.MetricSample
	for _, sim := range sims {
		sample := s.sampler.Sample(sim.ID)
		if err := s.metricsRepo.Append(ctx, sample); err != nil {
			log.Printf("Failed to append sample for %s: %v", sim.ID, err)
			continue
		}
		archived = append(archived, sample)
	}

	if s.archive != nil && len(archived) > 0 {
		if err := s.archive.InsertBatch(ctx, archived); err != nil {
			log.Printf("Failed to archive %d samples: %v", len(archived), err)
		}
	}

	return nil
}

func (s *SimulationService) recordSample(ctx context.Context, simulationID string) error {
	sample := s.sampler.Sample(simulationID)
	if err := s.metricsRepo.Append(ctx, sample); err != nil {
		return err
	}
	if s.archive != nil {
		if err := s.archive.InsertBatch(ctx, []*domain.MetricSample{sample}); err != nil {
			log.Printf("Failed to archive sample for %s: %v", simulationID, err)
		}
	}
	return nil
}

func (s *SimulationService) lockFor(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
