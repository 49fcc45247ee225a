package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// SamplerLoop periodically re-samples every RUNNING simulation. It wraps a
// cron scheduler with second-level resolution so the interval can be as
// short as the default 5 seconds, and it is always stopped on shutdown so
// no timer outlives the process.
type SamplerLoop struct {
	service  *SimulationService
	interval time.Duration
	timeout  time.Duration
	cron     *cron.Cron
}

// NewSamplerLoop creates a new SamplerLoop. interval must be at least one
// second.
func NewSamplerLoop(service *SimulationService, interval time.Duration) *SamplerLoop {
	return &SamplerLoop{
		service:  service,
		interval: interval,
		timeout:  30 * time.Second,
	}
}

// Start schedules the sampling tick.
func (l *SamplerLoop) Start() error {
	if l.cron != nil {
		return fmt.Errorf("sampler loop already started")
	}

	c := cron.New(cron.WithSeconds())
	spec := fmt.Sprintf("@every %ds", int(l.interval.Seconds()))
	if _, err := c.AddFunc(spec, l.tick); err != nil {
		return fmt.Errorf("failed to schedule sampler: %w", err)
	}

	l.cron = c
	c.Start()
	log.Printf("Sampler loop started (every %s)", l.interval)
	return nil
}

// Stop cancels the schedule and waits for an in-flight tick to finish, so
// already-persisted samples are never dropped mid-write.
func (l *SamplerLoop) Stop() {
	if l.cron == nil {
		return
	}

	ctx := l.cron.Stop()
	<-ctx.Done()
	l.cron = nil
	log.Println("Sampler loop stopped")
}

func (l *SamplerLoop) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	if err := l.service.SampleRunning(ctx); err != nil {
		log.Printf("Sampler tick failed: %v", err)
	}
}
