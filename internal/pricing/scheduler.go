package pricing

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the nightly rate refresh.
type Scheduler struct {
	refresher *AWSRefresher
	cron      *cron.Cron
}

func NewScheduler(refresher *AWSRefresher) *Scheduler {
	return &Scheduler{refresher: refresher}
}

// Start initializes the cron task (12:00 AM nightly).
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := s.refresher.Refresh(ctx); err != nil {
			log.Printf("Nightly pricing refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Failed to create pricing cron job: %v", err)
		return
	}

	s.cron = c
	log.Println("Pricing refresh scheduler started (nightly at 12:00AM)")
	c.Start()
}

// Stop cancels the schedule and waits for an in-flight refresh.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron = nil
}
