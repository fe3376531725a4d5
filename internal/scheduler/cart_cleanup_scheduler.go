package scheduler

import (
	"fmt"

	"github.com/ikkim/storefeed/pkg/logger"
	"github.com/robfig/cron/v3"
)

// OrphanPurger removes cart lines whose product no longer exists
type OrphanPurger interface {
	PurgeOrphanedItems() (int64, error)
}

// CartCleanupScheduler periodically purges cart lines that point at deleted products
type CartCleanupScheduler struct {
	cron     *cron.Cron
	purger   OrphanPurger
	schedule string
}

// NewCartCleanupScheduler accepts any robfig/cron schedule, including "@every 1h"
func NewCartCleanupScheduler(purger OrphanPurger, schedule string) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:     cron.New(),
		purger:   purger,
		schedule: schedule,
	}
}

// Start registers the job and starts the cron runner
func (s *CartCleanupScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return fmt.Errorf("invalid cart cleanup schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// RunOnce performs a single purge
func (s *CartCleanupScheduler) RunOnce() {
	removed, err := s.purger.PurgeOrphanedItems()
	if err != nil {
		logger.Error("Failed to purge orphaned cart items", err)
		return
	}
	if removed > 0 {
		logger.Info("Purged orphaned cart items", map[string]interface{}{
			"removed": removed,
		})
	}
}

// Stop waits for a running job to finish
func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Cart cleanup scheduler stopped")
}
