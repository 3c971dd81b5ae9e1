package jobs

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"nanotasks/internal/services"
)

// StatsSnapshotJob periodically persists platform-wide counters for the
// admin dashboard history.
type StatsSnapshotJob struct {
	service *services.StatsService
}

// NewStatsSnapshotJob creates a new StatsSnapshotJob
func NewStatsSnapshotJob(db *gorm.DB) *StatsSnapshotJob {
	return &StatsSnapshotJob{
		service: services.NewStatsService(db),
	}
}

// Start begins the periodic snapshot job
func (j *StatsSnapshotJob) Start(interval time.Duration) {
	go func() {
		// Run immediately on start
		ctx := context.Background()
		if _, err := j.service.Snapshot(ctx); err != nil {
			log.Printf("Initial stats snapshot error: %v", err)
		}

		// Then run periodically
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := j.service.Snapshot(ctx); err != nil {
				log.Printf("Stats snapshot error: %v", err)
			}
		}
	}()
}
