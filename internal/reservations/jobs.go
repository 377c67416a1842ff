package reservations

import (
	"context"
	"log"
	"time"

	"campusmind/internal/shared/timeslot"
)

// JobProcessor runs the retention sweep that purges reservations older than
// the configured retention window.
type JobProcessor struct {
	repo   Repository
	config *JobConfig
	done   chan struct{}
}

// JobConfig contains configuration for reservation background jobs
type JobConfig struct {
	SweepInterval time.Duration
	RetentionDays int
	CampusTZ      *time.Location
}

// DefaultJobConfig returns default job configuration
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		SweepInterval: 1 * time.Hour,
		RetentionDays: 5,
		CampusTZ:      time.UTC,
	}
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(repo Repository, config *JobConfig) *JobProcessor {
	if config == nil {
		config = DefaultJobConfig()
	}

	return &JobProcessor{
		repo:   repo,
		config: config,
		done:   make(chan struct{}),
	}
}

// Start starts the retention sweeper
func (jp *JobProcessor) Start(ctx context.Context) {
	log.Println("Starting reservation background jobs...")
	go jp.startRetentionSweeper(ctx)
}

// Stop stops all background jobs
func (jp *JobProcessor) Stop() {
	log.Println("Stopping reservation background jobs...")
	close(jp.done)
}

func (jp *JobProcessor) startRetentionSweeper(ctx context.Context) {
	ticker := time.NewTicker(jp.config.SweepInterval)
	defer ticker.Stop()

	log.Printf("Started reservation retention sweeper with %v interval", jp.config.SweepInterval)

	// Run immediately on startup so a long-stopped instance catches up.
	jp.sweepExpired(ctx)

	for {
		select {
		case <-ticker.C:
			jp.sweepExpired(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// sweepExpired deletes reservations whose civil date fell out of the
// retention window, measured on the campus wall clock.
func (jp *JobProcessor) sweepExpired(ctx context.Context) {
	cutoff := time.Now().In(jp.config.CampusTZ).
		AddDate(0, 0, -jp.config.RetentionDays).
		Format(timeslot.DateLayout)

	purged, err := jp.repo.DeleteDatedBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Error sweeping expired reservations: %v", err)
		return
	}

	if purged > 0 {
		log.Printf("Purged %d reservations dated before %s", purged, cutoff)
	}
}
