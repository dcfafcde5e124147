package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	importBatchJob *ImportBatchJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	processor batchProcessor,
	pollInterval time.Duration,
	maxBatchesPerTick int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		importBatchJob: NewImportBatchJob(processor, pollInterval, maxBatchesPerTick, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.importBatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start import batch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully, waiting for running ticks.
func (jm *JobManager) StopAll() {
	jm.importBatchJob.Stop()
}
