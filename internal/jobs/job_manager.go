package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/solody/commerce-order-api/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderAutoCompleteJob *OrderAutoCompleteJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	completeStaleOrdersHandler commands.CompleteStaleOrdersCommandHandler,
	autoCompleteSchedule string,
	autoCompleteAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderAutoCompleteJob: NewOrderAutoCompleteJob(
			completeStaleOrdersHandler, autoCompleteSchedule, autoCompleteAge, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderAutoCompleteJob.Start(); err != nil {
		return fmt.Errorf("failed to start order auto-complete job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderAutoCompleteJob.Stop()
}
