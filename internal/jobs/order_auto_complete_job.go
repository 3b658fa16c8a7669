package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/solody/commerce-order-api/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderAutoCompleteJob periodically completes orders that have been sitting
// in fulfillment longer than the configured age.
type OrderAutoCompleteJob struct {
	handler   commands.CompleteStaleOrdersCommandHandler
	cron      *cron.Cron
	schedule  string
	olderThan time.Duration
	logger    *slog.Logger
}

// NewOrderAutoCompleteJob creates the auto-complete job. schedule is a
// standard five-field cron expression; olderThan is how long an order must
// have stayed in fulfillment before it is completed.
func NewOrderAutoCompleteJob(
	handler commands.CompleteStaleOrdersCommandHandler,
	schedule string,
	olderThan time.Duration,
	logger *slog.Logger,
) *OrderAutoCompleteJob {
	return &OrderAutoCompleteJob{
		handler:   handler,
		cron:      cron.New(),
		schedule:  schedule,
		olderThan: olderThan,
		logger:    logger.With("component", "order_auto_complete_job"),
	}
}

// Start schedules the auto-complete job.
func (j *OrderAutoCompleteJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewCompleteStaleOrdersCommand(j.olderThan)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order auto-complete job misconfigured", "error", err)
			return
		}

		completed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order auto-complete job failed", "error", err)
			return
		}
		if completed > 0 {
			j.logger.InfoContext(ctx, "Completed stale fulfillment orders", "count", completed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order auto-complete job started", "schedule", j.schedule)
	return nil
}

// Stop stops the auto-complete job.
func (j *OrderAutoCompleteJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order auto-complete job stopped")
}
