// Package sweep schedules the periodic trip status recomputation.
// It wires the status service to a cron schedule; the scheduler owns the
// cadence, the service owns the rule.
package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pkordes/itinerary/backend/internal/service"
)

// Runner drives StatusService.Sweep on a cron schedule.
type Runner struct {
	status *service.StatusService
	log    *slog.Logger
	cron   *cron.Cron
	now    func() time.Time
}

// New constructs a Runner. A nil now defaults to time.Now.
func New(status *service.StatusService, log *slog.Logger, now func() time.Time) *Runner {
	if now == nil {
		now = time.Now
	}
	return &Runner{
		status: status,
		log:    log,
		cron:   cron.New(),
		now:    now,
	}
}

// Start registers the sweep under the given cron expression (standard
// 5-field format) and starts the scheduler in its own goroutine. Returns an
// error only for an invalid expression.
func (r *Runner) Start(schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() { r.RunOnce(context.Background()) })
	if err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info("status sweep scheduled", "schedule", schedule)
	return nil
}

// RunOnce executes a single sweep with the current date. Errors are logged,
// not returned: a failed sweep is retried at the next tick, and the sweep
// itself already tolerates per-trip failures.
func (r *Runner) RunOnce(ctx context.Context) {
	res, err := r.status.Sweep(ctx, r.now())
	if err != nil {
		r.log.ErrorContext(ctx, "status sweep failed", "error", err)
		return
	}
	r.log.InfoContext(ctx, "status sweep run",
		"checked", res.Checked, "modified", res.Modified, "failed", res.Failed)
}

// Stop stops the scheduler, waiting for a running sweep to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}
