// Package service contains the business logic for the itinerary API.
// Services validate inputs, enforce the timeline invariants, and orchestrate
// repo calls. No SQL lives here — services depend on repo interfaces, not
// implementations, and run multi-row mutations through repo.Store.WithTx.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/itinerary/backend/internal/domain"
)

// impendingWindow is how close the start date must be for a trip to count
// as impending rather than not started.
const impendingWindow = 7 * 24 * time.Hour

// dateOnly strips the time-of-day component, keeping year/month/day in UTC.
// All status math and day scheduling compare calendar dates, never instants.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeStatus returns the date-driven status of a trip as a pure function
// of its range and today's date. Callers are responsible for skipping
// archived trips; ComputeStatus never returns StatusArchived.
//
// The rule, applied to calendar dates:
//   - end < today                      → completed
//   - start <= today <= end            → in progress
//   - today < start <= today + 7 days  → impending
//   - start > today + 7 days           → not started
func ComputeStatus(start, end, today time.Time) domain.TripStatus {
	start, end, today = dateOnly(start), dateOnly(end), dateOnly(today)
	horizon := today.Add(impendingWindow)

	switch {
	case end.Before(today):
		return domain.StatusCompleted
	case !start.After(today) && !end.Before(today):
		return domain.StatusInProgress
	case start.After(today) && !start.After(horizon):
		return domain.StatusImpending
	default:
		return domain.StatusNotStarted
	}
}

// applyDateStatus recomputes the trip's status in place when both dates are
// set. Archived trips are left alone: archiving is explicit and sticky.
func applyDateStatus(t *domain.Trip, today time.Time) {
	if !t.HasDates() || t.Status == domain.StatusArchived {
		return
	}
	t.Status = ComputeStatus(*t.StartDate, *t.EndDate, today)
}

// SweepResult reports what a status sweep did, for observability.
type SweepResult struct {
	Checked  int `json:"checked"`
	Modified int `json:"modified"`
	Failed   int `json:"failed"`
}

// StatusService recomputes trip statuses in bulk. It is invoked on a
// recurring schedule (daily is sufficient given the 7-day impending window)
// and is safe to run repeatedly: a second run on the same day modifies
// nothing.
type StatusService struct {
	store Store
	log   *slog.Logger
}

// NewStatusService constructs a StatusService backed by the provided store.
func NewStatusService(store Store, log *slog.Logger) *StatusService {
	return &StatusService{store: store, log: log}
}

// Sweep re-applies the date-driven status rule to every trip. Archived trips
// and trips without a complete date range are skipped. Each trip's update is
// its own atomic write, and a failure on one trip is logged and counted but
// never aborts the sweep.
func (s *StatusService) Sweep(ctx context.Context, today time.Time) (SweepResult, error) {
	trips, err := s.store.Repos().Trips.List(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("service.StatusService.Sweep: %w", err)
	}

	var res SweepResult
	for _, trip := range trips {
		res.Checked++

		if trip.Status == domain.StatusArchived || !trip.HasDates() {
			continue
		}

		next := ComputeStatus(*trip.StartDate, *trip.EndDate, today)
		if next == trip.Status {
			continue
		}

		if err := s.store.Repos().Trips.UpdateStatus(ctx, trip.ID, next); err != nil {
			res.Failed++
			s.log.ErrorContext(ctx, "status sweep: trip update failed",
				"trip_id", trip.ID, "error", err)
			continue
		}

		res.Modified++
		s.log.DebugContext(ctx, "status sweep: trip status changed",
			"trip_id", trip.ID, "from", trip.Status.String(), "to", next.String())
	}

	s.log.InfoContext(ctx, "status sweep completed",
		"checked", res.Checked, "modified", res.Modified, "failed", res.Failed)
	return res, nil
}
