package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/repo"
)

// scheduleDays reconciles a trip's day rows against its date range. It must
// run inside the same transaction as the trip write so the day set and the
// range are never observably out of sync.
//
// Days are keyed by calendar date, not by number: a day whose date survives
// a range shift keeps its row, and with it every linked event and its stay
// reference — it is only renumbered. Missing dates get new rows; dates that
// fell out of the range are deleted, with their events detached back to the
// trip's unpaired backlog by the schema.
//
// A trip without both dates keeps whatever days it has; scheduling only
// applies to complete ranges.
func scheduleDays(ctx context.Context, days repo.DayRepo, trip domain.Trip) error {
	if !trip.HasDates() {
		return nil
	}
	start, end := dateOnly(*trip.StartDate), dateOnly(*trip.EndDate)
	if end.Before(start) {
		return fmt.Errorf("service.scheduleDays: %w: %s > %s",
			domain.ErrInvalidRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	existing, err := days.ListByTrip(ctx, trip.ID)
	if err != nil {
		return fmt.Errorf("service.scheduleDays: %w", err)
	}

	byDate := make(map[string]domain.Day, len(existing))
	for _, d := range existing {
		byDate[dateOnly(d.Date).Format(time.DateOnly)] = d
	}

	total := int(end.Sub(start).Hours()/24) + 1
	wanted := make(map[string]bool, total)

	for i := 0; i < total; i++ {
		date := start.AddDate(0, 0, i)
		key := date.Format(time.DateOnly)
		wanted[key] = true
		number := i + 1

		day, ok := byDate[key]
		if !ok {
			if _, err := days.Create(ctx, domain.Day{TripID: trip.ID, Number: number, Date: date}); err != nil {
				return fmt.Errorf("service.scheduleDays: create day %d: %w", number, err)
			}
			continue
		}
		if day.Number != number {
			if err := days.Renumber(ctx, day.ID, number); err != nil {
				return fmt.Errorf("service.scheduleDays: renumber day %s: %w", key, err)
			}
		}
	}

	// Days whose date fell outside the new range are removed. Their events
	// are detached (day_id set NULL) by the schema, not deleted.
	for key, day := range byDate {
		if wanted[key] {
			continue
		}
		if err := days.Delete(ctx, day.ID); err != nil {
			return fmt.Errorf("service.scheduleDays: delete stale day %s: %w", key, err)
		}
	}

	return nil
}
