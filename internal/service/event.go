package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/repo"
)

// EventService implements business logic for Event operations, including
// day pairing, the same-day time swap, and the main arrival/departure
// transfers.
type EventService struct {
	store Store
}

// NewEventService constructs an EventService backed by the provided store.
func NewEventService(store Store) *EventService {
	return &EventService{store: store}
}

// Create validates the event, verifies the parent trip (and day, when set)
// exist and agree, then persists. When the event names a day that belongs
// to a different trip, the day's trip wins — the event is re-homed rather
// than rejected, keeping "day set ⇒ same trip" true by construction.
func (s *EventService) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	var created domain.Event
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, event.TripID); err != nil {
			return fmt.Errorf("service.EventService.Create: %w", err)
		}
		if event.DayID != nil {
			day, err := r.Days.GetByID(ctx, *event.DayID)
			if err != nil {
				return fmt.Errorf("service.EventService.Create: %w", err)
			}
			event.TripID = day.TripID
		}

		var err error
		created, err = r.Events.Create(ctx, event)
		if err != nil {
			return fmt.Errorf("service.EventService.Create: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return created, nil
}

// GetByID returns a single event by ID.
func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	event, err := s.store.Repos().Events.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.GetByID: %w", err)
	}
	return event, nil
}

// ListByDay returns the day's events in schedule order with overlap flags
// set. Always returns a non-nil slice so callers can safely range over it.
func (s *EventService) ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.Event, error) {
	events, err := s.store.Repos().Events.ListByDay(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.ListByDay: %w", err)
	}
	if events == nil {
		return []domain.Event{}, nil
	}
	return AnnotateOverlaps(events), nil
}

// ListUnpaired returns the trip's events that are not placed on any day.
func (s *EventService) ListUnpaired(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error) {
	events, err := s.store.Repos().Events.ListUnpairedByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.ListUnpaired: %w", err)
	}
	if events == nil {
		return []domain.Event{}, nil
	}
	return events, nil
}

// Update validates and persists changes to an existing event, re-deriving
// the trip from the day when one is set.
func (s *EventService) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	var updated domain.Event
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		if event.DayID != nil {
			day, err := r.Days.GetByID(ctx, *event.DayID)
			if err != nil {
				return fmt.Errorf("service.EventService.Update: %w", err)
			}
			event.TripID = day.TripID
		}

		var err error
		updated, err = r.Events.Update(ctx, event)
		if err != nil {
			return fmt.Errorf("service.EventService.Update: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return updated, nil
}

// Pair places an unpaired event on a day of its trip.
func (s *EventService) Pair(ctx context.Context, eventID, dayID uuid.UUID) error {
	return s.store.WithTx(ctx, func(r repo.Repos) error {
		event, err := r.Events.GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("service.EventService.Pair: %w", err)
		}
		if event.IsMainTransfer {
			return fmt.Errorf("%w: main transfers cannot be assigned to a specific day", domain.ErrValidation)
		}
		day, err := r.Days.GetByID(ctx, dayID)
		if err != nil {
			return fmt.Errorf("service.EventService.Pair: %w", err)
		}
		if day.TripID != event.TripID {
			return fmt.Errorf("%w: day belongs to a different trip", domain.ErrValidation)
		}
		if err := r.Events.SetDay(ctx, eventID, &dayID); err != nil {
			return fmt.Errorf("service.EventService.Pair: %w", err)
		}
		return nil
	})
}

// Unpair removes an event from its day, returning it to the trip backlog.
func (s *EventService) Unpair(ctx context.Context, eventID uuid.UUID) error {
	if err := s.store.Repos().Events.SetDay(ctx, eventID, nil); err != nil {
		return fmt.Errorf("service.EventService.Unpair: %w", err)
	}
	return nil
}

// SwapTimes exchanges the start and end times of two events. Both must be
// placed on the same day; the two writes are one atomic unit.
func (s *EventService) SwapTimes(ctx context.Context, aID, bID uuid.UUID) error {
	if aID == bID {
		return fmt.Errorf("%w: cannot swap an event with itself", domain.ErrValidation)
	}
	return s.store.WithTx(ctx, func(r repo.Repos) error {
		a, err := r.Events.GetByID(ctx, aID)
		if err != nil {
			return fmt.Errorf("service.EventService.SwapTimes: %w", err)
		}
		b, err := r.Events.GetByID(ctx, bID)
		if err != nil {
			return fmt.Errorf("service.EventService.SwapTimes: %w", err)
		}
		if a.DayID == nil || b.DayID == nil || *a.DayID != *b.DayID {
			return fmt.Errorf("%w: can only swap events within the same day", domain.ErrValidation)
		}

		if err := r.Events.SetTimes(ctx, a.ID, b.StartTime, b.EndTime); err != nil {
			return fmt.Errorf("service.EventService.SwapTimes: %w", err)
		}
		if err := r.Events.SetTimes(ctx, b.ID, a.StartTime, a.EndTime); err != nil {
			return fmt.Errorf("service.EventService.SwapTimes: %w", err)
		}
		return nil
	})
}

// SaveMainTransfer creates or replaces the trip's arrival or departure
// transfer. Main transfers are transport events with no day; at most one
// exists per trip and direction.
func (s *EventService) SaveMainTransfer(ctx context.Context, event domain.Event) (domain.Event, error) {
	event.IsMainTransfer = true
	event.DayID = nil
	event.Category = domain.CategoryTransport

	if event.Direction == nil || !event.Direction.Valid() {
		return domain.Event{}, fmt.Errorf("%w: main transfers must have a direction (arrival or departure)", domain.ErrValidation)
	}
	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	var saved domain.Event
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, event.TripID); err != nil {
			return fmt.Errorf("service.EventService.SaveMainTransfer: %w", err)
		}

		existing, err := r.Events.FindMainTransfer(ctx, event.TripID, *event.Direction)
		switch {
		case err == nil && existing.ID != event.ID:
			return fmt.Errorf("%w: a %s transfer already exists for this trip", domain.ErrValidation, event.Direction.String())
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("service.EventService.SaveMainTransfer: %w", err)
		}

		if event.ID == uuid.Nil {
			saved, err = r.Events.Create(ctx, event)
		} else {
			saved, err = r.Events.Update(ctx, event)
		}
		if err != nil {
			return fmt.Errorf("service.EventService.SaveMainTransfer: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return saved, nil
}

// GetMainTransfer returns the trip's main transfer for one direction.
func (s *EventService) GetMainTransfer(ctx context.Context, tripID uuid.UUID, dir domain.TransferDirection) (domain.Event, error) {
	event, err := s.store.Repos().Events.FindMainTransfer(ctx, tripID, dir)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.GetMainTransfer: %w", err)
	}
	return event, nil
}

// Delete removes an event by ID. Transfers touching it cascade.
func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Repos().Events.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	return nil
}

// validateEvent enforces business rules common to Create and Update.
//   - Name must be non-empty.
//   - Category must be valid and the detail payload must match it.
//   - Only main transfers carry a direction, and they never sit on a day.
//
// End before start is allowed: overnight transports legitimately end on the
// clock before they begin.
func validateEvent(event domain.Event) error {
	if event.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !event.Category.Valid() {
		return fmt.Errorf("%w: unknown category", domain.ErrValidation)
	}
	if err := validateDetail(event.Category, event.Detail); err != nil {
		return err
	}

	if event.IsMainTransfer {
		if event.DayID != nil {
			return fmt.Errorf("%w: main transfers cannot be assigned to a specific day", domain.ErrValidation)
		}
		if event.Direction == nil {
			return fmt.Errorf("%w: main transfers must have a direction (arrival or departure)", domain.ErrValidation)
		}
	} else if event.Direction != nil {
		return fmt.Errorf("%w: only main transfers can have a direction", domain.ErrValidation)
	}

	return nil
}

// validateDetail checks that exactly the payload member matching the
// category is present.
func validateDetail(cat domain.EventCategory, d domain.EventDetail) error {
	var want, others bool
	switch cat {
	case domain.CategoryTransport:
		want, others = d.Transport != nil, d.Experience != nil || d.Meal != nil
	case domain.CategoryExperience:
		want, others = d.Experience != nil, d.Transport != nil || d.Meal != nil
	case domain.CategoryMeal:
		want, others = d.Meal != nil, d.Transport != nil || d.Experience != nil
	}
	if !want {
		return fmt.Errorf("%w: missing %s detail", domain.ErrValidation, cat.String())
	}
	if others {
		return fmt.Errorf("%w: detail does not match category %s", domain.ErrValidation, cat.String())
	}
	return nil
}
