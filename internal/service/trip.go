package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/repo"
)

// TripService implements business logic for Trip operations. Every save
// recomputes the date-driven status and reconciles the day rows in the same
// transaction, so the trip's timeline is never out of step with its range.
//
// The current date is supplied by the injected now func rather than read
// ambiently, keeping status computation deterministic under test.
type TripService struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewTripService constructs a TripService backed by the provided store.
// A nil now defaults to time.Now.
func NewTripService(store Store, log *slog.Logger, now func() time.Time) *TripService {
	if now == nil {
		now = time.Now
	}
	return &TripService{store: store, log: log, now: now}
}

// TripDetail is the assembled view of one trip: days in order, each with
// its overlap-annotated events and resolved stay, plus the unpaired event
// backlog, the trip's stays, and its saved links.
type TripDetail struct {
	Trip     domain.Trip    `json:"trip"`
	Days     []DayDetail    `json:"days"`
	Unpaired []domain.Event `json:"unpaired_events"`
	Stays    []domain.Stay  `json:"stays"`
	Links    []domain.Link  `json:"links"`
}

// DayDetail is one day of the itinerary with its schedule.
type DayDetail struct {
	Day    domain.Day     `json:"day"`
	Stay   *domain.Stay   `json:"stay,omitempty"`
	Events []domain.Event `json:"events"`
}

// Create validates and persists a new trip. When both dates are set the
// status is computed from them and the day rows are generated atomically
// with the insert.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	if trip.Status == 0 {
		trip.Status = domain.StatusNotStarted
	}
	applyDateStatus(&trip, s.now())

	var created domain.Trip
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		var err error
		created, err = r.Trips.Create(ctx, trip)
		if err != nil {
			return fmt.Errorf("service.TripService.Create: %w", err)
		}
		return scheduleDays(ctx, r.Days, created)
	})
	if err != nil {
		return domain.Trip{}, err
	}
	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.store.Repos().Trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.store.Repos().Trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of trips plus the total count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.store.Repos().Trips.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip, recomputing
// the status and rescheduling the day rows in the same transaction. An
// archived trip stays archived regardless of its dates.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	var updated domain.Trip
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		current, err := r.Trips.GetByID(ctx, trip.ID)
		if err != nil {
			return fmt.Errorf("service.TripService.Update: %w", err)
		}

		trip.Status = current.Status
		applyDateStatus(&trip, s.now())

		updated, err = r.Trips.Update(ctx, trip)
		if err != nil {
			return fmt.Errorf("service.TripService.Update: %w", err)
		}
		return scheduleDays(ctx, r.Days, updated)
	})
	if err != nil {
		return domain.Trip{}, err
	}
	return updated, nil
}

// Archive marks the trip archived. The state is sticky: date-driven
// recomputation skips archived trips until Unarchive is called.
func (s *TripService) Archive(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return s.setArchived(ctx, id, true)
}

// Unarchive clears the archived state, recomputing the status from the
// trip's dates (falling back to not started when dates are unset).
func (s *TripService) Unarchive(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return s.setArchived(ctx, id, false)
}

func (s *TripService) setArchived(ctx context.Context, id uuid.UUID, archived bool) (domain.Trip, error) {
	var result domain.Trip
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("service.TripService.setArchived: %w", err)
		}

		if archived {
			trip.Status = domain.StatusArchived
		} else {
			trip.Status = domain.StatusNotStarted
			applyDateStatus(&trip, s.now())
		}

		if err := r.Trips.UpdateStatus(ctx, id, trip.Status); err != nil {
			return fmt.Errorf("service.TripService.setArchived: %w", err)
		}
		result = trip
		return nil
	})
	if err != nil {
		return domain.Trip{}, err
	}
	return result, nil
}

// Delete removes a trip by ID. Days, events, and transfers cascade.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Repos().Trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Detail assembles the full itinerary view for one trip.
func (s *TripService) Detail(ctx context.Context, id uuid.UUID) (TripDetail, error) {
	r := s.store.Repos()

	trip, err := r.Trips.GetByID(ctx, id)
	if err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.Detail: %w", err)
	}

	days, err := r.Days.ListByTrip(ctx, id)
	if err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.Detail: %w", err)
	}

	stays, err := r.Stays.ListByTrip(ctx, id)
	if err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.Detail: %w", err)
	}
	staysByID := make(map[uuid.UUID]domain.Stay, len(stays))
	for _, st := range stays {
		staysByID[st.ID] = st
	}

	detail := TripDetail{
		Trip:     trip,
		Days:     make([]DayDetail, 0, len(days)),
		Unpaired: []domain.Event{},
		Stays:    stays,
		Links:    []domain.Link{},
	}
	if detail.Stays == nil {
		detail.Stays = []domain.Stay{}
	}

	for _, day := range days {
		events, err := r.Events.ListByDay(ctx, day.ID)
		if err != nil {
			return TripDetail{}, fmt.Errorf("service.TripService.Detail: day %d: %w", day.Number, err)
		}
		dd := DayDetail{Day: day, Events: AnnotateOverlaps(events)}
		if dd.Events == nil {
			dd.Events = []domain.Event{}
		}
		if day.StayID != nil {
			if st, ok := staysByID[*day.StayID]; ok {
				dd.Stay = &st
			}
		}
		detail.Days = append(detail.Days, dd)
	}

	if unpaired, err := r.Events.ListUnpairedByTrip(ctx, id); err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.Detail: %w", err)
	} else if unpaired != nil {
		detail.Unpaired = unpaired
	}

	if links, err := r.Links.ListByTrip(ctx, id); err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.Detail: %w", err)
	} else if links != nil {
		detail.Links = links
	}

	return detail, nil
}

// AddLink saves a URL for the trip's author and attaches it to the trip.
func (s *TripService) AddLink(ctx context.Context, tripID uuid.UUID, title, url string) (domain.Link, error) {
	if strings.TrimSpace(url) == "" {
		return domain.Link{}, fmt.Errorf("%w: url is required", domain.ErrValidation)
	}

	var link domain.Link
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetByID(ctx, tripID)
		if err != nil {
			return fmt.Errorf("service.TripService.AddLink: %w", err)
		}
		link, err = r.Links.Upsert(ctx, trip.AuthorID, strings.TrimSpace(title), strings.TrimSpace(url))
		if err != nil {
			return fmt.Errorf("service.TripService.AddLink: %w", err)
		}
		if err := r.Links.AddToTrip(ctx, tripID, link.ID); err != nil {
			return fmt.Errorf("service.TripService.AddLink: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Link{}, err
	}
	return link, nil
}

// RemoveLink detaches a link from a trip.
func (s *TripService) RemoveLink(ctx context.Context, tripID, linkID uuid.UUID) error {
	if err := s.store.Repos().Links.RemoveFromTrip(ctx, tripID, linkID); err != nil {
		return fmt.Errorf("service.TripService.RemoveLink: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Title and destination must be non-empty.
//   - When both dates are set, end must not be before start.
//   - Dates must be set or unset together.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if (trip.StartDate == nil) != (trip.EndDate == nil) {
		return fmt.Errorf("%w: start date and end date must be set together", domain.ErrValidation)
	}
	if trip.HasDates() && dateOnly(*trip.EndDate).Before(dateOnly(*trip.StartDate)) {
		return fmt.Errorf("%w", domain.ErrInvalidRange)
	}
	return nil
}
