package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/repo"
)

// StayService implements business logic for Stay operations, including the
// reassignment flow that runs before a referenced stay may be deleted.
type StayService struct {
	store Store
	log   *slog.Logger
}

// NewStayService constructs a StayService backed by the provided store.
func NewStayService(store Store, log *slog.Logger) *StayService {
	return &StayService{store: store, log: log}
}

// Create validates and persists a new stay.
func (s *StayService) Create(ctx context.Context, stay domain.Stay) (domain.Stay, error) {
	if err := validateStay(stay); err != nil {
		return domain.Stay{}, err
	}
	result, err := s.store.Repos().Stays.Create(ctx, stay)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("service.StayService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single stay by ID.
func (s *StayService) GetByID(ctx context.Context, id uuid.UUID) (domain.Stay, error) {
	result, err := s.store.Repos().Stays.GetByID(ctx, id)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("service.StayService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns the distinct stays referenced by the trip's days.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StayService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stay, error) {
	stays, err := s.store.Repos().Stays.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StayService.ListByTrip: %w", err)
	}
	if stays == nil {
		return []domain.Stay{}, nil
	}
	return stays, nil
}

// Update validates and persists changes to an existing stay.
func (s *StayService) Update(ctx context.Context, stay domain.Stay) (domain.Stay, error) {
	if err := validateStay(stay); err != nil {
		return domain.Stay{}, err
	}
	result, err := s.store.Repos().Stays.Update(ctx, stay)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("service.StayService.Update: %w", err)
	}
	return result, nil
}

// AssignDay points a day at this stay (or clears the reference when stayID
// is nil).
func (s *StayService) AssignDay(ctx context.Context, dayID uuid.UUID, stayID *uuid.UUID) error {
	return s.store.WithTx(ctx, func(r repo.Repos) error {
		if stayID != nil {
			if _, err := r.Stays.GetByID(ctx, *stayID); err != nil {
				return fmt.Errorf("service.StayService.AssignDay: %w", err)
			}
		}
		if err := r.Days.SetStay(ctx, dayID, stayID); err != nil {
			return fmt.Errorf("service.StayService.AssignDay: %w", err)
		}
		return nil
	})
}

// Delete removes a stay after migrating the days that reference it.
//
// The coordinator looks at the other stays referenced by days of the same
// trip: with exactly one candidate the days move there silently; with none
// the references are simply cleared; with several, the caller must name the
// target — otherwise the candidate list is returned alongside
// domain.ErrAmbiguousReassignment and nothing is touched.
//
// Reassignment and deletion are one atomic unit: a stay is never gone while
// days still point at it, and never kept after its days moved.
func (s *StayService) Delete(ctx context.Context, stayID uuid.UUID, target *uuid.UUID) (*domain.ReassignmentChoice, error) {
	var choice *domain.ReassignmentChoice

	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		stay, err := r.Stays.GetByID(ctx, stayID)
		if err != nil {
			return fmt.Errorf("service.StayService.Delete: %w", err)
		}

		days, err := r.Days.ListByStay(ctx, stayID)
		if err != nil {
			return fmt.Errorf("service.StayService.Delete: %w", err)
		}

		if len(days) > 0 {
			candidates, err := r.Stays.Candidates(ctx, days[0].TripID, stayID)
			if err != nil {
				return fmt.Errorf("service.StayService.Delete: %w", err)
			}

			var newStay *uuid.UUID
			switch {
			case len(candidates) == 0:
				// Nothing to move to; the days become stay-less.
				newStay = nil
			case len(candidates) == 1:
				newStay = &candidates[0].ID
			case target == nil:
				choice = &domain.ReassignmentChoice{StayID: stayID, Candidates: candidates}
				return fmt.Errorf("service.StayService.Delete: %w", domain.ErrAmbiguousReassignment)
			default:
				if !containsStay(candidates, *target) {
					return fmt.Errorf("%w: chosen stay is not a candidate for this trip", domain.ErrValidation)
				}
				newStay = target
			}

			moved, err := r.Days.ReassignStay(ctx, stayID, newStay)
			if err != nil {
				return fmt.Errorf("service.StayService.Delete: %w", err)
			}
			s.log.InfoContext(ctx, "stay days reassigned",
				"stay_id", stayID, "moved", moved, "target", newStay, "name", stay.Name)
		}

		if err := r.Stays.Delete(ctx, stayID); err != nil {
			return fmt.Errorf("service.StayService.Delete: %w", err)
		}
		return nil
	})
	if err != nil {
		return choice, err
	}
	return nil, nil
}

func containsStay(stays []domain.Stay, id uuid.UUID) bool {
	for _, st := range stays {
		if st.ID == id {
			return true
		}
	}
	return false
}

// validateStay enforces business rules common to both Create and Update.
//   - Name and address must be non-empty.
func validateStay(stay domain.Stay) error {
	if strings.TrimSpace(stay.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(stay.Address) == "" {
		return fmt.Errorf("%w: address is required", domain.ErrValidation)
	}
	return nil
}
