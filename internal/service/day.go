package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
)

// DayService exposes read access to a trip's day sequence. Days are never
// created or deleted directly — the scheduler owns their lifecycle as a
// function of the trip's date range.
type DayService struct {
	store Store
}

// NewDayService constructs a DayService backed by the provided store.
func NewDayService(store Store) *DayService {
	return &DayService{store: store}
}

// GetByID returns a single day by ID.
func (s *DayService) GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error) {
	day, err := s.store.Repos().Days.GetByID(ctx, id)
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.GetByID: %w", err)
	}
	return day, nil
}

// ListByTrip returns the trip's days ordered by number.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DayService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	days, err := s.store.Repos().Days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DayService.ListByTrip: %w", err)
	}
	if days == nil {
		return []domain.Day{}, nil
	}
	return days, nil
}
