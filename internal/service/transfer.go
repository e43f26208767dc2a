package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/repo"
)

// TransferService is the validation gate for directional 1:1 transfer links.
// Every create and edit passes through it; after any successful call the
// whole transfer set of a kind still satisfies "at most one outgoing link
// per node, at most one incoming link per node".
type TransferService struct {
	store Store
}

// NewTransferService constructs a TransferService backed by the provided store.
func NewTransferService(store Store) *TransferService {
	return &TransferService{store: store}
}

// SimpleTransferInput carries the fields for creating or editing an
// event→event transfer. ExistingID is set in edit mode and excludes the
// transfer itself from the uniqueness checks.
type SimpleTransferInput struct {
	FromEventID   uuid.UUID
	ToEventID     uuid.UUID
	ExistingID    *uuid.UUID
	TransportMode string
	Notes         string
}

// StayTransferInput is the stay→stay counterpart of SimpleTransferInput.
type StayTransferInput struct {
	FromStayID    uuid.UUID
	ToStayID      uuid.UUID
	ExistingID    *uuid.UUID
	TransportMode string
	Notes         string
}

// SaveSimple validates and persists an event transfer, creating or updating
// depending on ExistingID. Validation order: endpoints differ, endpoints on
// the same day, no other outgoing transfer from the source, no other
// incoming transfer to the destination.
func (s *TransferService) SaveSimple(ctx context.Context, in SimpleTransferInput) (domain.SimpleTransfer, error) {
	if !domain.ValidTransportMode(in.TransportMode) {
		return domain.SimpleTransfer{}, fmt.Errorf("%w: unknown transport mode %q", domain.ErrValidation, in.TransportMode)
	}
	if in.FromEventID == in.ToEventID {
		return domain.SimpleTransfer{}, fmt.Errorf("%w: from event and to event must be different events", domain.ErrValidation)
	}

	var saved domain.SimpleTransfer
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		from, err := r.Events.GetByID(ctx, in.FromEventID)
		if err != nil {
			return fmt.Errorf("service.TransferService.SaveSimple: from event: %w", err)
		}
		to, err := r.Events.GetByID(ctx, in.ToEventID)
		if err != nil {
			return fmt.Errorf("service.TransferService.SaveSimple: to event: %w", err)
		}

		if from.DayID == nil || to.DayID == nil || *from.DayID != *to.DayID {
			return fmt.Errorf("%w: events must be on the same day", domain.ErrValidation)
		}

		exclude := uuid.Nil
		if in.ExistingID != nil {
			exclude = *in.ExistingID
		}

		if _, err := r.Transfers.FindSimpleByFromEvent(ctx, in.FromEventID, exclude); err == nil {
			return fmt.Errorf("%w: the from event already has an outgoing transfer", domain.ErrValidation)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.TransferService.SaveSimple: %w", err)
		}

		if _, err := r.Transfers.FindSimpleByToEvent(ctx, in.ToEventID, exclude); err == nil {
			return fmt.Errorf("%w: the to event already has an incoming transfer", domain.ErrValidation)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.TransferService.SaveSimple: %w", err)
		}

		t := domain.SimpleTransfer{
			FromEventID:   in.FromEventID,
			ToEventID:     in.ToEventID,
			TransportMode: in.TransportMode,
			Notes:         in.Notes,
		}

		if in.ExistingID == nil {
			saved, err = r.Transfers.CreateSimple(ctx, t)
		} else {
			t.ID = *in.ExistingID
			saved, err = r.Transfers.UpdateSimple(ctx, t)
		}
		if err != nil {
			return fmt.Errorf("service.TransferService.SaveSimple: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.SimpleTransfer{}, err
	}
	return saved, nil
}

// SaveStay validates and persists a stay transfer. Same gate as SaveSimple
// with stay wording; the locality rule requires both stays to be referenced
// by days of the same trip. True day adjacency between the stays is not
// enforced — the timeline view orders stays by date, and a gap between them
// is a planning state, not an integrity violation.
func (s *TransferService) SaveStay(ctx context.Context, in StayTransferInput) (domain.StayTransfer, error) {
	if !domain.ValidTransportMode(in.TransportMode) {
		return domain.StayTransfer{}, fmt.Errorf("%w: unknown transport mode %q", domain.ErrValidation, in.TransportMode)
	}
	if in.FromStayID == in.ToStayID {
		return domain.StayTransfer{}, fmt.Errorf("%w: from stay and to stay must be different", domain.ErrValidation)
	}

	var saved domain.StayTransfer
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		fromDays, err := r.Days.ListByStay(ctx, in.FromStayID)
		if err != nil {
			return fmt.Errorf("service.TransferService.SaveStay: %w", err)
		}
		toDays, err := r.Days.ListByStay(ctx, in.ToStayID)
		if err != nil {
			return fmt.Errorf("service.TransferService.SaveStay: %w", err)
		}
		if len(fromDays) == 0 || len(toDays) == 0 {
			return fmt.Errorf("%w: both stays must be assigned to days", domain.ErrValidation)
		}
		if fromDays[0].TripID != toDays[0].TripID {
			return fmt.Errorf("%w: stays must belong to the same trip", domain.ErrValidation)
		}

		exclude := uuid.Nil
		if in.ExistingID != nil {
			exclude = *in.ExistingID
		}

		if _, err := r.Transfers.FindStayByFromStay(ctx, in.FromStayID, exclude); err == nil {
			return fmt.Errorf("%w: the from stay already has an outgoing transfer", domain.ErrValidation)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.TransferService.SaveStay: %w", err)
		}

		if _, err := r.Transfers.FindStayByToStay(ctx, in.ToStayID, exclude); err == nil {
			return fmt.Errorf("%w: the to stay already has an incoming transfer", domain.ErrValidation)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.TransferService.SaveStay: %w", err)
		}

		t := domain.StayTransfer{
			FromStayID:    in.FromStayID,
			ToStayID:      in.ToStayID,
			TransportMode: in.TransportMode,
			Notes:         in.Notes,
		}

		if in.ExistingID == nil {
			saved, err = r.Transfers.CreateStay(ctx, t)
		} else {
			t.ID = *in.ExistingID
			saved, err = r.Transfers.UpdateStay(ctx, t)
		}
		if err != nil {
			return fmt.Errorf("service.TransferService.SaveStay: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.StayTransfer{}, err
	}
	return saved, nil
}

// GetSimple returns an event transfer by ID.
func (s *TransferService) GetSimple(ctx context.Context, id uuid.UUID) (domain.SimpleTransfer, error) {
	t, err := s.store.Repos().Transfers.GetSimpleByID(ctx, id)
	if err != nil {
		return domain.SimpleTransfer{}, fmt.Errorf("service.TransferService.GetSimple: %w", err)
	}
	return t, nil
}

// GetStay returns a stay transfer by ID.
func (s *TransferService) GetStay(ctx context.Context, id uuid.UUID) (domain.StayTransfer, error) {
	t, err := s.store.Repos().Transfers.GetStayByID(ctx, id)
	if err != nil {
		return domain.StayTransfer{}, fmt.Errorf("service.TransferService.GetStay: %w", err)
	}
	return t, nil
}

// DeleteSimple removes an event transfer by ID.
func (s *TransferService) DeleteSimple(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Repos().Transfers.DeleteSimple(ctx, id); err != nil {
		return fmt.Errorf("service.TransferService.DeleteSimple: %w", err)
	}
	return nil
}

// DeleteStay removes a stay transfer by ID.
func (s *TransferService) DeleteStay(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Repos().Transfers.DeleteStay(ctx, id); err != nil {
		return fmt.Errorf("service.TransferService.DeleteStay: %w", err)
	}
	return nil
}
