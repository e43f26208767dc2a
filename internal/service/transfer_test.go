package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/repo"
	"github.com/pkordes/itinerary/backend/internal/service"
)

// simpleFixture sets up two events on one day with no existing transfers,
// the happy path every SaveSimple test starts from.
type simpleFixture struct {
	from, to  domain.Event
	transfers *mockTransferRepo
	events    *mockEventRepo
}

func newSimpleFixture(t *testing.T) *simpleFixture {
	dayID := uuid.New()
	from := validEvent(t)
	from.ID, from.DayID = uuid.New(), &dayID
	to := validEvent(t)
	to.ID, to.DayID = uuid.New(), &dayID

	f := &simpleFixture{from: from, to: to}
	f.events = &mockEventRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Event, error) {
			switch id {
			case f.from.ID:
				return f.from, nil
			case f.to.ID:
				return f.to, nil
			}
			return domain.Event{}, domain.ErrNotFound
		},
	}
	f.transfers = &mockTransferRepo{
		findSimpleByFromEvent: func(_ context.Context, _, _ uuid.UUID) (domain.SimpleTransfer, error) {
			return domain.SimpleTransfer{}, domain.ErrNotFound
		},
		findSimpleByToEvent: func(_ context.Context, _, _ uuid.UUID) (domain.SimpleTransfer, error) {
			return domain.SimpleTransfer{}, domain.ErrNotFound
		},
		createSimple: func(_ context.Context, tr domain.SimpleTransfer) (domain.SimpleTransfer, error) {
			tr.ID = uuid.New()
			return tr, nil
		},
		updateSimple: func(_ context.Context, tr domain.SimpleTransfer) (domain.SimpleTransfer, error) {
			return tr, nil
		},
	}
	return f
}

func (f *simpleFixture) store() *fakeStore {
	return &fakeStore{repos: repo.Repos{Events: f.events, Transfers: f.transfers}}
}

func (f *simpleFixture) input() service.SimpleTransferInput {
	return service.SimpleTransferInput{
		FromEventID:   f.from.ID,
		ToEventID:     f.to.ID,
		TransportMode: domain.ModeWalking,
	}
}

func TestTransferService_SaveSimple_Create(t *testing.T) {
	f := newSimpleFixture(t)
	svc := service.NewTransferService(f.store())

	got, err := svc.SaveSimple(context.Background(), f.input())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, f.from.ID, got.FromEventID)
	assert.Equal(t, domain.ModeWalking, got.TransportMode)
}

func TestTransferService_SaveSimple_UnknownMode(t *testing.T) {
	f := newSimpleFixture(t)
	svc := service.NewTransferService(f.store())

	in := f.input()
	in.TransportMode = "teleport"

	_, err := svc.SaveSimple(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransferService_SaveSimple_SameEvent(t *testing.T) {
	f := newSimpleFixture(t)
	svc := service.NewTransferService(f.store())

	in := f.input()
	in.ToEventID = in.FromEventID

	_, err := svc.SaveSimple(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "must be different events")
}

func TestTransferService_SaveSimple_DifferentDays(t *testing.T) {
	f := newSimpleFixture(t)
	other := uuid.New()
	f.to.DayID = &other
	svc := service.NewTransferService(f.store())

	_, err := svc.SaveSimple(context.Background(), f.input())

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "same day")
}

func TestTransferService_SaveSimple_UnpairedEvent(t *testing.T) {
	f := newSimpleFixture(t)
	f.from.DayID = nil
	svc := service.NewTransferService(f.store())

	_, err := svc.SaveSimple(context.Background(), f.input())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransferService_SaveSimple_FromAlreadyLinked(t *testing.T) {
	f := newSimpleFixture(t)
	f.transfers.findSimpleByFromEvent = func(_ context.Context, _, _ uuid.UUID) (domain.SimpleTransfer, error) {
		return domain.SimpleTransfer{ID: uuid.New()}, nil
	}
	svc := service.NewTransferService(f.store())

	_, err := svc.SaveSimple(context.Background(), f.input())

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "outgoing transfer")
}

func TestTransferService_SaveSimple_ToAlreadyLinked(t *testing.T) {
	f := newSimpleFixture(t)
	f.transfers.findSimpleByToEvent = func(_ context.Context, _, _ uuid.UUID) (domain.SimpleTransfer, error) {
		return domain.SimpleTransfer{ID: uuid.New()}, nil
	}
	svc := service.NewTransferService(f.store())

	_, err := svc.SaveSimple(context.Background(), f.input())

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "incoming transfer")
}

func TestTransferService_SaveSimple_EditExcludesItself(t *testing.T) {
	f := newSimpleFixture(t)
	existingID := uuid.New()

	// The uniqueness lookups must skip the transfer being edited, otherwise
	// every edit would collide with itself.
	f.transfers.findSimpleByFromEvent = func(_ context.Context, _, exclude uuid.UUID) (domain.SimpleTransfer, error) {
		assert.Equal(t, existingID, exclude)
		return domain.SimpleTransfer{}, domain.ErrNotFound
	}
	f.transfers.findSimpleByToEvent = func(_ context.Context, _, exclude uuid.UUID) (domain.SimpleTransfer, error) {
		assert.Equal(t, existingID, exclude)
		return domain.SimpleTransfer{}, domain.ErrNotFound
	}
	svc := service.NewTransferService(f.store())

	in := f.input()
	in.ExistingID = &existingID
	in.TransportMode = domain.ModeTransit

	got, err := svc.SaveSimple(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, existingID, got.ID)
	assert.Equal(t, domain.ModeTransit, got.TransportMode)
}

// ---- stay transfers --------------------------------------------------------

type stayFixture struct {
	tripID   uuid.UUID
	from, to domain.Stay

	days      *mockDayRepo
	transfers *mockTransferRepo
}

func newStayFixture() *stayFixture {
	f := &stayFixture{
		tripID: uuid.New(),
		from:   validStay(),
		to:     validStay(),
	}
	f.days = &mockDayRepo{
		listByStay: func(_ context.Context, stayID uuid.UUID) ([]domain.Day, error) {
			return []domain.Day{{ID: uuid.New(), TripID: f.tripID, StayID: &stayID, Number: 1, Date: date(2026, 6, 1)}}, nil
		},
	}
	f.transfers = &mockTransferRepo{
		findStayByFromStay: func(_ context.Context, _, _ uuid.UUID) (domain.StayTransfer, error) {
			return domain.StayTransfer{}, domain.ErrNotFound
		},
		findStayByToStay: func(_ context.Context, _, _ uuid.UUID) (domain.StayTransfer, error) {
			return domain.StayTransfer{}, domain.ErrNotFound
		},
		createStay: func(_ context.Context, tr domain.StayTransfer) (domain.StayTransfer, error) {
			tr.ID = uuid.New()
			return tr, nil
		},
	}
	return f
}

func (f *stayFixture) store() *fakeStore {
	return &fakeStore{repos: repo.Repos{Days: f.days, Transfers: f.transfers}}
}

func (f *stayFixture) input() service.StayTransferInput {
	return service.StayTransferInput{
		FromStayID:    f.from.ID,
		ToStayID:      f.to.ID,
		TransportMode: domain.ModeDriving,
	}
}

func TestTransferService_SaveStay_Create(t *testing.T) {
	f := newStayFixture()
	svc := service.NewTransferService(f.store())

	got, err := svc.SaveStay(context.Background(), f.input())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, domain.ModeDriving, got.TransportMode)
}

func TestTransferService_SaveStay_UnassignedStay(t *testing.T) {
	f := newStayFixture()
	f.days.listByStay = func(_ context.Context, stayID uuid.UUID) ([]domain.Day, error) {
		if stayID == f.from.ID {
			return nil, nil
		}
		return []domain.Day{{ID: uuid.New(), TripID: f.tripID, Number: 1, Date: date(2026, 6, 1)}}, nil
	}
	svc := service.NewTransferService(f.store())

	_, err := svc.SaveStay(context.Background(), f.input())

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "assigned to days")
}

func TestTransferService_SaveStay_DifferentTrips(t *testing.T) {
	f := newStayFixture()
	f.days.listByStay = func(_ context.Context, stayID uuid.UUID) ([]domain.Day, error) {
		return []domain.Day{{ID: uuid.New(), TripID: uuid.New(), StayID: &stayID, Number: 1, Date: date(2026, 6, 1)}}, nil
	}
	svc := service.NewTransferService(f.store())

	_, err := svc.SaveStay(context.Background(), f.input())

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "same trip")
}

func TestTransferService_SaveStay_FromAlreadyLinked(t *testing.T) {
	f := newStayFixture()
	f.transfers.findStayByFromStay = func(_ context.Context, _, _ uuid.UUID) (domain.StayTransfer, error) {
		return domain.StayTransfer{ID: uuid.New()}, nil
	}
	svc := service.NewTransferService(f.store())

	_, err := svc.SaveStay(context.Background(), f.input())

	assert.ErrorIs(t, err, domain.ErrValidation)
}
