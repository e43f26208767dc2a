package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/repo"
	"github.com/pkordes/itinerary/backend/internal/service"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; an unset method
// panics, which surfaces unexpected calls immediately.
//
// fakeStore glues them into a service.Store: WithTx has no real transaction
// to manage, so it just runs fn against the same bundle.

type fakeStore struct {
	repos repo.Repos
}

func (f *fakeStore) Repos() repo.Repos { return f.repos }

func (f *fakeStore) WithTx(_ context.Context, fn func(repo.Repos) error) error {
	return fn(f.repos)
}

var _ service.Store = (*fakeStore)(nil)

// ---- trips -----------------------------------------------------------------

type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list         func(ctx context.Context) ([]domain.Trip, error)
	listPaged    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status domain.TripStatus) error
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	return m.updateStatus(ctx, id, status)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- days ------------------------------------------------------------------

type mockDayRepo struct {
	create       func(ctx context.Context, day domain.Day) (domain.Day, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Day, error)
	listByTrip   func(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)
	listByStay   func(ctx context.Context, stayID uuid.UUID) ([]domain.Day, error)
	renumber     func(ctx context.Context, id uuid.UUID, number int) error
	setStay      func(ctx context.Context, id uuid.UUID, stayID *uuid.UUID) error
	reassignStay func(ctx context.Context, fromStay uuid.UUID, toStay *uuid.UUID) (int64, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDayRepo) Create(ctx context.Context, day domain.Day) (domain.Day, error) {
	return m.create(ctx, day)
}
func (m *mockDayRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error) {
	return m.getByID(ctx, id)
}
func (m *mockDayRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockDayRepo) ListByStay(ctx context.Context, stayID uuid.UUID) ([]domain.Day, error) {
	return m.listByStay(ctx, stayID)
}
func (m *mockDayRepo) Renumber(ctx context.Context, id uuid.UUID, number int) error {
	return m.renumber(ctx, id, number)
}
func (m *mockDayRepo) SetStay(ctx context.Context, id uuid.UUID, stayID *uuid.UUID) error {
	return m.setStay(ctx, id, stayID)
}
func (m *mockDayRepo) ReassignStay(ctx context.Context, fromStay uuid.UUID, toStay *uuid.UUID) (int64, error) {
	return m.reassignStay(ctx, fromStay, toStay)
}
func (m *mockDayRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.DayRepo = (*mockDayRepo)(nil)

// ---- events ----------------------------------------------------------------

type mockEventRepo struct {
	create             func(ctx context.Context, event domain.Event) (domain.Event, error)
	getByID            func(ctx context.Context, id uuid.UUID) (domain.Event, error)
	listByDay          func(ctx context.Context, dayID uuid.UUID) ([]domain.Event, error)
	listUnpairedByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error)
	update             func(ctx context.Context, event domain.Event) (domain.Event, error)
	setDay             func(ctx context.Context, id uuid.UUID, dayID *uuid.UUID) error
	setTimes           func(ctx context.Context, id uuid.UUID, start, end domain.ClockTime) error
	findMainTransfer   func(ctx context.Context, tripID uuid.UUID, dir domain.TransferDirection) (domain.Event, error)
	delete             func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	return m.create(ctx, event)
}
func (m *mockEventRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return m.getByID(ctx, id)
}
func (m *mockEventRepo) ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.Event, error) {
	return m.listByDay(ctx, dayID)
}
func (m *mockEventRepo) ListUnpairedByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error) {
	return m.listUnpairedByTrip(ctx, tripID)
}
func (m *mockEventRepo) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	return m.update(ctx, event)
}
func (m *mockEventRepo) SetDay(ctx context.Context, id uuid.UUID, dayID *uuid.UUID) error {
	return m.setDay(ctx, id, dayID)
}
func (m *mockEventRepo) SetTimes(ctx context.Context, id uuid.UUID, start, end domain.ClockTime) error {
	return m.setTimes(ctx, id, start, end)
}
func (m *mockEventRepo) FindMainTransfer(ctx context.Context, tripID uuid.UUID, dir domain.TransferDirection) (domain.Event, error) {
	return m.findMainTransfer(ctx, tripID, dir)
}
func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.EventRepo = (*mockEventRepo)(nil)

// ---- stays -----------------------------------------------------------------

type mockStayRepo struct {
	create     func(ctx context.Context, stay domain.Stay) (domain.Stay, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Stay, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Stay, error)
	candidates func(ctx context.Context, tripID, excludeStayID uuid.UUID) ([]domain.Stay, error)
	update     func(ctx context.Context, stay domain.Stay) (domain.Stay, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStayRepo) Create(ctx context.Context, stay domain.Stay) (domain.Stay, error) {
	return m.create(ctx, stay)
}
func (m *mockStayRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stay, error) {
	return m.getByID(ctx, id)
}
func (m *mockStayRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stay, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockStayRepo) Candidates(ctx context.Context, tripID, excludeStayID uuid.UUID) ([]domain.Stay, error) {
	return m.candidates(ctx, tripID, excludeStayID)
}
func (m *mockStayRepo) Update(ctx context.Context, stay domain.Stay) (domain.Stay, error) {
	return m.update(ctx, stay)
}
func (m *mockStayRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.StayRepo = (*mockStayRepo)(nil)

// ---- transfers -------------------------------------------------------------

type mockTransferRepo struct {
	createSimple          func(ctx context.Context, t domain.SimpleTransfer) (domain.SimpleTransfer, error)
	updateSimple          func(ctx context.Context, t domain.SimpleTransfer) (domain.SimpleTransfer, error)
	getSimpleByID         func(ctx context.Context, id uuid.UUID) (domain.SimpleTransfer, error)
	findSimpleByFromEvent func(ctx context.Context, eventID, exclude uuid.UUID) (domain.SimpleTransfer, error)
	findSimpleByToEvent   func(ctx context.Context, eventID, exclude uuid.UUID) (domain.SimpleTransfer, error)
	deleteSimple          func(ctx context.Context, id uuid.UUID) error
	createStay            func(ctx context.Context, t domain.StayTransfer) (domain.StayTransfer, error)
	updateStay            func(ctx context.Context, t domain.StayTransfer) (domain.StayTransfer, error)
	getStayByID           func(ctx context.Context, id uuid.UUID) (domain.StayTransfer, error)
	findStayByFromStay    func(ctx context.Context, stayID, exclude uuid.UUID) (domain.StayTransfer, error)
	findStayByToStay      func(ctx context.Context, stayID, exclude uuid.UUID) (domain.StayTransfer, error)
	deleteStay            func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTransferRepo) CreateSimple(ctx context.Context, t domain.SimpleTransfer) (domain.SimpleTransfer, error) {
	return m.createSimple(ctx, t)
}
func (m *mockTransferRepo) UpdateSimple(ctx context.Context, t domain.SimpleTransfer) (domain.SimpleTransfer, error) {
	return m.updateSimple(ctx, t)
}
func (m *mockTransferRepo) GetSimpleByID(ctx context.Context, id uuid.UUID) (domain.SimpleTransfer, error) {
	return m.getSimpleByID(ctx, id)
}
func (m *mockTransferRepo) FindSimpleByFromEvent(ctx context.Context, eventID, exclude uuid.UUID) (domain.SimpleTransfer, error) {
	return m.findSimpleByFromEvent(ctx, eventID, exclude)
}
func (m *mockTransferRepo) FindSimpleByToEvent(ctx context.Context, eventID, exclude uuid.UUID) (domain.SimpleTransfer, error) {
	return m.findSimpleByToEvent(ctx, eventID, exclude)
}
func (m *mockTransferRepo) DeleteSimple(ctx context.Context, id uuid.UUID) error {
	return m.deleteSimple(ctx, id)
}
func (m *mockTransferRepo) CreateStay(ctx context.Context, t domain.StayTransfer) (domain.StayTransfer, error) {
	return m.createStay(ctx, t)
}
func (m *mockTransferRepo) UpdateStay(ctx context.Context, t domain.StayTransfer) (domain.StayTransfer, error) {
	return m.updateStay(ctx, t)
}
func (m *mockTransferRepo) GetStayByID(ctx context.Context, id uuid.UUID) (domain.StayTransfer, error) {
	return m.getStayByID(ctx, id)
}
func (m *mockTransferRepo) FindStayByFromStay(ctx context.Context, stayID, exclude uuid.UUID) (domain.StayTransfer, error) {
	return m.findStayByFromStay(ctx, stayID, exclude)
}
func (m *mockTransferRepo) FindStayByToStay(ctx context.Context, stayID, exclude uuid.UUID) (domain.StayTransfer, error) {
	return m.findStayByToStay(ctx, stayID, exclude)
}
func (m *mockTransferRepo) DeleteStay(ctx context.Context, id uuid.UUID) error {
	return m.deleteStay(ctx, id)
}

var _ repo.TransferRepo = (*mockTransferRepo)(nil)

// ---- links -----------------------------------------------------------------

type mockLinkRepo struct {
	upsert         func(ctx context.Context, authorID uuid.UUID, title, url string) (domain.Link, error)
	addToTrip      func(ctx context.Context, tripID, linkID uuid.UUID) error
	removeFromTrip func(ctx context.Context, tripID, linkID uuid.UUID) error
	listByTrip     func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkRepo) Upsert(ctx context.Context, authorID uuid.UUID, title, url string) (domain.Link, error) {
	return m.upsert(ctx, authorID, title, url)
}
func (m *mockLinkRepo) AddToTrip(ctx context.Context, tripID, linkID uuid.UUID) error {
	return m.addToTrip(ctx, tripID, linkID)
}
func (m *mockLinkRepo) RemoveFromTrip(ctx context.Context, tripID, linkID uuid.UUID) error {
	return m.removeFromTrip(ctx, tripID, linkID)
}
func (m *mockLinkRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTrip(ctx, tripID)
}

var _ repo.LinkRepo = (*mockLinkRepo)(nil)
