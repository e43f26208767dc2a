package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/handler"
	"github.com/pkordes/itinerary/backend/internal/service"
)

// Test doubles for the Servicer interfaces. Each method is a function
// field — set only the ones your test needs; an unset method panics, which
// surfaces unexpected calls immediately.

type mockTripServicer struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged  func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	archive    func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	unarchive  func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	delete     func(ctx context.Context, id uuid.UUID) error
	detail     func(ctx context.Context, id uuid.UUID) (service.TripDetail, error)
	addLink    func(ctx context.Context, tripID uuid.UUID, title, url string) (domain.Link, error)
	removeLink func(ctx context.Context, tripID, linkID uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Archive(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.archive(ctx, id)
}
func (m *mockTripServicer) Unarchive(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.unarchive(ctx, id)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) Detail(ctx context.Context, id uuid.UUID) (service.TripDetail, error) {
	return m.detail(ctx, id)
}
func (m *mockTripServicer) AddLink(ctx context.Context, tripID uuid.UUID, title, url string) (domain.Link, error) {
	return m.addLink(ctx, tripID, title, url)
}
func (m *mockTripServicer) RemoveLink(ctx context.Context, tripID, linkID uuid.UUID) error {
	return m.removeLink(ctx, tripID, linkID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockStayServicer struct {
	create     func(ctx context.Context, stay domain.Stay) (domain.Stay, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Stay, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Stay, error)
	update     func(ctx context.Context, stay domain.Stay) (domain.Stay, error)
	assignDay  func(ctx context.Context, dayID uuid.UUID, stayID *uuid.UUID) error
	delete     func(ctx context.Context, stayID uuid.UUID, target *uuid.UUID) (*domain.ReassignmentChoice, error)
}

func (m *mockStayServicer) Create(ctx context.Context, st domain.Stay) (domain.Stay, error) {
	return m.create(ctx, st)
}
func (m *mockStayServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Stay, error) {
	return m.getByID(ctx, id)
}
func (m *mockStayServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stay, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockStayServicer) Update(ctx context.Context, st domain.Stay) (domain.Stay, error) {
	return m.update(ctx, st)
}
func (m *mockStayServicer) AssignDay(ctx context.Context, dayID uuid.UUID, stayID *uuid.UUID) error {
	return m.assignDay(ctx, dayID, stayID)
}
func (m *mockStayServicer) Delete(ctx context.Context, stayID uuid.UUID, target *uuid.UUID) (*domain.ReassignmentChoice, error) {
	return m.delete(ctx, stayID, target)
}

var _ handler.StayServicer = (*mockStayServicer)(nil)

type mockDayServicer struct {
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Day, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)
}

func (m *mockDayServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error) {
	return m.getByID(ctx, id)
}
func (m *mockDayServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	return m.listByTrip(ctx, tripID)
}

var _ handler.DayServicer = (*mockDayServicer)(nil)

type mockEventServicer struct {
	create           func(ctx context.Context, event domain.Event) (domain.Event, error)
	getByID          func(ctx context.Context, id uuid.UUID) (domain.Event, error)
	listByDay        func(ctx context.Context, dayID uuid.UUID) ([]domain.Event, error)
	listUnpaired     func(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error)
	update           func(ctx context.Context, event domain.Event) (domain.Event, error)
	pair             func(ctx context.Context, eventID, dayID uuid.UUID) error
	unpair           func(ctx context.Context, eventID uuid.UUID) error
	swapTimes        func(ctx context.Context, aID, bID uuid.UUID) error
	saveMainTransfer func(ctx context.Context, event domain.Event) (domain.Event, error)
	getMainTransfer  func(ctx context.Context, tripID uuid.UUID, dir domain.TransferDirection) (domain.Event, error)
	delete           func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEventServicer) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	return m.create(ctx, e)
}
func (m *mockEventServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return m.getByID(ctx, id)
}
func (m *mockEventServicer) ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.Event, error) {
	return m.listByDay(ctx, dayID)
}
func (m *mockEventServicer) ListUnpaired(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error) {
	return m.listUnpaired(ctx, tripID)
}
func (m *mockEventServicer) Update(ctx context.Context, e domain.Event) (domain.Event, error) {
	return m.update(ctx, e)
}
func (m *mockEventServicer) Pair(ctx context.Context, eventID, dayID uuid.UUID) error {
	return m.pair(ctx, eventID, dayID)
}
func (m *mockEventServicer) Unpair(ctx context.Context, eventID uuid.UUID) error {
	return m.unpair(ctx, eventID)
}
func (m *mockEventServicer) SwapTimes(ctx context.Context, aID, bID uuid.UUID) error {
	return m.swapTimes(ctx, aID, bID)
}
func (m *mockEventServicer) SaveMainTransfer(ctx context.Context, e domain.Event) (domain.Event, error) {
	return m.saveMainTransfer(ctx, e)
}
func (m *mockEventServicer) GetMainTransfer(ctx context.Context, tripID uuid.UUID, dir domain.TransferDirection) (domain.Event, error) {
	return m.getMainTransfer(ctx, tripID, dir)
}
func (m *mockEventServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.EventServicer = (*mockEventServicer)(nil)

type mockTransferServicer struct {
	saveSimple   func(ctx context.Context, in service.SimpleTransferInput) (domain.SimpleTransfer, error)
	saveStay     func(ctx context.Context, in service.StayTransferInput) (domain.StayTransfer, error)
	getSimple    func(ctx context.Context, id uuid.UUID) (domain.SimpleTransfer, error)
	getStay      func(ctx context.Context, id uuid.UUID) (domain.StayTransfer, error)
	deleteSimple func(ctx context.Context, id uuid.UUID) error
	deleteStay   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTransferServicer) SaveSimple(ctx context.Context, in service.SimpleTransferInput) (domain.SimpleTransfer, error) {
	return m.saveSimple(ctx, in)
}
func (m *mockTransferServicer) SaveStay(ctx context.Context, in service.StayTransferInput) (domain.StayTransfer, error) {
	return m.saveStay(ctx, in)
}
func (m *mockTransferServicer) GetSimple(ctx context.Context, id uuid.UUID) (domain.SimpleTransfer, error) {
	return m.getSimple(ctx, id)
}
func (m *mockTransferServicer) GetStay(ctx context.Context, id uuid.UUID) (domain.StayTransfer, error) {
	return m.getStay(ctx, id)
}
func (m *mockTransferServicer) DeleteSimple(ctx context.Context, id uuid.UUID) error {
	return m.deleteSimple(ctx, id)
}
func (m *mockTransferServicer) DeleteStay(ctx context.Context, id uuid.UUID) error {
	return m.deleteStay(ctx, id)
}

var _ handler.TransferServicer = (*mockTransferServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newRouter wires a Server with the given mocks into a chi router the way
// main.go does. Nil mocks are fine for endpoints the test never hits.
func newRouter(trips handler.TripServicer, days handler.DayServicer, events handler.EventServicer, stays handler.StayServicer, transfers handler.TransferServicer) http.Handler {
	r := chi.NewRouter()
	handler.NewServer(trips, days, events, stays, transfers).Routes(r)
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeResponse[T any](t *testing.T, body *bytes.Buffer) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}
