// Package handler implements the HTTP handlers for the itinerary API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, event.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Archive(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Unarchive(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Detail(ctx context.Context, id uuid.UUID) (service.TripDetail, error)
	AddLink(ctx context.Context, tripID uuid.UUID, title, url string) (domain.Link, error)
	RemoveLink(ctx context.Context, tripID, linkID uuid.UUID) error
}

// DayServicer defines the business operations the day handlers depend on.
type DayServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)
}

// EventServicer defines the business operations the event handlers depend on.
type EventServicer interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.Event, error)
	ListUnpaired(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Pair(ctx context.Context, eventID, dayID uuid.UUID) error
	Unpair(ctx context.Context, eventID uuid.UUID) error
	SwapTimes(ctx context.Context, aID, bID uuid.UUID) error
	SaveMainTransfer(ctx context.Context, event domain.Event) (domain.Event, error)
	GetMainTransfer(ctx context.Context, tripID uuid.UUID, dir domain.TransferDirection) (domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StayServicer defines the business operations the stay handlers depend on.
type StayServicer interface {
	Create(ctx context.Context, stay domain.Stay) (domain.Stay, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Stay, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stay, error)
	Update(ctx context.Context, stay domain.Stay) (domain.Stay, error)
	AssignDay(ctx context.Context, dayID uuid.UUID, stayID *uuid.UUID) error
	Delete(ctx context.Context, stayID uuid.UUID, target *uuid.UUID) (*domain.ReassignmentChoice, error)
}

// TransferServicer defines the business operations the transfer handlers
// depend on.
type TransferServicer interface {
	SaveSimple(ctx context.Context, in service.SimpleTransferInput) (domain.SimpleTransfer, error)
	SaveStay(ctx context.Context, in service.StayTransferInput) (domain.StayTransfer, error)
	GetSimple(ctx context.Context, id uuid.UUID) (domain.SimpleTransfer, error)
	GetStay(ctx context.Context, id uuid.UUID) (domain.StayTransfer, error)
	DeleteSimple(ctx context.Context, id uuid.UUID) error
	DeleteStay(ctx context.Context, id uuid.UUID) error
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	trips     TripServicer
	days      DayServicer
	events    EventServicer
	stays     StayServicer
	transfers TransferServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, days DayServicer, events EventServicer, stays StayServicer, transfers TransferServicer) *Server {
	return &Server{trips: trips, days: days, events: events, stays: stays, transfers: transfers}
}

// Routes registers every endpoint on the given chi router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/detail", s.GetTripDetail)
			r.Post("/archive", s.ArchiveTrip)
			r.Post("/unarchive", s.UnarchiveTrip)
			r.Get("/days", s.ListTripDays)
			r.Get("/stays", s.ListTripStays)
			r.Get("/events/unpaired", s.ListUnpairedEvents)
			r.Post("/links", s.AddTripLink)
			r.Delete("/links/{linkID}", s.RemoveTripLink)
			r.Get("/main-transfers/{direction}", s.GetMainTransfer)
			r.Put("/main-transfers/{direction}", s.SaveMainTransfer)
		})
	})

	r.Route("/days/{dayID}", func(r chi.Router) {
		r.Get("/", s.GetDay)
		r.Get("/events", s.ListDayEvents)
		r.Put("/stay", s.AssignDayStay)
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", s.CreateEvent)
		r.Post("/swap", s.SwapEventTimes)
		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", s.GetEvent)
			r.Put("/", s.UpdateEvent)
			r.Delete("/", s.DeleteEvent)
			r.Put("/pair", s.PairEvent)
			r.Put("/unpair", s.UnpairEvent)
		})
	})

	r.Route("/stays", func(r chi.Router) {
		r.Post("/", s.CreateStay)
		r.Route("/{stayID}", func(r chi.Router) {
			r.Get("/", s.GetStay)
			r.Put("/", s.UpdateStay)
			r.Delete("/", s.DeleteStay)
		})
	})

	r.Route("/transfers", func(r chi.Router) {
		r.Post("/simple", s.CreateSimpleTransfer)
		r.Get("/simple/{transferID}", s.GetSimpleTransfer)
		r.Put("/simple/{transferID}", s.UpdateSimpleTransfer)
		r.Delete("/simple/{transferID}", s.DeleteSimpleTransfer)
		r.Post("/stay", s.CreateStayTransfer)
		r.Get("/stay/{transferID}", s.GetStayTransfer)
		r.Put("/stay/{transferID}", s.UpdateStayTransfer)
		r.Delete("/stay/{transferID}", s.DeleteStayTransfer)
	})
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
