package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
)

// Event request bodies decode straight into domain.Event: the domain JSON
// shape (integer category codes, "15:04" clock times, tagged detail union)
// is the wire shape. Server-owned fields (id, overlap flag, timestamps) are
// overwritten after decoding.

// CreateEvent handles POST /events.
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event domain.Event
	if !decodeBody(w, r, &event) {
		return
	}
	event.ID = uuid.Nil
	event.HasOverlap = false

	created, err := s.events.Create(r.Context(), event)
	if err != nil {
		serviceError(w, err, "trip or day not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetEvent handles GET /events/{eventID}.
func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := s.events.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// UpdateEvent handles PUT /events/{eventID}.
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var event domain.Event
	if !decodeBody(w, r, &event) {
		return
	}
	event.ID = id
	event.HasOverlap = false

	updated, err := s.events.Update(r.Context(), event)
	if err != nil {
		serviceError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteEvent handles DELETE /events/{eventID}.
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	if err := s.events.Delete(r.Context(), id); err != nil {
		serviceError(w, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDayEvents handles GET /days/{dayID}/events.
// Events come back in schedule order with has_overlap set.
func (s *Server) ListDayEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	events, err := s.events.ListByDay(r.Context(), id)
	if err != nil {
		serviceError(w, err, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// ListUnpairedEvents handles GET /trips/{tripID}/events/unpaired.
func (s *Server) ListUnpairedEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	events, err := s.events.ListUnpaired(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// PairEvent handles PUT /events/{eventID}/pair.
func (s *Server) PairEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req struct {
		DayID string `json:"day_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	dayID, err := uuid.Parse(req.DayID)
	if err != nil {
		requestError(w, "day_id must be a UUID")
		return
	}

	if err := s.events.Pair(r.Context(), id, dayID); err != nil {
		serviceError(w, err, "event or day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnpairEvent handles PUT /events/{eventID}/unpair.
func (s *Server) UnpairEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	if err := s.events.Unpair(r.Context(), id); err != nil {
		serviceError(w, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SwapEventTimes handles POST /events/swap.
// Both events must be placed on the same day.
func (s *Server) SwapEventTimes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventID      string `json:"event_id"`
		OtherEventID string `json:"other_event_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	a, err := uuid.Parse(req.EventID)
	if err != nil {
		requestError(w, "event_id must be a UUID")
		return
	}
	b, err := uuid.Parse(req.OtherEventID)
	if err != nil {
		requestError(w, "other_event_id must be a UUID")
		return
	}

	if err := s.events.SwapTimes(r.Context(), a, b); err != nil {
		serviceError(w, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveMainTransfer handles PUT /trips/{tripID}/main-transfers/{direction}.
// Direction is "arrival" or "departure"; at most one main transfer exists
// per trip and direction, so PUT replaces.
func (s *Server) SaveMainTransfer(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dir, ok := pathDirection(w, r)
	if !ok {
		return
	}

	var event domain.Event
	if !decodeBody(w, r, &event) {
		return
	}
	event.TripID = tripID
	event.Direction = &dir

	saved, err := s.events.SaveMainTransfer(r.Context(), event)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// GetMainTransfer handles GET /trips/{tripID}/main-transfers/{direction}.
func (s *Server) GetMainTransfer(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dir, ok := pathDirection(w, r)
	if !ok {
		return
	}
	event, err := s.events.GetMainTransfer(r.Context(), tripID, dir)
	if err != nil {
		serviceError(w, err, "main transfer not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// pathDirection parses the {direction} path parameter.
func pathDirection(w http.ResponseWriter, r *http.Request) (domain.TransferDirection, bool) {
	switch chi.URLParam(r, "direction") {
	case "arrival":
		return domain.DirectionArrival, true
	case "departure":
		return domain.DirectionDeparture, true
	default:
		requestError(w, "direction must be arrival or departure")
		return 0, false
	}
}
