package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// GetDay handles GET /days/{dayID}.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	day, err := s.days.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// ListTripDays handles GET /trips/{tripID}/days.
func (s *Server) ListTripDays(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	days, err := s.days.ListByTrip(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// AssignDayStay handles PUT /days/{dayID}/stay.
// A null stay_id clears the day's stay reference.
func (s *Server) AssignDayStay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	var req struct {
		StayID *string `json:"stay_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	var stayID *uuid.UUID
	if req.StayID != nil {
		parsed, err := uuid.Parse(*req.StayID)
		if err != nil {
			requestError(w, "stay_id must be a UUID")
			return
		}
		stayID = &parsed
	}

	if err := s.stays.AssignDay(r.Context(), id, stayID); err != nil {
		serviceError(w, err, "day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
