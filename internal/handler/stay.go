package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
)

// CreateStay handles POST /stays.
func (s *Server) CreateStay(w http.ResponseWriter, r *http.Request) {
	var stay domain.Stay
	if !decodeBody(w, r, &stay) {
		return
	}
	stay.ID = uuid.Nil

	created, err := s.stays.Create(r.Context(), stay)
	if err != nil {
		serviceError(w, err, "stay not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetStay handles GET /stays/{stayID}.
func (s *Server) GetStay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "stayID")
	if !ok {
		return
	}
	stay, err := s.stays.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err, "stay not found")
		return
	}
	writeJSON(w, http.StatusOK, stay)
}

// ListTripStays handles GET /trips/{tripID}/stays.
func (s *Server) ListTripStays(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	stays, err := s.stays.ListByTrip(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, stays)
}

// UpdateStay handles PUT /stays/{stayID}.
func (s *Server) UpdateStay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "stayID")
	if !ok {
		return
	}
	var stay domain.Stay
	if !decodeBody(w, r, &stay) {
		return
	}
	stay.ID = id

	updated, err := s.stays.Update(r.Context(), stay)
	if err != nil {
		serviceError(w, err, "stay not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteStay handles DELETE /stays/{stayID}.
//
// When the stay's days could move to more than one surviving stay, the
// caller must pass ?target_stay_id=; without it the response is 409 with
// the candidate list and nothing is deleted.
func (s *Server) DeleteStay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "stayID")
	if !ok {
		return
	}

	var target *uuid.UUID
	if v := r.URL.Query().Get("target_stay_id"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			requestError(w, "target_stay_id must be a UUID")
			return
		}
		target = &parsed
	}

	choice, err := s.stays.Delete(r.Context(), id, target)
	if err != nil {
		if errors.Is(err, domain.ErrAmbiguousReassignment) && choice != nil {
			writeJSON(w, http.StatusConflict, ErrorResponse{
				Error: ErrorDetail{
					Code:    "ambiguous_reassignment",
					Message: "multiple candidate stays, pass target_stay_id",
				},
				Candidates: choice.Candidates,
			})
			return
		}
		serviceError(w, err, "stay not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
