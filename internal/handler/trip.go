package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/domain"
)

// tripRequest is the JSON body for creating or updating a trip.
// Dates are "2006-01-02" strings; both must be present or both absent.
type tripRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Destination string  `json:"destination"`
	AuthorID    string  `json:"author_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

func (req tripRequest) toDomain() (domain.Trip, error) {
	start, err := parseDatePtr(req.StartDate)
	if err != nil {
		return domain.Trip{}, errors.New("start_date must be formatted as 2006-01-02")
	}
	end, err := parseDatePtr(req.EndDate)
	if err != nil {
		return domain.Trip{}, errors.New("end_date must be formatted as 2006-01-02")
	}

	trip := domain.Trip{
		Title:       req.Title,
		Description: req.Description,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
	}
	if req.AuthorID != "" {
		authorID, err := uuid.Parse(req.AuthorID)
		if err != nil {
			return domain.Trip{}, errors.New("author_id must be a UUID")
		}
		trip.AuthorID = authorID
	}
	return trip, nil
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	trip, err := req.toDomain()
	if err != nil {
		requestError(w, err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		serviceError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": trips,
		"pagination": map[string]any{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// GetTripDetail handles GET /trips/{tripID}/detail.
// The response is the assembled itinerary: days in order with their
// overlap-annotated events and stays, the unpaired backlog, and links.
func (s *Server) GetTripDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	detail, err := s.trips.Detail(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	trip, err := req.toDomain()
	if err != nil {
		requestError(w, err.Error())
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ArchiveTrip handles POST /trips/{tripID}/archive.
func (s *Server) ArchiveTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.trips.Archive(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UnarchiveTrip handles POST /trips/{tripID}/unarchive.
func (s *Server) UnarchiveTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.trips.Unarchive(r.Context(), id)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTripLink handles POST /trips/{tripID}/links.
func (s *Server) AddTripLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	link, err := s.trips.AddLink(r.Context(), id, req.Title, req.URL)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// RemoveTripLink handles DELETE /trips/{tripID}/links/{linkID}.
func (s *Server) RemoveTripLink(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	linkID, ok := pathUUID(w, r, "linkID")
	if !ok {
		return
	}
	if err := s.trips.RemoveLink(r.Context(), tripID, linkID); err != nil {
		serviceError(w, err, "link not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
