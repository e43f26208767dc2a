package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/backend/internal/service"
)

// transferRequest is the JSON body for creating or editing either kind of
// transfer. From and To are interpreted as event IDs for simple transfers
// and stay IDs for stay transfers.
type transferRequest struct {
	From          string `json:"from"`
	To            string `json:"to"`
	TransportMode string `json:"transport_mode"`
	Notes         string `json:"notes"`
}

func (req transferRequest) endpoints() (uuid.UUID, uuid.UUID, error) {
	from, err := uuid.Parse(req.From)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("from must be a UUID")
	}
	to, err := uuid.Parse(req.To)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("to must be a UUID")
	}
	return from, to, nil
}

// CreateSimpleTransfer handles POST /transfers/simple.
func (s *Server) CreateSimpleTransfer(w http.ResponseWriter, r *http.Request) {
	s.saveSimpleTransfer(w, r, nil)
}

// UpdateSimpleTransfer handles PUT /transfers/simple/{transferID}.
// The existing transfer is excluded from the uniqueness checks, so editing
// a transfer's mode or notes in place always passes validation.
func (s *Server) UpdateSimpleTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "transferID")
	if !ok {
		return
	}
	s.saveSimpleTransfer(w, r, &id)
}

func (s *Server) saveSimpleTransfer(w http.ResponseWriter, r *http.Request, existing *uuid.UUID) {
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	from, to, err := req.endpoints()
	if err != nil {
		requestError(w, err.Error())
		return
	}

	saved, err := s.transfers.SaveSimple(r.Context(), service.SimpleTransferInput{
		FromEventID:   from,
		ToEventID:     to,
		ExistingID:    existing,
		TransportMode: req.TransportMode,
		Notes:         req.Notes,
	})
	if err != nil {
		serviceError(w, err, "event not found")
		return
	}

	status := http.StatusOK
	if existing == nil {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

// GetSimpleTransfer handles GET /transfers/simple/{transferID}.
func (s *Server) GetSimpleTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "transferID")
	if !ok {
		return
	}
	t, err := s.transfers.GetSimple(r.Context(), id)
	if err != nil {
		serviceError(w, err, "transfer not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteSimpleTransfer handles DELETE /transfers/simple/{transferID}.
func (s *Server) DeleteSimpleTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "transferID")
	if !ok {
		return
	}
	if err := s.transfers.DeleteSimple(r.Context(), id); err != nil {
		serviceError(w, err, "transfer not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateStayTransfer handles POST /transfers/stay.
func (s *Server) CreateStayTransfer(w http.ResponseWriter, r *http.Request) {
	s.saveStayTransfer(w, r, nil)
}

// UpdateStayTransfer handles PUT /transfers/stay/{transferID}.
func (s *Server) UpdateStayTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "transferID")
	if !ok {
		return
	}
	s.saveStayTransfer(w, r, &id)
}

func (s *Server) saveStayTransfer(w http.ResponseWriter, r *http.Request, existing *uuid.UUID) {
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	from, to, err := req.endpoints()
	if err != nil {
		requestError(w, err.Error())
		return
	}

	saved, err := s.transfers.SaveStay(r.Context(), service.StayTransferInput{
		FromStayID:    from,
		ToStayID:      to,
		ExistingID:    existing,
		TransportMode: req.TransportMode,
		Notes:         req.Notes,
	})
	if err != nil {
		serviceError(w, err, "stay not found")
		return
	}

	status := http.StatusOK
	if existing == nil {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

// GetStayTransfer handles GET /transfers/stay/{transferID}.
func (s *Server) GetStayTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "transferID")
	if !ok {
		return
	}
	t, err := s.transfers.GetStay(r.Context(), id)
	if err != nil {
		serviceError(w, err, "transfer not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteStayTransfer handles DELETE /transfers/stay/{transferID}.
func (s *Server) DeleteStayTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "transferID")
	if !ok {
		return
	}
	if err := s.transfers.DeleteStay(r.Context(), id); err != nil {
		serviceError(w, err, "transfer not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
