package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transfer transport modes. Free-form per mode details live in Notes.
const (
	ModeWalking   = "walking"
	ModeDriving   = "driving"
	ModeTransit   = "transit"
	ModeBicycling = "bicycling"
)

// ValidTransportMode reports whether mode is one of the supported
// transfer transport modes.
func ValidTransportMode(mode string) bool {
	switch mode {
	case ModeWalking, ModeDriving, ModeTransit, ModeBicycling:
		return true
	}
	return false
}

// SimpleTransfer is a directed movement link between two events on the same
// day. Each event can be the source of at most one simple transfer and the
// destination of at most one; the transfer registry enforces both.
type SimpleTransfer struct {
	ID            uuid.UUID `json:"id"`
	FromEventID   uuid.UUID `json:"from_event_id"`
	ToEventID     uuid.UUID `json:"to_event_id"`
	TransportMode string    `json:"transport_mode"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StayTransfer is a directed movement link between two stays, describing
// the move-out/move-in leg between accommodations. Same uniqueness shape as
// SimpleTransfer, applied to stays.
type StayTransfer struct {
	ID            uuid.UUID `json:"id"`
	FromStayID    uuid.UUID `json:"from_stay_id"`
	ToStayID      uuid.UUID `json:"to_stay_id"`
	TransportMode string    `json:"transport_mode"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
