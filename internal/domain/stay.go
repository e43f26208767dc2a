package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stay is an accommodation, typically referenced by a contiguous run of
// days within one trip. A day references at most one stay; a stay may be
// referenced by many days. Deleting a stay goes through the reassignment
// coordinator so days are never left pointing at a removed row.
type Stay struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	CheckIn          *ClockTime `json:"check_in,omitempty"`
	CheckOut         *ClockTime `json:"check_out,omitempty"`
	CancellationDate *time.Time `json:"cancellation_date,omitempty"`
	PhoneNumber      string     `json:"phone_number,omitempty"`
	Website          string     `json:"website,omitempty"`
	Address          string     `json:"address"`
	City             string     `json:"city,omitempty"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ReassignmentChoice is returned when deleting a stay whose days could move
// to more than one surviving stay. The caller must resubmit the deletion
// with one of the candidates as the explicit target.
type ReassignmentChoice struct {
	StayID     uuid.UUID `json:"stay_id"`
	Candidates []Stay    `json:"candidates"`
}
