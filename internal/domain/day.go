package domain

import (
	"time"

	"github.com/google/uuid"
)

// Day is one calendar day within a trip's range, numbered sequentially
// from 1. Days are created and renumbered by the day scheduler whenever the
// trip's date range changes; a day keeps its identity (and therefore its
// linked events and stay) as long as its calendar date survives the change.
//
// StayID points at the accommodation for the night of this day, or nil when
// no stay is assigned.
type Day struct {
	ID     uuid.UUID  `json:"id"`
	TripID uuid.UUID  `json:"trip_id"`
	StayID *uuid.UUID `json:"stay_id,omitempty"`
	Number int        `json:"number"`
	Date   time.Time  `json:"date"`
}
