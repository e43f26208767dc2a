// Package domain contains the core data types for the itinerary planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip, driven by the relationship
// between today's date and the trip's date range. Values match the stored
// integer codes.
type TripStatus int

const (
	StatusNotStarted TripStatus = 1 // more than 7 days before the start date
	StatusImpending  TripStatus = 2 // within 7 days of the start date
	StatusInProgress TripStatus = 3 // between start and end date inclusive
	StatusCompleted  TripStatus = 4 // after the end date
	StatusArchived   TripStatus = 5 // set explicitly by the user; sticky
)

// String returns the lowercase wire name of the status.
func (s TripStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusImpending:
		return "impending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusArchived:
		return "archived"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined status codes.
func (s TripStatus) Valid() bool {
	return s >= StatusNotStarted && s <= StatusArchived
}

// Trip represents a planned journey. A trip is the top-level aggregate; days,
// events, and stays all hang off a trip. StartDate and EndDate are nil until
// the user commits to a date range; days exist only once both are set.
type Trip struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Destination string     `json:"destination"`
	AuthorID    uuid.UUID  `json:"author_id"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      TripStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasDates reports whether both ends of the date range are set.
// Status recomputation and day scheduling only apply to dated trips.
func (t Trip) HasDates() bool {
	return t.StartDate != nil && t.EndDate != nil
}

// DayCount returns the inclusive number of calendar days in the trip's
// range, or 0 when the range is unset or inverted.
func (t Trip) DayCount() int {
	if !t.HasDates() {
		return 0
	}
	n := int(t.EndDate.Sub(*t.StartDate).Hours()/24) + 1
	if n < 1 {
		return 0
	}
	return n
}

// Link is a user-saved URL attached to a trip (booking confirmations,
// articles, reservations). Links are deduplicated per author by URL.
type Link struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Title     string    `json:"title,omitempty"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
