package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventCategory tags an event as transport, experience, or meal.
// Values match the stored integer codes.
type EventCategory int

const (
	CategoryTransport  EventCategory = 1
	CategoryExperience EventCategory = 2
	CategoryMeal       EventCategory = 3
)

// String returns the lowercase wire name of the category.
func (c EventCategory) String() string {
	switch c {
	case CategoryTransport:
		return "transport"
	case CategoryExperience:
		return "experience"
	case CategoryMeal:
		return "meal"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the defined category codes.
func (c EventCategory) Valid() bool {
	return c >= CategoryTransport && c <= CategoryMeal
}

// TransferDirection marks a main transfer as the trip's arrival or
// departure leg. Only main transfers carry a direction.
type TransferDirection int

const (
	DirectionArrival   TransferDirection = 1
	DirectionDeparture TransferDirection = 2
)

// String returns the lowercase wire name of the direction.
func (d TransferDirection) String() string {
	switch d {
	case DirectionArrival:
		return "arrival"
	case DirectionDeparture:
		return "departure"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the defined direction codes.
func (d TransferDirection) Valid() bool {
	return d == DirectionArrival || d == DirectionDeparture
}

// TransportDetail carries the transport-specific payload of an event.
// TypeSpecific holds mode-dependent fields (flight_number, gate, terminal
// for planes; train_number, carriage, seat, platform for trains; is_rental,
// license_plate for cars) without a column per mode.
type TransportDetail struct {
	Type string `json:"type"` // car, plane, train, boat, bus, taxi, other

	OriginCity      string   `json:"origin_city"`
	OriginAddress   string   `json:"origin_address,omitempty"`
	OriginLatitude  *float64 `json:"origin_latitude,omitempty"`
	OriginLongitude *float64 `json:"origin_longitude,omitempty"`

	DestinationCity      string   `json:"destination_city"`
	DestinationAddress   string   `json:"destination_address,omitempty"`
	DestinationLatitude  *float64 `json:"destination_latitude,omitempty"`
	DestinationLongitude *float64 `json:"destination_longitude,omitempty"`

	BookingReference string         `json:"booking_reference,omitempty"`
	Company          string         `json:"company,omitempty"`
	TicketURL        string         `json:"ticket_url,omitempty"`
	Price            *float64       `json:"price,omitempty"`
	TypeSpecific     map[string]any `json:"type_specific,omitempty"`
}

// ExperienceDetail carries the experience-specific payload of an event.
type ExperienceDetail struct {
	Type string `json:"type"` // museum, park, walk, sport, other
}

// MealDetail carries the meal-specific payload of an event.
type MealDetail struct {
	Type string `json:"type"` // breakfast, lunch, dinner, snack
}

// EventDetail is the category-specific payload of an event, modeled as a
// tagged union: exactly the member matching Event.Category is non-nil.
type EventDetail struct {
	Transport  *TransportDetail  `json:"transport,omitempty"`
	Experience *ExperienceDetail `json:"experience,omitempty"`
	Meal       *MealDetail       `json:"meal,omitempty"`
}

// Event is a scheduled happening on a trip. DayID is nil for unpaired
// events: they belong to the trip but sit in the backlog until placed on a
// day. Main transfers (arrival/departure transport for the whole trip) are
// transport events with IsMainTransfer set and never have a day.
//
// HasOverlap is computed, not stored: the overlap detector sets it when the
// event's time range collides with a neighbor on the same day.
type Event struct {
	ID     uuid.UUID  `json:"id"`
	TripID uuid.UUID  `json:"trip_id"`
	DayID  *uuid.UUID `json:"day_id,omitempty"`

	Name      string        `json:"name"`
	StartTime ClockTime     `json:"start_time"`
	EndTime   ClockTime     `json:"end_time"`
	Category  EventCategory `json:"category"`
	Detail    EventDetail   `json:"detail"`

	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Notes     string   `json:"notes,omitempty"`

	// Place enrichment metadata, filled by an external provider.
	PlaceID      string         `json:"place_id,omitempty"`
	Website      string         `json:"website,omitempty"`
	PhoneNumber  string         `json:"phone_number,omitempty"`
	OpeningHours map[string]any `json:"opening_hours,omitempty"`
	Enriched     bool           `json:"enriched"`

	IsMainTransfer bool               `json:"is_main_transfer"`
	Direction      *TransferDirection `json:"direction,omitempty"`

	HasOverlap bool `json:"has_overlap"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
