package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary/backend/internal/domain"
)

// EventRepo defines the persistence operations for Events, including the
// main-transfer variant (transport events flagged is_main_transfer).
type EventRepo interface {
	// Create inserts a new event and returns the persisted record.
	Create(ctx context.Context, event domain.Event) (domain.Event, error)

	// GetByID retrieves a single event by its UUID primary key.
	// Returns domain.ErrNotFound if no event with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error)

	// ListByDay returns all events of one day ordered by start_time.
	ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.Event, error)

	// ListUnpairedByTrip returns the trip's events that have no day,
	// excluding main transfers, ordered by name.
	ListUnpairedByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error)

	// Update overwrites the mutable fields of an event and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, event domain.Event) (domain.Event, error)

	// SetDay pairs the event with a day (or unpairs it when dayID is nil).
	SetDay(ctx context.Context, id uuid.UUID, dayID *uuid.UUID) error

	// SetTimes updates only the start/end times of an event.
	// Used by the same-day time swap, which exchanges times of two events
	// inside one transaction.
	SetTimes(ctx context.Context, id uuid.UUID, start, end domain.ClockTime) error

	// FindMainTransfer returns the trip's main transfer for the given
	// direction. Returns domain.ErrNotFound if none exists.
	FindMainTransfer(ctx context.Context, tripID uuid.UUID, dir domain.TransferDirection) (domain.Event, error)

	// Delete removes an event by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const eventColumns = `id, trip_id, day_id, name, start_time, end_time, category, detail,
		address, city, latitude, longitude, notes,
		place_id, website, phone_number, opening_hours, enriched,
		is_main_transfer, direction, created_at, updated_at`

func eventArgs(e domain.Event) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":               e.ID,
		"trip_id":          e.TripID,
		"day_id":           e.DayID,
		"name":             e.Name,
		"start_time":       clockToPg(e.StartTime),
		"end_time":         clockToPg(e.EndTime),
		"category":         e.Category,
		"detail":           e.Detail,
		"address":          e.Address,
		"city":             e.City,
		"latitude":         e.Latitude,
		"longitude":        e.Longitude,
		"notes":            e.Notes,
		"place_id":         e.PlaceID,
		"website":          e.Website,
		"phone_number":     e.PhoneNumber,
		"opening_hours":    e.OpeningHours,
		"enriched":         e.Enriched,
		"is_main_transfer": e.IsMainTransfer,
		"direction":        e.Direction,
	}
}

func (r *pgEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	const q = `
		INSERT INTO events (trip_id, day_id, name, start_time, end_time, category, detail,
			address, city, latitude, longitude, notes,
			place_id, website, phone_number, opening_hours, enriched,
			is_main_transfer, direction)
		VALUES (@trip_id, @day_id, @name, @start_time, @end_time, @category, @detail,
			@address, @city, @latitude, @longitude, @notes,
			@place_id, @website, @phone_number, @opening_hours, @enriched,
			@is_main_transfer, @direction)
		RETURNING ` + eventColumns

	row := r.db.QueryRow(ctx, q, eventArgs(event))
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByDay returns the day's events in schedule order. The (day_id,
// start_time) index keeps this the hot path it is on every day view.
func (r *pgEventRepo) ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE day_id = @day_id ORDER BY start_time, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"day_id": dayID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByDay: %w", err)
	}
	defer rows.Close()

	events, err := collectEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByDay: %w", err)
	}
	return events, nil
}

func (r *pgEventRepo) ListUnpairedByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Event, error) {
	const q = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE trip_id = @trip_id AND day_id IS NULL AND NOT is_main_transfer
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListUnpairedByTrip: %w", err)
	}
	defer rows.Close()

	events, err := collectEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListUnpairedByTrip: %w", err)
	}
	return events, nil
}

func (r *pgEventRepo) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	const q = `
		UPDATE events
		SET day_id        = @day_id,
		    name          = @name,
		    start_time    = @start_time,
		    end_time      = @end_time,
		    category      = @category,
		    detail        = @detail,
		    address       = @address,
		    city          = @city,
		    latitude      = @latitude,
		    longitude     = @longitude,
		    notes         = @notes,
		    place_id      = @place_id,
		    website       = @website,
		    phone_number  = @phone_number,
		    opening_hours = @opening_hours,
		    enriched      = @enriched,
		    direction     = @direction,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + eventColumns

	row := r.db.QueryRow(ctx, q, eventArgs(event))
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) SetDay(ctx context.Context, id uuid.UUID, dayID *uuid.UUID) error {
	const q = `UPDATE events SET day_id = @day_id, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "day_id": dayID})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.SetDay: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventRepo.SetDay: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgEventRepo) SetTimes(ctx context.Context, id uuid.UUID, start, end domain.ClockTime) error {
	const q = `UPDATE events SET start_time = @start_time, end_time = @end_time, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":         id,
		"start_time": clockToPg(start),
		"end_time":   clockToPg(end),
	})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.SetTimes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventRepo.SetTimes: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgEventRepo) FindMainTransfer(ctx context.Context, tripID uuid.UUID, dir domain.TransferDirection) (domain.Event, error) {
	const q = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE trip_id = @trip_id AND is_main_transfer AND direction = @direction`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "direction": dir})
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.FindMainTransfer: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM events WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func collectEvents(rows pgx.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return events, nil
}

// scanEvent maps a single database row into a domain.Event.
func scanEvent(s scanner) (domain.Event, error) {
	var (
		e          domain.Event
		id, trip   pgtype.UUID
		day        pgtype.UUID
		start, end pgtype.Time
		direction  *int16
	)

	err := s.Scan(&id, &trip, &day, &e.Name, &start, &end, &e.Category, &e.Detail,
		&e.Address, &e.City, &e.Latitude, &e.Longitude, &e.Notes,
		&e.PlaceID, &e.Website, &e.PhoneNumber, &e.OpeningHours, &e.Enriched,
		&e.IsMainTransfer, &direction, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(trip.Bytes)
	if day.Valid {
		did := uuid.UUID(day.Bytes)
		e.DayID = &did
	}
	e.StartTime = pgToClock(start)
	e.EndTime = pgToClock(end)
	if direction != nil {
		d := domain.TransferDirection(*direction)
		e.Direction = &d
	}

	return e, nil
}

// clockToPg converts a minutes-since-midnight clock time to pgtype.Time
// (microseconds since midnight) for a TIME column.
func clockToPg(c domain.ClockTime) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c.Minutes()) * 60_000_000, Valid: true}
}

// clockPtrToPg converts an optional clock time; nil becomes NULL.
func clockPtrToPg(c *domain.ClockTime) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return clockToPg(*c)
}

// pgToClock converts a pgtype.Time back to a clock time, rounding to minutes.
func pgToClock(t pgtype.Time) domain.ClockTime {
	return domain.ClockTime(t.Microseconds / 60_000_000)
}

// pgToClockPtr converts a nullable pgtype.Time; NULL becomes nil.
func pgToClockPtr(t pgtype.Time) *domain.ClockTime {
	if !t.Valid {
		return nil
	}
	c := pgToClock(t)
	return &c
}
