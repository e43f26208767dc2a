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

// DayRepo defines the persistence operations for Days.
// The day scheduler drives Create/Renumber/Delete inside one transaction;
// stay reassignment drives the stay-reference operations.
type DayRepo interface {
	// Create inserts a new day and returns the persisted record.
	Create(ctx context.Context, day domain.Day) (domain.Day, error)

	// GetByID retrieves a single day by its UUID primary key.
	// Returns domain.ErrNotFound if no day with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error)

	// ListByTrip returns all days of a trip ordered by number ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)

	// ListByStay returns all days referencing the given stay, ordered by date.
	ListByStay(ctx context.Context, stayID uuid.UUID) ([]domain.Day, error)

	// Renumber sets the number of an existing day.
	Renumber(ctx context.Context, id uuid.UUID, number int) error

	// SetStay updates the stay reference of one day. Pass nil to clear it.
	SetStay(ctx context.Context, id uuid.UUID, stayID *uuid.UUID) error

	// ReassignStay moves every day referencing fromStay to toStay.
	// A nil toStay clears the reference. Returns the number of days moved.
	ReassignStay(ctx context.Context, fromStay uuid.UUID, toStay *uuid.UUID) (int64, error)

	// Delete removes a day by ID. Events on the day are detached by the
	// schema (day_id set NULL), not deleted — they return to the trip's
	// unpaired backlog.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgDayRepo is the Postgres implementation of DayRepo.
type pgDayRepo struct {
	db db
}

// NewDayRepo constructs a DayRepo backed by the provided db connection.
func NewDayRepo(db db) DayRepo {
	return &pgDayRepo{db: db}
}

const dayColumns = `id, trip_id, stay_id, number, date`

func (r *pgDayRepo) Create(ctx context.Context, day domain.Day) (domain.Day, error) {
	const q = `
		INSERT INTO days (trip_id, stay_id, number, date)
		VALUES (@trip_id, @stay_id, @number, @date)
		RETURNING ` + dayColumns

	args := pgx.NamedArgs{
		"trip_id": day.TripID,
		"stay_id": day.StayID,
		"number":  day.Number,
		"date":    day.Date,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDay(row)
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDay(row)
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE trip_id = @trip_id ORDER BY number`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	days, err := collectDays(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: %w", err)
	}
	return days, nil
}

func (r *pgDayRepo) ListByStay(ctx context.Context, stayID uuid.UUID) ([]domain.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE stay_id = @stay_id ORDER BY date`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"stay_id": stayID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByStay: %w", err)
	}
	defer rows.Close()

	days, err := collectDays(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByStay: %w", err)
	}
	return days, nil
}

func (r *pgDayRepo) Renumber(ctx context.Context, id uuid.UUID, number int) error {
	const q = `UPDATE days SET number = @number WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "number": number})
	if err != nil {
		return fmt.Errorf("repo.DayRepo.Renumber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayRepo.Renumber: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDayRepo) SetStay(ctx context.Context, id uuid.UUID, stayID *uuid.UUID) error {
	const q = `UPDATE days SET stay_id = @stay_id WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "stay_id": stayID})
	if err != nil {
		return fmt.Errorf("repo.DayRepo.SetStay: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayRepo.SetStay: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDayRepo) ReassignStay(ctx context.Context, fromStay uuid.UUID, toStay *uuid.UUID) (int64, error) {
	const q = `UPDATE days SET stay_id = @to_stay WHERE stay_id = @from_stay`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"from_stay": fromStay, "to_stay": toStay})
	if err != nil {
		return 0, fmt.Errorf("repo.DayRepo.ReassignStay: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgDayRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM days WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DayRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func collectDays(rows pgx.Rows) ([]domain.Day, error) {
	var days []domain.Day
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return days, nil
}

// scanDay maps a single database row into a domain.Day.
func scanDay(s scanner) (domain.Day, error) {
	var (
		d        domain.Day
		id, trip pgtype.UUID
		stay     pgtype.UUID
		date     pgtype.Date
	)

	if err := s.Scan(&id, &trip, &stay, &d.Number, &date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Day{}, domain.ErrNotFound
		}
		return domain.Day{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(trip.Bytes)
	if stay.Valid {
		sid := uuid.UUID(stay.Bytes)
		d.StayID = &sid
	}
	d.Date = date.Time

	return d, nil
}
