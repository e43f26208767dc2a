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

// StayRepo defines the persistence operations for Stays.
type StayRepo interface {
	// Create inserts a new stay and returns the persisted record.
	Create(ctx context.Context, stay domain.Stay) (domain.Stay, error)

	// GetByID retrieves a single stay by its UUID primary key.
	// Returns domain.ErrNotFound if no stay with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Stay, error)

	// ListByTrip returns the distinct stays referenced by the trip's days,
	// ordered by the first date each stay covers.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stay, error)

	// Candidates returns the distinct stays referenced by any day of the
	// given trip, excluding one stay. This is the reassignment candidate
	// query for stay deletion.
	Candidates(ctx context.Context, tripID, excludeStayID uuid.UUID) ([]domain.Stay, error)

	// Update overwrites the mutable fields of a stay and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, stay domain.Stay) (domain.Stay, error)

	// Delete removes a stay by ID. The schema restricts deletion while any
	// day still references the stay; callers must clear or reassign the
	// references in the same transaction first.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgStayRepo is the Postgres implementation of StayRepo.
type pgStayRepo struct {
	db db
}

// NewStayRepo constructs a StayRepo backed by the provided db connection.
func NewStayRepo(db db) StayRepo {
	return &pgStayRepo{db: db}
}

const stayColumns = `id, name, check_in, check_out, cancellation_date, phone_number, website,
		address, city, latitude, longitude, notes, created_at, updated_at`

func stayArgs(s domain.Stay) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                s.ID,
		"name":              s.Name,
		"check_in":          clockPtrToPg(s.CheckIn),
		"check_out":         clockPtrToPg(s.CheckOut),
		"cancellation_date": s.CancellationDate,
		"phone_number":      s.PhoneNumber,
		"website":           s.Website,
		"address":           s.Address,
		"city":              s.City,
		"latitude":          s.Latitude,
		"longitude":         s.Longitude,
		"notes":             s.Notes,
	}
}

func (r *pgStayRepo) Create(ctx context.Context, stay domain.Stay) (domain.Stay, error) {
	const q = `
		INSERT INTO stays (name, check_in, check_out, cancellation_date, phone_number, website,
			address, city, latitude, longitude, notes)
		VALUES (@name, @check_in, @check_out, @cancellation_date, @phone_number, @website,
			@address, @city, @latitude, @longitude, @notes)
		RETURNING ` + stayColumns

	row := r.db.QueryRow(ctx, q, stayArgs(stay))
	result, err := scanStay(row)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("repo.StayRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStayRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stay, error) {
	const q = `SELECT ` + stayColumns + ` FROM stays WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanStay(row)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("repo.StayRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStayRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stay, error) {
	const q = `
		SELECT ` + stayColumns + `
		FROM stays s
		WHERE s.id IN (SELECT d.stay_id FROM days d WHERE d.trip_id = @trip_id AND d.stay_id IS NOT NULL)
		ORDER BY (SELECT min(d.date) FROM days d WHERE d.stay_id = s.id)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StayRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	stays, err := collectStays(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.StayRepo.ListByTrip: %w", err)
	}
	return stays, nil
}

func (r *pgStayRepo) Candidates(ctx context.Context, tripID, excludeStayID uuid.UUID) ([]domain.Stay, error) {
	const q = `
		SELECT ` + stayColumns + `
		FROM stays s
		WHERE s.id <> @exclude
		  AND s.id IN (SELECT d.stay_id FROM days d WHERE d.trip_id = @trip_id AND d.stay_id IS NOT NULL)
		ORDER BY s.name, s.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "exclude": excludeStayID})
	if err != nil {
		return nil, fmt.Errorf("repo.StayRepo.Candidates: %w", err)
	}
	defer rows.Close()

	stays, err := collectStays(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.StayRepo.Candidates: %w", err)
	}
	return stays, nil
}

func (r *pgStayRepo) Update(ctx context.Context, stay domain.Stay) (domain.Stay, error) {
	const q = `
		UPDATE stays
		SET name              = @name,
		    check_in          = @check_in,
		    check_out         = @check_out,
		    cancellation_date = @cancellation_date,
		    phone_number      = @phone_number,
		    website           = @website,
		    address           = @address,
		    city              = @city,
		    latitude          = @latitude,
		    longitude         = @longitude,
		    notes             = @notes,
		    updated_at        = now()
		WHERE id = @id
		RETURNING ` + stayColumns

	row := r.db.QueryRow(ctx, q, stayArgs(stay))
	result, err := scanStay(row)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("repo.StayRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStayRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM stays WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.StayRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StayRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func collectStays(rows pgx.Rows) ([]domain.Stay, error) {
	var stays []domain.Stay
	for rows.Next() {
		st, err := scanStay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		stays = append(stays, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return stays, nil
}

// scanStay maps a single database row into a domain.Stay.
func scanStay(s scanner) (domain.Stay, error) {
	var (
		st       domain.Stay
		id       pgtype.UUID
		in, out  pgtype.Time
		cancelAt pgtype.Date
	)

	err := s.Scan(&id, &st.Name, &in, &out, &cancelAt, &st.PhoneNumber, &st.Website,
		&st.Address, &st.City, &st.Latitude, &st.Longitude, &st.Notes, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stay{}, domain.ErrNotFound
		}
		return domain.Stay{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	st.CheckIn = pgToClockPtr(in)
	st.CheckOut = pgToClockPtr(out)
	if cancelAt.Valid {
		d := cancelAt.Time
		st.CancellationDate = &d
	}

	return st, nil
}
