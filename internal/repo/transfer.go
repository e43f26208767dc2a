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

// TransferRepo defines the persistence operations for simple (event→event)
// and stay (stay→stay) transfers. The registry service validates endpoint
// uniqueness through the Find* lookups before persisting; the schema's
// unique constraints back the same invariant at the database level.
type TransferRepo interface {
	// CreateSimple inserts a new event transfer.
	CreateSimple(ctx context.Context, t domain.SimpleTransfer) (domain.SimpleTransfer, error)

	// UpdateSimple overwrites the mutable fields of an event transfer.
	// Returns domain.ErrNotFound if it does not exist.
	UpdateSimple(ctx context.Context, t domain.SimpleTransfer) (domain.SimpleTransfer, error)

	// GetSimpleByID retrieves an event transfer by primary key.
	GetSimpleByID(ctx context.Context, id uuid.UUID) (domain.SimpleTransfer, error)

	// FindSimpleByFromEvent returns the transfer whose source is the given
	// event, skipping exclude (uuid.Nil to skip nothing).
	// Returns domain.ErrNotFound when there is none.
	FindSimpleByFromEvent(ctx context.Context, eventID, exclude uuid.UUID) (domain.SimpleTransfer, error)

	// FindSimpleByToEvent is the incoming-side counterpart of
	// FindSimpleByFromEvent.
	FindSimpleByToEvent(ctx context.Context, eventID, exclude uuid.UUID) (domain.SimpleTransfer, error)

	// DeleteSimple removes an event transfer by ID.
	DeleteSimple(ctx context.Context, id uuid.UUID) error

	// CreateStay inserts a new stay transfer.
	CreateStay(ctx context.Context, t domain.StayTransfer) (domain.StayTransfer, error)

	// UpdateStay overwrites the mutable fields of a stay transfer.
	UpdateStay(ctx context.Context, t domain.StayTransfer) (domain.StayTransfer, error)

	// GetStayByID retrieves a stay transfer by primary key.
	GetStayByID(ctx context.Context, id uuid.UUID) (domain.StayTransfer, error)

	// FindStayByFromStay returns the transfer whose source is the given
	// stay, skipping exclude (uuid.Nil to skip nothing).
	FindStayByFromStay(ctx context.Context, stayID, exclude uuid.UUID) (domain.StayTransfer, error)

	// FindStayByToStay is the incoming-side counterpart of FindStayByFromStay.
	FindStayByToStay(ctx context.Context, stayID, exclude uuid.UUID) (domain.StayTransfer, error)

	// DeleteStay removes a stay transfer by ID.
	DeleteStay(ctx context.Context, id uuid.UUID) error
}

// pgTransferRepo is the Postgres implementation of TransferRepo.
type pgTransferRepo struct {
	db db
}

// NewTransferRepo constructs a TransferRepo backed by the provided db connection.
func NewTransferRepo(db db) TransferRepo {
	return &pgTransferRepo{db: db}
}

const simpleColumns = `id, from_event_id, to_event_id, transport_mode, notes, created_at, updated_at`

func (r *pgTransferRepo) CreateSimple(ctx context.Context, t domain.SimpleTransfer) (domain.SimpleTransfer, error) {
	const q = `
		INSERT INTO simple_transfers (from_event_id, to_event_id, transport_mode, notes)
		VALUES (@from_event_id, @to_event_id, @transport_mode, @notes)
		RETURNING ` + simpleColumns

	args := pgx.NamedArgs{
		"from_event_id":  t.FromEventID,
		"to_event_id":    t.ToEventID,
		"transport_mode": t.TransportMode,
		"notes":          t.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSimpleTransfer(row)
	if err != nil {
		return domain.SimpleTransfer{}, fmt.Errorf("repo.TransferRepo.CreateSimple: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) UpdateSimple(ctx context.Context, t domain.SimpleTransfer) (domain.SimpleTransfer, error) {
	const q = `
		UPDATE simple_transfers
		SET from_event_id  = @from_event_id,
		    to_event_id    = @to_event_id,
		    transport_mode = @transport_mode,
		    notes          = @notes,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + simpleColumns

	args := pgx.NamedArgs{
		"id":             t.ID,
		"from_event_id":  t.FromEventID,
		"to_event_id":    t.ToEventID,
		"transport_mode": t.TransportMode,
		"notes":          t.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSimpleTransfer(row)
	if err != nil {
		return domain.SimpleTransfer{}, fmt.Errorf("repo.TransferRepo.UpdateSimple: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) GetSimpleByID(ctx context.Context, id uuid.UUID) (domain.SimpleTransfer, error) {
	const q = `SELECT ` + simpleColumns + ` FROM simple_transfers WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanSimpleTransfer(row)
	if err != nil {
		return domain.SimpleTransfer{}, fmt.Errorf("repo.TransferRepo.GetSimpleByID: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) FindSimpleByFromEvent(ctx context.Context, eventID, exclude uuid.UUID) (domain.SimpleTransfer, error) {
	const q = `SELECT ` + simpleColumns + ` FROM simple_transfers WHERE from_event_id = @event_id AND id <> @exclude`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"event_id": eventID, "exclude": exclude})
	result, err := scanSimpleTransfer(row)
	if err != nil {
		return domain.SimpleTransfer{}, fmt.Errorf("repo.TransferRepo.FindSimpleByFromEvent: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) FindSimpleByToEvent(ctx context.Context, eventID, exclude uuid.UUID) (domain.SimpleTransfer, error) {
	const q = `SELECT ` + simpleColumns + ` FROM simple_transfers WHERE to_event_id = @event_id AND id <> @exclude`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"event_id": eventID, "exclude": exclude})
	result, err := scanSimpleTransfer(row)
	if err != nil {
		return domain.SimpleTransfer{}, fmt.Errorf("repo.TransferRepo.FindSimpleByToEvent: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) DeleteSimple(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM simple_transfers WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TransferRepo.DeleteSimple: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TransferRepo.DeleteSimple: %w", domain.ErrNotFound)
	}
	return nil
}

const stayTransferColumns = `id, from_stay_id, to_stay_id, transport_mode, notes, created_at, updated_at`

func (r *pgTransferRepo) CreateStay(ctx context.Context, t domain.StayTransfer) (domain.StayTransfer, error) {
	const q = `
		INSERT INTO stay_transfers (from_stay_id, to_stay_id, transport_mode, notes)
		VALUES (@from_stay_id, @to_stay_id, @transport_mode, @notes)
		RETURNING ` + stayTransferColumns

	args := pgx.NamedArgs{
		"from_stay_id":   t.FromStayID,
		"to_stay_id":     t.ToStayID,
		"transport_mode": t.TransportMode,
		"notes":          t.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStayTransfer(row)
	if err != nil {
		return domain.StayTransfer{}, fmt.Errorf("repo.TransferRepo.CreateStay: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) UpdateStay(ctx context.Context, t domain.StayTransfer) (domain.StayTransfer, error) {
	const q = `
		UPDATE stay_transfers
		SET from_stay_id   = @from_stay_id,
		    to_stay_id     = @to_stay_id,
		    transport_mode = @transport_mode,
		    notes          = @notes,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + stayTransferColumns

	args := pgx.NamedArgs{
		"id":             t.ID,
		"from_stay_id":   t.FromStayID,
		"to_stay_id":     t.ToStayID,
		"transport_mode": t.TransportMode,
		"notes":          t.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStayTransfer(row)
	if err != nil {
		return domain.StayTransfer{}, fmt.Errorf("repo.TransferRepo.UpdateStay: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) GetStayByID(ctx context.Context, id uuid.UUID) (domain.StayTransfer, error) {
	const q = `SELECT ` + stayTransferColumns + ` FROM stay_transfers WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanStayTransfer(row)
	if err != nil {
		return domain.StayTransfer{}, fmt.Errorf("repo.TransferRepo.GetStayByID: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) FindStayByFromStay(ctx context.Context, stayID, exclude uuid.UUID) (domain.StayTransfer, error) {
	const q = `SELECT ` + stayTransferColumns + ` FROM stay_transfers WHERE from_stay_id = @stay_id AND id <> @exclude`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"stay_id": stayID, "exclude": exclude})
	result, err := scanStayTransfer(row)
	if err != nil {
		return domain.StayTransfer{}, fmt.Errorf("repo.TransferRepo.FindStayByFromStay: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) FindStayByToStay(ctx context.Context, stayID, exclude uuid.UUID) (domain.StayTransfer, error) {
	const q = `SELECT ` + stayTransferColumns + ` FROM stay_transfers WHERE to_stay_id = @stay_id AND id <> @exclude`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"stay_id": stayID, "exclude": exclude})
	result, err := scanStayTransfer(row)
	if err != nil {
		return domain.StayTransfer{}, fmt.Errorf("repo.TransferRepo.FindStayByToStay: %w", err)
	}
	return result, nil
}

func (r *pgTransferRepo) DeleteStay(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM stay_transfers WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TransferRepo.DeleteStay: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TransferRepo.DeleteStay: %w", domain.ErrNotFound)
	}
	return nil
}

// scanSimpleTransfer maps a single database row into a domain.SimpleTransfer.
func scanSimpleTransfer(s scanner) (domain.SimpleTransfer, error) {
	var (
		t            domain.SimpleTransfer
		id, from, to pgtype.UUID
	)

	err := s.Scan(&id, &from, &to, &t.TransportMode, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SimpleTransfer{}, domain.ErrNotFound
		}
		return domain.SimpleTransfer{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.FromEventID = uuid.UUID(from.Bytes)
	t.ToEventID = uuid.UUID(to.Bytes)

	return t, nil
}

// scanStayTransfer maps a single database row into a domain.StayTransfer.
func scanStayTransfer(s scanner) (domain.StayTransfer, error) {
	var (
		t            domain.StayTransfer
		id, from, to pgtype.UUID
	)

	err := s.Scan(&id, &from, &to, &t.TransportMode, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StayTransfer{}, domain.ErrNotFound
		}
		return domain.StayTransfer{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.FromStayID = uuid.UUID(from.Bytes)
	t.ToStayID = uuid.UUID(to.Bytes)

	return t, nil
}
