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

// LinkRepo defines the persistence operations for Links and the trip_links
// join table.
type LinkRepo interface {
	// Upsert inserts a link by (author, url), or returns the existing link
	// if the author already saved that URL. The title of the first save is
	// preserved on conflict.
	Upsert(ctx context.Context, authorID uuid.UUID, title, url string) (domain.Link, error)

	// AddToTrip attaches a link to a trip. Idempotent — no error if already attached.
	AddToTrip(ctx context.Context, tripID, linkID uuid.UUID) error

	// RemoveFromTrip detaches a link from a trip.
	// Returns domain.ErrNotFound if the link is not attached to the trip.
	RemoveFromTrip(ctx context.Context, tripID, linkID uuid.UUID) error

	// ListByTrip returns all links attached to a trip, ordered by creation time.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

// pgLinkRepo is the Postgres implementation of LinkRepo.
type pgLinkRepo struct {
	db db
}

// NewLinkRepo constructs a LinkRepo backed by the provided db connection.
func NewLinkRepo(db db) LinkRepo {
	return &pgLinkRepo{db: db}
}

const linkColumns = `id, author_id, title, url, created_at`

// Upsert inserts a link or returns the existing row on (author, url)
// conflict. The DO UPDATE SET trick forces the RETURNING clause to fire even
// when the conflict handler skips the insert — without it, RETURNING returns
// nothing on DO NOTHING conflicts.
func (r *pgLinkRepo) Upsert(ctx context.Context, authorID uuid.UUID, title, url string) (domain.Link, error) {
	const q = `
		INSERT INTO links (author_id, title, url)
		VALUES (@author_id, @title, @url)
		ON CONFLICT (author_id, url) DO UPDATE SET url = EXCLUDED.url
		RETURNING ` + linkColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"author_id": authorID, "title": title, "url": url})
	result, err := scanLink(row)
	if err != nil {
		return domain.Link{}, fmt.Errorf("repo.LinkRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgLinkRepo) AddToTrip(ctx context.Context, tripID, linkID uuid.UUID) error {
	const q = `
		INSERT INTO trip_links (trip_id, link_id)
		VALUES (@trip_id, @link_id)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "link_id": linkID}); err != nil {
		return fmt.Errorf("repo.LinkRepo.AddToTrip: %w", err)
	}
	return nil
}

func (r *pgLinkRepo) RemoveFromTrip(ctx context.Context, tripID, linkID uuid.UUID) error {
	const q = `DELETE FROM trip_links WHERE trip_id = @trip_id AND link_id = @link_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "link_id": linkID})
	if err != nil {
		return fmt.Errorf("repo.LinkRepo.RemoveFromTrip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LinkRepo.RemoveFromTrip: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgLinkRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	const q = `
		SELECT l.id, l.author_id, l.title, l.url, l.created_at
		FROM links l
		JOIN trip_links tl ON tl.link_id = l.id
		WHERE tl.trip_id = @trip_id
		ORDER BY l.created_at, l.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LinkRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LinkRepo.ListByTrip: scan: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LinkRepo.ListByTrip: rows: %w", err)
	}

	return links, nil
}

// scanLink maps a single database row into a domain.Link.
func scanLink(s scanner) (domain.Link, error) {
	var (
		l        domain.Link
		id, auth pgtype.UUID
	)

	if err := s.Scan(&id, &auth, &l.Title, &l.URL, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Link{}, domain.ErrNotFound
		}
		return domain.Link{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	l.AuthorID = uuid.UUID(auth.Bytes)

	return l, nil
}
