package repository

import (
	"context"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	// Append stores an event; a redelivered event with a known id is ignored.
	Append(ctx context.Context, event domain.BookingEvent) error
	Recent(ctx context.Context, limit int) ([]domain.BookingEvent, error)
}

type PGEventRepository struct {
	db querier
}

func NewEventRepository(db *pgxpool.Pool) EventRepository {
	return &PGEventRepository{db: db}
}

func (r *PGEventRepository) Append(ctx context.Context, e domain.BookingEvent) error {
	_, err := r.db.Exec(ctx, `INSERT INTO booking_events (id, type, booking_id, hotel_id, user_id, status, check_in, check_out, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING`,
		e.ID, e.Type, e.BookingID, e.HotelID, e.UserID, e.Status, e.CheckIn, e.CheckOut, e.OccurredAt)
	if err != nil {
		return storageErr("append event", err)
	}
	return nil
}

func (r *PGEventRepository) Recent(ctx context.Context, limit int) ([]domain.BookingEvent, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type, booking_id, hotel_id, user_id, status, check_in, check_out, occurred_at
		FROM booking_events ORDER BY occurred_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, storageErr("list events", err)
	}
	defer rows.Close()

	events := make([]domain.BookingEvent, 0)
	for rows.Next() {
		var e domain.BookingEvent
		if err := rows.Scan(&e.ID, &e.Type, &e.BookingID, &e.HotelID, &e.UserID, &e.Status, &e.CheckIn, &e.CheckOut, &e.OccurredAt); err != nil {
			return nil, storageErr("list events", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list events", err)
	}
	return events, nil
}

var _ EventRepository = (*PGEventRepository)(nil)
