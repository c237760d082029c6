package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HotelScope exposes the stores bound to one per-hotel unit of work.
type HotelScope struct {
	Hotels   HotelRepository
	Bookings BookingRepository
}

// UnitOfWork serialises writers per hotel. Everything fn does through the
// scope commits or rolls back together; other hotels are not blocked.
type UnitOfWork interface {
	WithinHotel(ctx context.Context, hotelID int64, fn func(ctx context.Context, scope HotelScope) error) error
}

type PGUnitOfWork struct {
	db *pgxpool.Pool
}

func NewUnitOfWork(db *pgxpool.Pool) UnitOfWork {
	return &PGUnitOfWork{db: db}
}

func (u *PGUnitOfWork) WithinHotel(ctx context.Context, hotelID int64, fn func(ctx context.Context, scope HotelScope) error) error {
	tx, err := u.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return storageErr("begin tx", err)
	}
	defer tx.Rollback(ctx)

	// The hotel row lock is the per-hotel mutex: concurrent creates for the
	// same hotel queue here until the holder commits or rolls back.
	var id int64
	if err := tx.QueryRow(ctx, `SELECT id FROM hotels WHERE id=$1 FOR UPDATE`, hotelID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrHotelNotFound
		}
		return storageErr("lock hotel", err)
	}

	if err := fn(ctx, HotelScope{
		Hotels:   &PGHotelRepository{db: tx},
		Bookings: &PGBookingRepository{db: tx},
	}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit tx", err)
	}
	return nil
}

var _ UnitOfWork = (*PGUnitOfWork)(nil)
