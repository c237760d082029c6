package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (domain.BookingStats, error)
}

type PGBookingRepository struct {
	db querier
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, hotel_id, user_id, check_in, check_out, guests, total_price_cents, status, payment_method, booking_date, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.HotelID, &b.UserID, &b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalPriceCents, &b.Status, &b.PaymentMethod, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) queryBookings(ctx context.Context, op, sql string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return bookings, nil
}

func (r *PGBookingRepository) Insert(ctx context.Context, b *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (hotel_id, user_id, check_in, check_out, guests, total_price_cents, status, payment_method, booking_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		b.HotelID, b.UserID, b.CheckIn, b.CheckOut, b.Guests, b.TotalPriceCents, b.Status, b.PaymentMethod, b.BookingDate).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return storageErr("insert booking", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrBookingNotFound, "get booking")
	}
	return b, nil
}

func (r *PGBookingRepository) FindOverlapping(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	return r.queryBookings(ctx, "find overlapping bookings", `SELECT `+bookingColumns+` FROM bookings
		WHERE hotel_id=$1 AND status <> $2 AND check_in < $3 AND check_out > $4
		ORDER BY check_in`, hotelID, domain.BookingStatusCancelled, checkOut, checkIn)
}

func (r *PGBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	err := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, payment_method=$2, updated_at=now()
		WHERE id=$3 RETURNING updated_at`, b.Status, b.PaymentMethod, b.ID).Scan(&b.UpdatedAt)
	if err != nil {
		return notFoundOr(err, domain.ErrBookingNotFound, "update booking")
	}
	return nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.queryBookings(ctx, "list user bookings", `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY booking_date DESC, id DESC`, userID)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.queryBookings(ctx, "list bookings", `SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date DESC, id DESC`)
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return storageErr("delete booking", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *PGBookingRepository) Stats(ctx context.Context) (domain.BookingStats, error) {
	var s domain.BookingStats
	err := r.db.QueryRow(ctx, `SELECT count(*),
		count(*) FILTER (WHERE status=$1),
		count(*) FILTER (WHERE status=$2),
		count(*) FILTER (WHERE status=$3)
		FROM bookings`, domain.BookingStatusPending, domain.BookingStatusConfirmed, domain.BookingStatusCancelled).
		Scan(&s.Total, &s.Pending, &s.Confirmed, &s.Cancelled)
	if err != nil {
		return domain.BookingStats{}, storageErr("booking stats", err)
	}
	return s, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
