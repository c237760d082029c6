package repository

import (
	"context"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	LatestByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error)
}

type PGPaymentRepository struct {
	db querier
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func (r *PGPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	err := r.db.QueryRow(ctx, `INSERT INTO payments (booking_id, amount_cents, method, transaction_id, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		p.BookingID, p.AmountCents, p.Method, p.TransactionID, p.Status).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return storageErr("create payment", err)
	}
	return nil
}

func (r *PGPaymentRepository) LatestByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.QueryRow(ctx, `SELECT id, booking_id, amount_cents, method, transaction_id, status, created_at
		FROM payments WHERE booking_id=$1 ORDER BY id DESC LIMIT 1`, bookingID).
		Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.Method, &p.TransactionID, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrPaymentNotFound, "get payment")
	}
	return &p, nil
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
