package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/logging"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/tracing"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type PaymentUseCase interface {
	Pay(ctx context.Context, caller domain.Caller, bookingID int64, input PayInput) (*Result, error)
	GetPayment(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Payment, error)
}

// BookingEngine is the part of the booking service payments drive.
type BookingEngine interface {
	GetBooking(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Booking, error)
	// Confirm reports whether this call moved the booking to CONFIRMED.
	Confirm(ctx context.Context, bookingID int64, paymentMethod string) (*domain.Booking, bool, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Locker keeps two payments for one booking from running at once.
type Locker interface {
	AcquirePaymentLock(ctx context.Context, bookingID int64, ttl time.Duration) (bool, error)
	ReleasePaymentLock(ctx context.Context, bookingID int64) error
}

type PayInput struct {
	Method string
	Card   CardDetails
}

type Result struct {
	Payment *domain.Payment `json:"payment"`
	Booking *domain.Booking `json:"booking"`
}

type PaymentService struct {
	engine        BookingEngine
	payments      repository.PaymentRepository
	simulator     *Simulator
	producer      Producer
	topic         string
	locker        Locker
	lockTTL       time.Duration
	defaultMethod string
	logger        logrus.FieldLogger
	now           func() time.Time
}

type PaymentServiceOption func(*PaymentService)

func WithProducer(p Producer, topic string) PaymentServiceOption {
	return func(s *PaymentService) {
		s.producer = p
		s.topic = topic
	}
}

func WithLocker(l Locker, ttl time.Duration) PaymentServiceOption {
	return func(s *PaymentService) {
		s.locker = l
		s.lockTTL = ttl
	}
}

func WithLogger(logger logrus.FieldLogger) PaymentServiceOption {
	return func(s *PaymentService) {
		s.logger = logger
	}
}

func WithDefaultMethod(method string) PaymentServiceOption {
	return func(s *PaymentService) {
		s.defaultMethod = method
	}
}

func NewPaymentService(engine BookingEngine, payments repository.PaymentRepository, simulator *Simulator, opts ...PaymentServiceOption) *PaymentService {
	s := &PaymentService{
		engine:        engine,
		payments:      payments,
		simulator:     simulator,
		defaultMethod: "CARD",
		logger:        logging.Discard(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("component", "payment")
	return s
}

// Pay runs a card through the simulator and confirms the booking on success.
// A declined card is recorded as a FAILED payment, leaves the booking PENDING
// and returns ErrPaymentDeclined together with the result. Only the payer
// whose confirmation wins writes a SUCCESS row.
func (s *PaymentService) Pay(ctx context.Context, caller domain.Caller, bookingID int64, input PayInput) (*Result, error) {
	ctx, span := tracing.Tracer().Start(ctx, "payment.Pay", trace.WithAttributes(attribute.Int64("booking.id", bookingID)))
	defer span.End()

	booking, err := s.engine.GetBooking(ctx, caller, bookingID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if res, done, err := s.settled(ctx, booking); done {
		return res, s.fail(span, err)
	}

	if s.locker != nil {
		locked, err := s.locker.AcquirePaymentLock(ctx, bookingID, s.lockTTL)
		switch {
		case err != nil:
			// best effort; Confirm still lets only one payer through
			s.logger.WithError(err).Warn("payment lock unavailable")
		case !locked:
			return nil, s.fail(span, fmt.Errorf("%w: payment already in progress", domain.ErrConflict))
		default:
			defer func() {
				if err := s.locker.ReleasePaymentLock(context.WithoutCancel(ctx), bookingID); err != nil {
					s.logger.WithError(err).Warn("failed to release payment lock")
				}
			}()
			// the previous holder may have settled the booking meanwhile
			if booking, err = s.engine.GetBooking(ctx, caller, bookingID); err != nil {
				return nil, s.fail(span, err)
			}
			if res, done, err := s.settled(ctx, booking); done {
				return res, s.fail(span, err)
			}
		}
	}

	method := input.Method
	if method == "" {
		method = s.defaultMethod
	}

	ok, err := s.simulator.Authorize(ctx, input.Card)
	if err != nil {
		return nil, s.fail(span, err)
	}

	if !ok {
		p := &domain.Payment{
			BookingID:   booking.ID,
			AmountCents: booking.TotalPriceCents,
			Method:      method,
			Status:      domain.PaymentStatusFailed,
		}
		if err := s.payments.Create(ctx, p); err != nil {
			return nil, s.fail(span, err)
		}
		s.logger.WithField("booking_id", booking.ID).Info("payment declined")
		s.publish(ctx, booking)
		return &Result{Payment: p, Booking: booking}, s.fail(span, domain.ErrPaymentDeclined)
	}

	confirmed, changed, err := s.engine.Confirm(ctx, booking.ID, method)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if !changed {
		s.logger.WithField("booking_id", booking.ID).Info("booking confirmed by a concurrent payment")
		res, _, err := s.settled(ctx, confirmed)
		return res, s.fail(span, err)
	}

	p := &domain.Payment{
		BookingID:     booking.ID,
		AmountCents:   booking.TotalPriceCents,
		Method:        method,
		TransactionID: "TXN-" + uuid.NewString(),
		Status:        domain.PaymentStatusSuccess,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		// the booking is already confirmed; losing the receipt is not fatal
		s.logger.WithError(err).WithField("booking_id", booking.ID).Error("failed to record payment")
		return &Result{Booking: confirmed}, nil
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"transaction_id": p.TransactionID,
	}).Info("payment accepted")
	return &Result{Payment: p, Booking: confirmed}, nil
}

// settled reports whether b no longer takes payments. A CONFIRMED booking
// yields its latest payment, a CANCELLED one an error.
func (s *PaymentService) settled(ctx context.Context, b *domain.Booking) (*Result, bool, error) {
	switch b.Status {
	case domain.BookingStatusCancelled:
		return nil, true, fmt.Errorf("%w: booking is cancelled", domain.ErrInvalidStateTransition)
	case domain.BookingStatusConfirmed:
		latest, err := s.payments.LatestByBooking(ctx, b.ID)
		if err != nil && !errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, true, err
		}
		return &Result{Payment: latest, Booking: b}, true, nil
	}
	return nil, false, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Payment, error) {
	if _, err := s.engine.GetBooking(ctx, caller, bookingID); err != nil {
		return nil, err
	}
	return s.payments.LatestByBooking(ctx, bookingID)
}

func (s *PaymentService) publish(ctx context.Context, booking *domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := domain.NewBookingEvent(domain.EventPaymentFailed, *booking, s.now())
	if err := s.producer.Publish(ctx, s.topic, fmt.Sprint(booking.ID), event); err != nil {
		s.logger.WithError(err).WithField("booking_id", booking.ID).Warn("failed to publish payment event")
	}
}

func (s *PaymentService) fail(span trace.Span, err error) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

var _ PaymentUseCase = (*PaymentService)(nil)
