package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/logging"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/availability"
	"github.com/Domenick1991/hotelbooking/internal/tracing"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type BookingUseCase interface {
	CheckAvailability(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) (*domain.Availability, error)
	CreateBooking(ctx context.Context, caller domain.Caller, input CreateBookingInput) (*domain.Booking, error)
	ConfirmPayment(ctx context.Context, bookingID int64, paymentMethod string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Booking, error)
	GetBooking(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, caller domain.Caller) ([]domain.Booking, error)
	UpcomingBookings(ctx context.Context, caller domain.Caller) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	DeleteBooking(ctx context.Context, bookingID int64) error
	Stats(ctx context.Context) (domain.BookingStats, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	hotels       repository.HotelRepository
	bookings     repository.BookingRepository
	uow          repository.UnitOfWork
	producer     Producer
	bookingTopic string
	logger       logrus.FieldLogger
	now          func() time.Time
}

type CreateBookingInput struct {
	HotelID         int64
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	TotalPriceCents int64
}

type BookingServiceOption func(*BookingService)

// WithProducer enables lifecycle events on topic.
func WithProducer(p Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = p
		s.bookingTopic = topic
	}
}

func WithLogger(logger logrus.FieldLogger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

// WithClock replaces time.Now; "today" is derived from it.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	hotels repository.HotelRepository,
	bookings repository.BookingRepository,
	uow repository.UnitOfWork,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		hotels:   hotels,
		bookings: bookings,
		uow:      uow,
		logger:   logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	service.logger = service.logger.WithField("component", "booking")
	return service
}

func (s *BookingService) today() time.Time {
	return domain.Day(s.now())
}

func (s *BookingService) CheckAvailability(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) (*domain.Availability, error) {
	ctx, span := startSpan(ctx, "booking.CheckAvailability", attribute.Int64("hotel.id", hotelID))
	defer span.End()

	res, err := availability.NewChecker(s.hotels, s.bookings).CheckAvailability(ctx, hotelID, checkIn, checkOut)
	if err != nil {
		return nil, fail(span, err)
	}
	return res, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, caller domain.Caller, input CreateBookingInput) (*domain.Booking, error) {
	ctx, span := startSpan(ctx, "booking.CreateBooking", attribute.Int64("hotel.id", input.HotelID))
	defer span.End()

	if caller.UserID == 0 {
		return nil, fail(span, domain.ErrUnauthorized)
	}

	checkIn, checkOut := domain.Day(input.CheckIn), domain.Day(input.CheckOut)
	today := s.today()
	if checkIn.Before(today) {
		return nil, fail(span, domain.ErrPastCheckInDate)
	}
	if err := availability.ValidateRange(checkIn, checkOut); err != nil {
		return nil, fail(span, err)
	}
	if input.Guests < 1 {
		return nil, fail(span, fmt.Errorf("%w: guests must be at least 1", domain.ErrInvalidInput))
	}
	if input.TotalPriceCents < 0 {
		return nil, fail(span, fmt.Errorf("%w: total price cannot be negative", domain.ErrInvalidInput))
	}

	booking := &domain.Booking{
		HotelID:         input.HotelID,
		UserID:          caller.UserID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          input.Guests,
		TotalPriceCents: input.TotalPriceCents,
		Status:          domain.BookingStatusPending,
		BookingDate:     today,
	}

	err := s.uow.WithinHotel(ctx, input.HotelID, func(ctx context.Context, scope repository.HotelScope) error {
		avail, err := availability.NewChecker(scope.Hotels, scope.Bookings).CheckAvailability(ctx, input.HotelID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if !avail.Available {
			return domain.ErrNoRoomsAvailable
		}
		return scope.Bookings.Insert(ctx, booking)
	})
	if err != nil {
		return nil, fail(span, storage("create booking", err))
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"hotel_id":   booking.HotelID,
		"user_id":    booking.UserID,
	}).Info("booking created")
	s.publish(ctx, domain.EventBookingCreated, booking)
	return booking, nil
}

// ConfirmPayment moves a PENDING booking to CONFIRMED. Confirming an already
// confirmed booking returns it unchanged.
func (s *BookingService) ConfirmPayment(ctx context.Context, bookingID int64, paymentMethod string) (*domain.Booking, error) {
	booking, _, err := s.Confirm(ctx, bookingID, paymentMethod)
	return booking, err
}

// Confirm is ConfirmPayment that also reports whether this call performed the
// PENDING to CONFIRMED transition. Of several concurrent callers exactly one
// sees true.
func (s *BookingService) Confirm(ctx context.Context, bookingID int64, paymentMethod string) (*domain.Booking, bool, error) {
	ctx, span := startSpan(ctx, "booking.ConfirmPayment", attribute.Int64("booking.id", bookingID))
	defer span.End()

	var changed bool
	booking, err := s.transition(ctx, bookingID, func(b *domain.Booking) error {
		switch {
		case b.Status == domain.BookingStatusConfirmed:
			return nil
		case !b.Status.CanTransitionTo(domain.BookingStatusConfirmed):
			return fmt.Errorf("%w: cannot confirm %s booking", domain.ErrInvalidStateTransition, b.Status)
		}
		b.Status = domain.BookingStatusConfirmed
		b.PaymentMethod = paymentMethod
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, fail(span, err)
	}

	if changed {
		s.logger.WithField("booking_id", booking.ID).Info("booking confirmed")
		s.publish(ctx, domain.EventBookingConfirmed, booking)
	}
	return booking, changed, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Booking, error) {
	ctx, span := startSpan(ctx, "booking.CancelBooking", attribute.Int64("booking.id", bookingID))
	defer span.End()

	booking, err := s.transition(ctx, bookingID, func(b *domain.Booking) error {
		if !caller.CanManage(b.UserID) {
			return domain.ErrUnauthorized
		}
		if !b.Status.CanTransitionTo(domain.BookingStatusCancelled) {
			return fmt.Errorf("%w: booking is already %s", domain.ErrInvalidStateTransition, b.Status)
		}
		b.Status = domain.BookingStatusCancelled
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"user_id":    caller.UserID,
	}).Info("booking cancelled")
	s.publish(ctx, domain.EventBookingCancelled, booking)
	return booking, nil
}

// transition re-reads the booking under its hotel's unit of work, lets apply
// mutate it and persists the result. apply leaving the status untouched skips
// the write.
func (s *BookingService) transition(ctx context.Context, bookingID int64, apply func(b *domain.Booking) error) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storage("get booking", err)
	}

	var result *domain.Booking
	err = s.uow.WithinHotel(ctx, current.HotelID, func(ctx context.Context, scope repository.HotelScope) error {
		b, err := scope.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		before := b.Status
		if err := apply(b); err != nil {
			return err
		}
		if b.Status != before {
			if err := scope.Bookings.Update(ctx, b); err != nil {
				return err
			}
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, storage("update booking", err)
	}
	return result, nil
}

func (s *BookingService) GetBooking(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storage("get booking", err)
	}
	if !caller.CanManage(b.UserID) {
		return nil, domain.ErrUnauthorized
	}
	return b, nil
}

func (s *BookingService) ListMyBookings(ctx context.Context, caller domain.Caller) ([]domain.Booking, error) {
	if caller.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}
	list, err := s.bookings.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, storage("list bookings", err)
	}
	return list, nil
}

// UpcomingBookings returns the caller's confirmed stays that have not started
// yet, soonest first.
func (s *BookingService) UpcomingBookings(ctx context.Context, caller domain.Caller) ([]domain.Booking, error) {
	all, err := s.ListMyBookings(ctx, caller)
	if err != nil {
		return nil, err
	}
	today := s.today()
	upcoming := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if b.Status == domain.BookingStatusConfirmed && !b.CheckIn.Before(today) {
			upcoming = append(upcoming, b)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].CheckIn.Before(upcoming[j].CheckIn) })
	return upcoming, nil
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	list, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, storage("list all bookings", err)
	}
	return list, nil
}

// DeleteBooking removes the row outright. It is an administrative escape
// hatch and bypasses the status machine.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID int64) error {
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return storage("delete booking", err)
	}
	s.logger.WithField("booking_id", bookingID).Warn("booking deleted")
	return nil
}

func (s *BookingService) Stats(ctx context.Context) (domain.BookingStats, error) {
	st, err := s.bookings.Stats(ctx)
	if err != nil {
		return domain.BookingStats{}, storage("booking stats", err)
	}
	return st, nil
}

// publish never fails the caller: the booking row is the source of truth.
func (s *BookingService) publish(ctx context.Context, eventType domain.EventType, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := domain.NewBookingEvent(eventType, *booking, s.now())
	if err := s.producer.Publish(ctx, s.bookingTopic, fmt.Sprint(booking.ID), event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"event":      eventType,
		}).Warn("failed to publish booking event")
	}
}

var domainErrors = []error{
	domain.ErrHotelNotFound,
	domain.ErrBookingNotFound,
	domain.ErrInvalidDateRange,
	domain.ErrPastCheckInDate,
	domain.ErrNoRoomsAvailable,
	domain.ErrInvalidStateTransition,
	domain.ErrUnauthorized,
	domain.ErrStorageUnavailable,
	domain.ErrInvalidInput,
	context.Canceled,
	context.DeadlineExceeded,
}

// storage passes domain errors through and reports anything else as a
// storage failure.
func storage(op string, err error) error {
	for _, known := range domainErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracing.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

var _ BookingUseCase = (*BookingService)(nil)
