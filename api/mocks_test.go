package api

import (
	"context"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/auth"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/payment"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) booking(args mock.Arguments) (*domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CheckAvailability(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) (*domain.Availability, error) {
	args := m.Called(ctx, hotelID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Availability), args.Error(1)
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, caller domain.Caller, input booking.CreateBookingInput) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, caller, input))
}

func (m *MockBookingUseCase) ConfirmPayment(ctx context.Context, bookingID int64, paymentMethod string) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, bookingID, paymentMethod))
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, caller, bookingID))
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, caller, bookingID))
}

func (m *MockBookingUseCase) ListMyBookings(ctx context.Context, caller domain.Caller) ([]domain.Booking, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UpcomingBookings(ctx context.Context, caller domain.Caller) ([]domain.Booking, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) DeleteBooking(ctx context.Context, bookingID int64) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *MockBookingUseCase) Stats(ctx context.Context) (domain.BookingStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.BookingStats), args.Error(1)
}

type MockHotelUseCase struct {
	mock.Mock
}

func (m *MockHotelUseCase) hotel(args mock.Arguments) (*domain.Hotel, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelUseCase) List(ctx context.Context) ([]domain.Hotel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

func (m *MockHotelUseCase) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	return m.hotel(m.Called(ctx, id))
}

func (m *MockHotelUseCase) Search(ctx context.Context, location, name string) ([]domain.Hotel, error) {
	args := m.Called(ctx, location, name)
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

func (m *MockHotelUseCase) Featured(ctx context.Context) ([]domain.Hotel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

func (m *MockHotelUseCase) Destinations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHotelUseCase) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHotelUseCase) Create(ctx context.Context, h domain.Hotel) (*domain.Hotel, error) {
	return m.hotel(m.Called(ctx, h))
}

func (m *MockHotelUseCase) Update(ctx context.Context, id int64, h domain.Hotel) (*domain.Hotel, error) {
	return m.hotel(m.Called(ctx, id, h))
}

func (m *MockHotelUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) Pay(ctx context.Context, caller domain.Caller, bookingID int64, input payment.PayInput) (*payment.Result, error) {
	args := m.Called(ctx, caller, bookingID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Result), args.Error(1)
}

func (m *MockPaymentUseCase) GetPayment(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, caller, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	return m.user(m.Called(ctx, input))
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthUseCase) ParseToken(ctx context.Context, token string) (domain.Caller, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Caller), args.Error(1)
}

func (m *MockAuthUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockAuthUseCase) UpdateUser(ctx context.Context, id int64, update auth.UserUpdate) (*domain.User, error) {
	return m.user(m.Called(ctx, id, update))
}

func (m *MockAuthUseCase) EnsureUser(ctx context.Context, input auth.RegisterInput, role domain.Role) (*domain.User, error) {
	return m.user(m.Called(ctx, input, role))
}

type MockActivityUseCase struct {
	mock.Mock
}

func (m *MockActivityUseCase) Record(ctx context.Context, event domain.BookingEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockActivityUseCase) Recent(ctx context.Context, limit int) ([]domain.BookingEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.BookingEvent), args.Error(1)
}
