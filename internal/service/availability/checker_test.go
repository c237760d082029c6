package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHotelCatalog struct {
	mock.Mock
}

func (m *MockHotelCatalog) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) FindOverlapping(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, hotelID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func day(s string) time.Time {
	d, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestChecker_Available(t *testing.T) {
	hotels := &MockHotelCatalog{}
	bookings := &MockBookingStore{}
	checker := NewChecker(hotels, bookings)
	ctx := context.Background()

	hotels.On("GetByID", ctx, int64(1)).Return(&domain.Hotel{ID: 1, TotalRooms: 2}, nil).Once()
	bookings.On("FindOverlapping", ctx, int64(1), day("2024-03-01"), day("2024-03-05")).Return([]domain.Booking{
		{CheckIn: day("2024-02-28"), CheckOut: day("2024-03-02"), Status: domain.BookingStatusConfirmed},
	}, nil).Once()

	got, err := checker.CheckAvailability(ctx, 1, day("2024-03-01"), day("2024-03-05"))
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, 1, got.ActiveCount)
	assert.Equal(t, 2, got.TotalRooms)

	hotels.AssertExpectations(t)
	bookings.AssertExpectations(t)
}

func TestChecker_FullHotel(t *testing.T) {
	hotels := &MockHotelCatalog{}
	bookings := &MockBookingStore{}
	checker := NewChecker(hotels, bookings)
	ctx := context.Background()

	hotels.On("GetByID", ctx, int64(1)).Return(&domain.Hotel{ID: 1, TotalRooms: 1}, nil)
	bookings.On("FindOverlapping", ctx, int64(1), mock.Anything, mock.Anything).Return([]domain.Booking{
		{CheckIn: day("2024-03-01"), CheckOut: day("2024-03-05"), Status: domain.BookingStatusPending},
	}, nil)

	got, err := checker.CheckAvailability(ctx, 1, day("2024-03-03"), day("2024-03-07"))
	require.NoError(t, err)
	assert.False(t, got.Available)
}

func TestChecker_IgnoresCancelledAndAbutting(t *testing.T) {
	hotels := &MockHotelCatalog{}
	bookings := &MockBookingStore{}
	checker := NewChecker(hotels, bookings)
	ctx := context.Background()

	hotels.On("GetByID", ctx, int64(1)).Return(&domain.Hotel{ID: 1, TotalRooms: 1}, nil)
	bookings.On("FindOverlapping", ctx, int64(1), mock.Anything, mock.Anything).Return([]domain.Booking{
		{CheckIn: day("2024-01-01"), CheckOut: day("2024-01-10"), Status: domain.BookingStatusCancelled},
		{CheckIn: day("2024-01-05"), CheckOut: day("2024-01-10"), Status: domain.BookingStatusConfirmed},
	}, nil)

	got, err := checker.CheckAvailability(ctx, 1, day("2024-01-10"), day("2024-01-12"))
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, 0, got.ActiveCount)
}

func TestChecker_ZeroRoomsNeverAvailable(t *testing.T) {
	hotels := &MockHotelCatalog{}
	bookings := &MockBookingStore{}
	checker := NewChecker(hotels, bookings)
	ctx := context.Background()

	hotels.On("GetByID", ctx, int64(1)).Return(&domain.Hotel{ID: 1, TotalRooms: 0}, nil)
	bookings.On("FindOverlapping", ctx, int64(1), mock.Anything, mock.Anything).Return([]domain.Booking{}, nil)

	got, err := checker.CheckAvailability(ctx, 1, day("2024-01-01"), day("2024-01-02"))
	require.NoError(t, err)
	assert.False(t, got.Available)
}

func TestChecker_InvalidRange(t *testing.T) {
	hotels := &MockHotelCatalog{}
	bookings := &MockBookingStore{}
	checker := NewChecker(hotels, bookings)

	for _, tc := range []struct{ in, out string }{
		{"2024-01-10", "2024-01-10"},
		{"2024-01-10", "2024-01-09"},
		{"2024-02-01", "2023-12-31"},
	} {
		_, err := checker.CheckAvailability(context.Background(), 1, day(tc.in), day(tc.out))
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange, "%s..%s", tc.in, tc.out)
	}
	hotels.AssertNotCalled(t, "GetByID")
}

func TestChecker_HotelNotFound(t *testing.T) {
	hotels := &MockHotelCatalog{}
	bookings := &MockBookingStore{}
	checker := NewChecker(hotels, bookings)
	ctx := context.Background()

	hotels.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrHotelNotFound)

	_, err := checker.CheckAvailability(ctx, 9, day("2024-01-01"), day("2024-01-02"))
	assert.ErrorIs(t, err, domain.ErrHotelNotFound)
	bookings.AssertNotCalled(t, "FindOverlapping")
}

func TestChecker_StoreError(t *testing.T) {
	hotels := &MockHotelCatalog{}
	bookings := &MockBookingStore{}
	checker := NewChecker(hotels, bookings)
	ctx := context.Background()

	storeErr := errors.New("connection reset")
	hotels.On("GetByID", ctx, int64(1)).Return(&domain.Hotel{ID: 1, TotalRooms: 3}, nil)
	bookings.On("FindOverlapping", ctx, int64(1), mock.Anything, mock.Anything).Return(nil, storeErr)

	_, err := checker.CheckAvailability(ctx, 1, day("2024-01-01"), day("2024-01-02"))
	assert.ErrorIs(t, err, storeErr)
}
