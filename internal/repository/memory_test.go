package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedHotel(t *testing.T, s *MemoryStore, rooms int) *domain.Hotel {
	t.Helper()
	h := &domain.Hotel{Name: "Riverside Inn", Location: "Chicago, IL", PriceCents: 19999, Rating: 4, TotalRooms: rooms}
	require.NoError(t, s.Hotels().Create(context.Background(), h))
	return h
}

func TestMemoryBookings_FindOverlapping(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	h := seedHotel(t, s, 5)
	other := seedHotel(t, s, 5)

	insert := func(hotelID int64, in, out string, status domain.BookingStatus) {
		b := &domain.Booking{HotelID: hotelID, UserID: 1, CheckIn: day(in), CheckOut: day(out), Guests: 1, Status: status}
		require.NoError(t, s.Bookings().Insert(ctx, b))
	}
	insert(h.ID, "2024-01-01", "2024-01-10", domain.BookingStatusConfirmed)
	insert(h.ID, "2024-01-10", "2024-01-12", domain.BookingStatusPending)
	insert(h.ID, "2024-01-05", "2024-01-08", domain.BookingStatusCancelled)
	insert(other.ID, "2024-01-05", "2024-01-08", domain.BookingStatusPending)

	got, err := s.Bookings().FindOverlapping(ctx, h.ID, day("2024-01-05"), day("2024-01-10"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, day("2024-01-01"), got[0].CheckIn)

	got, err = s.Bookings().FindOverlapping(ctx, h.ID, day("2024-01-09"), day("2024-01-11"))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMemoryBookings_NotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Bookings().GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.ErrorIs(t, s.Bookings().Update(context.Background(), &domain.Booking{ID: 42}), domain.ErrBookingNotFound)
	assert.ErrorIs(t, s.Bookings().Delete(context.Background(), 42), domain.ErrBookingNotFound)
}

func TestMemoryStore_WithinHotelUnknownHotel(t *testing.T) {
	s := NewMemoryStore()
	called := false
	err := s.WithinHotel(context.Background(), 99, func(context.Context, HotelScope) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrHotelNotFound)
	assert.False(t, called)
}

func TestMemoryStore_WithinHotelSerialisesSameHotel(t *testing.T) {
	s := NewMemoryStore()
	h := seedHotel(t, s, 1)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithinHotel(context.Background(), h.ID, func(context.Context, HotelScope) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
}

func TestMemoryHotels_SearchFeaturedDestinations(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, h := range []domain.Hotel{
		{Name: "Grand Plaza Hotel", Location: "New York, NY", Rating: 4, TotalRooms: 10, Featured: true},
		{Name: "Luxury Suites Central", Location: "New York, NY", Rating: 5, TotalRooms: 5, Featured: true},
		{Name: "Riverside Inn", Location: "Chicago, IL", Rating: 4, TotalRooms: 8},
	} {
		h := h
		require.NoError(t, s.Hotels().Create(ctx, &h))
	}

	found, err := s.Hotels().Search(ctx, "new york", "")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Luxury Suites Central", found[0].Name)

	found, err = s.Hotels().Search(ctx, "", "riverside")
	require.NoError(t, err)
	require.Len(t, found, 1)

	featured, err := s.Hotels().Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	dest, err := s.Hotels().Destinations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicago, IL", "New York, NY"}, dest)
}

func TestMemoryUsers_Conflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Users().Create(ctx, &domain.User{Username: "user", Email: "user@hotelbooking.com"}))
	err := s.Users().Create(ctx, &domain.User{Username: "user", Email: "other@hotelbooking.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	u, err := s.Users().GetByUsername(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}

func TestMemoryEvents_DedupAndOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()
	require.NoError(t, s.Events().Append(ctx, domain.BookingEvent{ID: "a", OccurredAt: now.Add(-time.Minute)}))
	require.NoError(t, s.Events().Append(ctx, domain.BookingEvent{ID: "b", OccurredAt: now}))
	require.NoError(t, s.Events().Append(ctx, domain.BookingEvent{ID: "a", OccurredAt: now.Add(time.Hour)}))

	events, err := s.Events().Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].ID)
}

func TestMemoryPayments_Latest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Payments().Create(ctx, &domain.Payment{BookingID: 1, Status: domain.PaymentStatusFailed}))
	require.NoError(t, s.Payments().Create(ctx, &domain.Payment{BookingID: 1, Status: domain.PaymentStatusSuccess}))

	p, err := s.Payments().LatestByBooking(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, p.Status)

	_, err = s.Payments().LatestByBooking(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}
