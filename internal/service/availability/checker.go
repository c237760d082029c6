package availability

import (
	"context"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
)

type HotelCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

type BookingStore interface {
	// FindOverlapping returns the non-cancelled bookings of the hotel whose
	// [check_in, check_out) intersects the given range.
	FindOverlapping(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]domain.Booking, error)
}

// Checker answers whether a hotel has a free room for a date range. It only
// reads; callers that go on to insert must hold the hotel's unit of work.
type Checker struct {
	hotels   HotelCatalog
	bookings BookingStore
}

func NewChecker(hotels HotelCatalog, bookings BookingStore) *Checker {
	return &Checker{hotels: hotels, bookings: bookings}
}

// ValidateRange rejects ranges whose check-out is not strictly after check-in.
func ValidateRange(checkIn, checkOut time.Time) error {
	if !domain.Day(checkOut).After(domain.Day(checkIn)) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// HasCapacity reports whether one more booking fits. A hotel with zero rooms
// never has capacity.
func HasCapacity(totalRooms, activeCount int) bool {
	return activeCount < totalRooms
}

func (c *Checker) CheckAvailability(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) (*domain.Availability, error) {
	checkIn, checkOut = domain.Day(checkIn), domain.Day(checkOut)
	if err := ValidateRange(checkIn, checkOut); err != nil {
		return nil, err
	}

	hotel, err := c.hotels.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	overlapping, err := c.bookings.FindOverlapping(ctx, hotelID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, b := range overlapping {
		// Stores already filter; the extra checks keep a looser store honest.
		if b.Status.Active() && b.Overlaps(checkIn, checkOut) {
			active++
		}
	}

	return &domain.Availability{
		HotelID:     hotelID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Available:   HasCapacity(hotel.TotalRooms, active),
		ActiveCount: active,
		TotalRooms:  hotel.TotalRooms,
	}, nil
}
