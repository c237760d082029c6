package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingConfirmed EventType = "booking_confirmed"
	EventBookingCancelled EventType = "booking_cancelled"
	EventPaymentFailed    EventType = "payment_failed"
)

type BookingEvent struct {
	ID         string        `json:"id"`
	Type       EventType     `json:"type"`
	BookingID  int64         `json:"booking_id"`
	HotelID    int64         `json:"hotel_id"`
	UserID     int64         `json:"user_id"`
	Status     BookingStatus `json:"status"`
	CheckIn    string        `json:"check_in"`
	CheckOut   string        `json:"check_out"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewBookingEvent snapshots b under a fresh event id.
func NewBookingEvent(t EventType, b Booking, at time.Time) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       t,
		BookingID:  b.ID,
		HotelID:    b.HotelID,
		UserID:     b.UserID,
		Status:     b.Status,
		CheckIn:    b.CheckIn.Format(DateLayout),
		CheckOut:   b.CheckOut.Format(DateLayout),
		OccurredAt: at.UTC(),
	}
}
