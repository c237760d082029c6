package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusPending, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}

	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatus("FAILED").IsValid())
	assert.False(t, BookingStatusCancelled.Active())
	assert.True(t, BookingStatusConfirmed.Active())
}

func TestBooking_OverlapsIsHalfOpen(t *testing.T) {
	a := Booking{CheckIn: mustDay(t, "2024-01-05"), CheckOut: mustDay(t, "2024-01-10")}

	assert.False(t, a.Overlaps(mustDay(t, "2024-01-10"), mustDay(t, "2024-01-12")), "checkout == next checkin")
	assert.False(t, a.Overlaps(mustDay(t, "2024-01-01"), mustDay(t, "2024-01-05")), "checkin == previous checkout")
	assert.True(t, a.Overlaps(mustDay(t, "2024-01-09"), mustDay(t, "2024-01-11")))
	assert.True(t, a.Overlaps(mustDay(t, "2024-01-06"), mustDay(t, "2024-01-07")))
	assert.True(t, a.Overlaps(mustDay(t, "2024-01-01"), mustDay(t, "2024-01-20")))
	assert.Equal(t, 5, a.Nights())
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	got := Day(time.Date(2024, 3, 1, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err := ParseDay("01/03/2024")
	assert.Error(t, err)
}

func TestCaller_CanManage(t *testing.T) {
	owner := Caller{UserID: 7, Role: RoleUser}
	stranger := Caller{UserID: 8, Role: RoleUser}
	admin := Caller{UserID: 1, Role: RoleAdmin}
	anonymous := Caller{Role: RoleAnonymous}

	assert.True(t, owner.CanManage(7))
	assert.False(t, stranger.CanManage(7))
	assert.True(t, admin.CanManage(7))
	assert.False(t, anonymous.CanManage(0))
}
