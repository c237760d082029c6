package domain

import "errors"

var (
	ErrHotelNotFound          = errors.New("hotel not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidDateRange       = errors.New("check-out date must be after check-in date")
	ErrPastCheckInDate        = errors.New("check-in date cannot be in the past")
	ErrNoRoomsAvailable       = errors.New("no rooms available for the selected dates")
	ErrInvalidStateTransition = errors.New("invalid booking state transition")
	ErrUnauthorized           = errors.New("not allowed to access this booking")
	ErrStorageUnavailable     = errors.New("storage unavailable")
	ErrInvalidInput           = errors.New("invalid input")
	ErrPaymentDeclined        = errors.New("payment failed, check your card details and try again")
	ErrConflict               = errors.New("already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)
