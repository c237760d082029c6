package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: the first match wins.
var errorMappings = []errorMapping{
	{domain.ErrHotelNotFound, http.StatusNotFound, "hotel_not_found"},
	{domain.ErrBookingNotFound, http.StatusNotFound, "booking_not_found"},
	{domain.ErrPaymentNotFound, http.StatusNotFound, "payment_not_found"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{domain.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date_range"},
	{domain.ErrPastCheckInDate, http.StatusBadRequest, "past_check_in_date"},
	{domain.ErrInvalidInput, http.StatusUnprocessableEntity, "validation_failed"},
	{domain.ErrNoRoomsAvailable, http.StatusConflict, "no_rooms_available"},
	{domain.ErrInvalidStateTransition, http.StatusConflict, "invalid_state_transition"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
	{domain.ErrUnauthorized, http.StatusForbidden, "forbidden"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{domain.ErrPaymentDeclined, http.StatusPaymentRequired, "payment_declined"},
	{domain.ErrStorageUnavailable, http.StatusServiceUnavailable, "storage_unavailable"},
}

func writeError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := err.Error()
			if m.status == http.StatusServiceUnavailable {
				msg = m.target.Error()
			}
			c.JSON(m.status, errorResponse{Code: m.code, Error: msg})
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorResponse{Code: "internal", Error: "internal server error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Code: "bad_request", Error: msg})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
