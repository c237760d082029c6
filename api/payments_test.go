package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/payment"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func payBody(number string) gin.H {
	return gin.H{
		"payment_method": "CARD",
		"card_number":    number,
		"expiry_date":    "12/27",
		"cvv":            "123",
		"card_holder":    "Alice Example",
	}
}

func TestPaymentHandler_pay(t *testing.T) {
	svc := &MockPaymentUseCase{}
	handler := NewPaymentHandler(svc)

	c, w := newTestContext(http.MethodPost, "/payments/5", payBody("4111 1111 1111 1111"))
	c.Params = gin.Params{{Key: "bookingId", Value: "5"}}

	input := payment.PayInput{Method: "CARD", Card: payment.CardDetails{
		Number: "4111 1111 1111 1111", Expiry: "12/27", CVV: "123", Holder: "Alice Example",
	}}
	svc.On("Pay", mock.Anything, alice, int64(5), input).Return(&payment.Result{
		Payment: &domain.Payment{ID: 1, BookingID: 5, AmountCents: 49998, Method: "CARD", Status: domain.PaymentStatusSuccess},
		Booking: &domain.Booking{ID: 5, Status: domain.BookingStatusConfirmed, PaymentMethod: "CARD"},
	}, nil)

	handler.pay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"CONFIRMED"`)
	assert.Contains(t, w.Body.String(), `"SUCCESS"`)
	svc.AssertExpectations(t)
}

func TestPaymentHandler_declined(t *testing.T) {
	svc := &MockPaymentUseCase{}
	handler := NewPaymentHandler(svc)

	c, w := newTestContext(http.MethodPost, "/payments/5", payBody("4111"))
	c.Params = gin.Params{{Key: "bookingId", Value: "5"}}
	svc.On("Pay", mock.Anything, alice, int64(5), mock.Anything).Return(&payment.Result{
		Payment: &domain.Payment{ID: 2, BookingID: 5, Status: domain.PaymentStatusFailed},
		Booking: &domain.Booking{ID: 5, Status: domain.BookingStatusPending},
	}, fmt.Errorf("card rejected: %w", domain.ErrPaymentDeclined))

	handler.pay(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), `"PENDING"`)
	assert.Contains(t, w.Body.String(), `"FAILED"`)
}

func TestPaymentHandler_cancelledBooking(t *testing.T) {
	svc := &MockPaymentUseCase{}
	handler := NewPaymentHandler(svc)

	c, w := newTestContext(http.MethodPost, "/payments/5", payBody("4111111111111111"))
	c.Params = gin.Params{{Key: "bookingId", Value: "5"}}
	svc.On("Pay", mock.Anything, alice, int64(5), mock.Anything).Return(nil, domain.ErrInvalidStateTransition)

	handler.pay(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPaymentHandler_getMissing(t *testing.T) {
	svc := &MockPaymentUseCase{}
	handler := NewPaymentHandler(svc)

	c, w := newTestContext(http.MethodGet, "/payments/5", nil)
	c.Params = gin.Params{{Key: "bookingId", Value: "5"}}
	svc.On("GetPayment", mock.Anything, alice, int64(5)).Return(nil, domain.ErrPaymentNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
