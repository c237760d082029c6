package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/authz"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payment.PaymentUseCase
}

type payRequest struct {
	PaymentMethod string `json:"payment_method"`
	CardNumber    string `json:"card_number"`
	ExpiryDate    string `json:"expiry_date"`
	CVV           string `json:"cvv"`
	CardHolder    string `json:"card_holder"`
}

type payResponse struct {
	Payment *paymentResponse `json:"payment,omitempty"`
	Booking bookingResponse  `json:"booking"`
}

func NewPaymentHandler(service payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup, guard func(authz.Action) gin.HandlerFunc) {
	router.POST("/:bookingId", guard(authz.ActionWrite), h.pay)
	router.GET("/:bookingId", guard(authz.ActionRead), h.get)
}

func (h *PaymentHandler) pay(c *gin.Context) {
	id, ok := pathID(c, "bookingId")
	if !ok {
		return
	}
	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.service.Pay(c.Request.Context(), authz.CallerFrom(c), id, payment.PayInput{
		Method: req.PaymentMethod,
		Card: payment.CardDetails{
			Number: req.CardNumber,
			Expiry: req.ExpiryDate,
			CVV:    req.CVV,
			Holder: req.CardHolder,
		},
	})
	if err != nil {
		if errors.Is(err, domain.ErrPaymentDeclined) && res != nil {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"code":    "payment_declined",
				"error":   err.Error(),
				"payment": toPaymentResponse(res.Payment),
				"booking": toBookingResponse(*res.Booking),
			})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payResponse{Payment: toPaymentResponse(res.Payment), Booking: toBookingResponse(*res.Booking)})
}

func (h *PaymentHandler) get(c *gin.Context) {
	id, ok := pathID(c, "bookingId")
	if !ok {
		return
	}
	p, err := h.service.GetPayment(c.Request.Context(), authz.CallerFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(p))
}
