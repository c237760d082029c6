package api

import (
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/authz"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	hotels  hotels.HotelUseCase
}

type createBookingRequest struct {
	HotelID  int64  `json:"hotel_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests"`
	// TotalPrice defaults to nights times the hotel's nightly rate.
	TotalPrice *float64 `json:"total_price"`
}

func NewBookingHandler(service booking.BookingUseCase, hotels hotels.HotelUseCase) *BookingHandler {
	return &BookingHandler{service: service, hotels: hotels}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, guard func(authz.Action) gin.HandlerFunc) {
	read, write := guard(authz.ActionRead), guard(authz.ActionWrite)
	router.POST("", write, h.create)
	router.GET("", read, h.listMine)
	router.GET("/upcoming", read, h.upcoming)
	router.GET("/:id", read, h.get)
	router.POST("/:id/cancel", write, h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	checkIn, err := domain.ParseDay(req.CheckIn)
	if err != nil {
		badRequest(c, "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := domain.ParseDay(req.CheckOut)
	if err != nil {
		badRequest(c, "check_out must be YYYY-MM-DD")
		return
	}

	input := booking.CreateBookingInput{
		HotelID:  req.HotelID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
	}
	if req.TotalPrice != nil {
		input.TotalPriceCents = toCents(*req.TotalPrice)
	} else if checkOut.After(checkIn) {
		hotel, err := h.hotels.GetByID(c.Request.Context(), req.HotelID)
		if err != nil {
			writeError(c, err)
			return
		}
		nights := domain.Booking{CheckIn: checkIn, CheckOut: checkOut}.Nights()
		input.TotalPriceCents = hotel.PriceCents * int64(nights)
	}

	created, err := h.service.CreateBooking(c.Request.Context(), authz.CallerFrom(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(*created))
}

func (h *BookingHandler) listMine(c *gin.Context) {
	list, err := h.service.ListMyBookings(c.Request.Context(), authz.CallerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

func (h *BookingHandler) upcoming(c *gin.Context) {
	list, err := h.service.UpcomingBookings(c.Request.Context(), authz.CallerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.GetBooking(c.Request.Context(), authz.CallerFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.CancelBooking(c.Request.Context(), authz.CallerFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*b))
}
