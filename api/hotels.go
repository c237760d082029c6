package api

import (
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/authz"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/gin-gonic/gin"
)

type HotelHandler struct {
	service  hotels.HotelUseCase
	bookings booking.BookingUseCase
}

func NewHotelHandler(service hotels.HotelUseCase, bookings booking.BookingUseCase) *HotelHandler {
	return &HotelHandler{service: service, bookings: bookings}
}

func (h *HotelHandler) Register(router *gin.RouterGroup, guard func(authz.Action) gin.HandlerFunc) {
	read := guard(authz.ActionRead)
	router.GET("", read, h.list)
	router.GET("/search", read, h.search)
	router.GET("/featured", read, h.featured)
	router.GET("/destinations", read, h.destinations)
	router.GET("/:id", read, h.get)
	router.GET("/:id/availability", read, h.availability)
}

func (h *HotelHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponses(list))
}

func (h *HotelHandler) search(c *gin.Context) {
	list, err := h.service.Search(c.Request.Context(), c.Query("location"), c.Query("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponses(list))
}

func (h *HotelHandler) featured(c *gin.Context) {
	list, err := h.service.Featured(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponses(list))
}

func (h *HotelHandler) destinations(c *gin.Context) {
	list, err := h.service.Destinations(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *HotelHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	hotel, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponse(*hotel))
}

func (h *HotelHandler) availability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	checkIn, err := domain.ParseDay(c.Query("check_in"))
	if err != nil {
		badRequest(c, "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := domain.ParseDay(c.Query("check_out"))
	if err != nil {
		badRequest(c, "check_out must be YYYY-MM-DD")
		return
	}

	avail, err := h.bookings.CheckAvailability(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAvailabilityResponse(avail))
}
