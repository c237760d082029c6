package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/hotelbooking/internal/authz"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/activity"
	"github.com/Domenick1991/hotelbooking/internal/service/auth"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	users    auth.AuthUseCase
	hotels   hotels.HotelUseCase
	bookings booking.BookingUseCase
	activity activity.ActivityUseCase
}

type hotelRequest struct {
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Description   string  `json:"description"`
	Amenities     string  `json:"amenities"`
	ImageURL      string  `json:"image_url"`
	PricePerNight float64 `json:"price_per_night"`
	Rating        int     `json:"rating"`
	TotalRooms    int     `json:"total_rooms"`
	Featured      bool    `json:"featured"`
}

func (r hotelRequest) toDomain() domain.Hotel {
	return domain.Hotel{
		Name:        r.Name,
		Location:    r.Location,
		Description: r.Description,
		Amenities:   r.Amenities,
		ImageURL:    r.ImageURL,
		PriceCents:  toCents(r.PricePerNight),
		Rating:      r.Rating,
		TotalRooms:  r.TotalRooms,
		Featured:    r.Featured,
	}
}

type statsResponse struct {
	Bookings domain.BookingStats `json:"bookings"`
	Hotels   int64               `json:"hotels"`
	Users    int                 `json:"users"`
}

func NewAdminHandler(users auth.AuthUseCase, hotels hotels.HotelUseCase, bookings booking.BookingUseCase, activity activity.ActivityUseCase) *AdminHandler {
	return &AdminHandler{users: users, hotels: hotels, bookings: bookings, activity: activity}
}

// Register mounts the admin routes. Hotel writes are checked against the
// hotels object, everything else against admin.
func (h *AdminHandler) Register(router *gin.RouterGroup, guard, hotelGuard func(authz.Action) gin.HandlerFunc) {
	read, write := guard(authz.ActionRead), guard(authz.ActionWrite)

	router.GET("/users", read, h.listUsers)
	router.PATCH("/users/:id", write, h.updateUser)

	router.GET("/hotels", read, h.listHotels)
	router.POST("/hotels", hotelGuard(authz.ActionWrite), h.createHotel)
	router.PUT("/hotels/:id", hotelGuard(authz.ActionWrite), h.updateHotel)
	router.DELETE("/hotels/:id", hotelGuard(authz.ActionWrite), h.deleteHotel)

	router.GET("/bookings", read, h.listBookings)
	router.DELETE("/bookings/:id", write, h.deleteBooking)

	router.GET("/stats", read, h.stats)
	router.GET("/activity", read, h.recentActivity)
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) updateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var update auth.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), id, update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) listHotels(c *gin.Context) {
	list, err := h.hotels.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponses(list))
}

func (h *AdminHandler) createHotel(c *gin.Context) {
	var req hotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	hotel, err := h.hotels.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHotelResponse(*hotel))
}

func (h *AdminHandler) updateHotel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req hotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	hotel, err := h.hotels.Update(c.Request.Context(), id, req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponse(*hotel))
}

func (h *AdminHandler) deleteHotel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.hotels.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	list, err := h.bookings.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

func (h *AdminHandler) deleteBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.bookings.DeleteBooking(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) stats(c *gin.Context) {
	ctx := c.Request.Context()
	bookingStats, err := h.bookings.Stats(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	hotelCount, err := h.hotels.Count(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	users, err := h.users.ListUsers(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, statsResponse{Bookings: bookingStats, Hotels: hotelCount, Users: len(users)})
}

func (h *AdminHandler) recentActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "invalid limit")
			return
		}
		limit = n
	}
	events, err := h.activity.Recent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
