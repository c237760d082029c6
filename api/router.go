package api

import (
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/authz"
	"github.com/Domenick1991/hotelbooking/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Auth     *AuthHandler
	Hotels   *HotelHandler
	Bookings *BookingHandler
	Payments *PaymentHandler
	Admin    *AdminHandler
}

// NewRouter builds the gin engine serving /api and /healthz. Every /api
// request passes through token authentication before the per-route policy.
func NewRouter(h Handlers, tokens authz.TokenParser, policy *authz.Policy, logger logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api", authz.Authenticate(tokens, logger))
	h.Auth.Register(apiGroup.Group("/auth"), policy.Guard(authz.ObjectAuth))
	h.Hotels.Register(apiGroup.Group("/hotels"), policy.Guard(authz.ObjectHotels))
	h.Bookings.Register(apiGroup.Group("/bookings"), policy.Guard(authz.ObjectBookings))
	h.Payments.Register(apiGroup.Group("/payments"), policy.Guard(authz.ObjectPayments))
	h.Admin.Register(apiGroup.Group("/admin"), policy.Guard(authz.ObjectAdmin), policy.Guard(authz.ObjectHotels))

	return router
}
