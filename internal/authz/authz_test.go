package authz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Allowed(t *testing.T) {
	p, err := NewPolicy()
	require.NoError(t, err)

	testCases := []struct {
		role    domain.Role
		obj     Object
		act     Action
		allowed bool
	}{
		{domain.RoleAnonymous, ObjectHotels, ActionRead, true},
		{domain.RoleAnonymous, ObjectAuth, ActionWrite, true},
		{domain.RoleAnonymous, ObjectBookings, ActionWrite, false},
		{domain.RoleAnonymous, ObjectHotels, ActionWrite, false},
		{domain.RoleUser, ObjectHotels, ActionRead, true},
		{domain.RoleUser, ObjectBookings, ActionWrite, true},
		{domain.RoleUser, ObjectPayments, ActionWrite, true},
		{domain.RoleUser, ObjectAdmin, ActionRead, false},
		{domain.RoleUser, ObjectHotels, ActionWrite, false},
		{domain.RoleAdmin, ObjectAdmin, ActionWrite, true},
		{domain.RoleAdmin, ObjectHotels, ActionWrite, true},
		{domain.RoleAdmin, ObjectBookings, ActionRead, true},
		{domain.RoleAdmin, ObjectHotels, ActionRead, true},
		{domain.Role("ROOT"), ObjectHotels, ActionRead, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, p.Allowed(tc.role, tc.obj, tc.act), "%s %s %s", tc.role, tc.act, tc.obj)
	}
}

type stubTokens map[string]domain.Caller

func (s stubTokens) ParseToken(_ context.Context, token string) (domain.Caller, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	if token == "db-down" {
		return domain.Caller{}, domain.ErrStorageUnavailable
	}
	return domain.Caller{}, errors.New("invalid or expired token")
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	p, err := NewPolicy()
	require.NoError(t, err)

	tokens := stubTokens{
		"user-token":  {UserID: 1, Role: domain.RoleUser},
		"admin-token": {UserID: 2, Role: domain.RoleAdmin},
	}
	r := gin.New()
	r.Use(Authenticate(tokens, logging.Discard()))
	r.GET("/bookings", p.Require(ObjectBookings, ActionRead), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CallerFrom(c).UserID})
	})
	r.GET("/admin", p.Require(ObjectAdmin, ActionRead), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestMiddleware(t *testing.T) {
	r := newRouter(t)

	testCases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"Anonymous on bookings", "/bookings", "", http.StatusUnauthorized},
		{"User on bookings", "/bookings", "Bearer user-token", http.StatusOK},
		{"User on admin", "/admin", "Bearer user-token", http.StatusForbidden},
		{"Admin on admin", "/admin", "Bearer admin-token", http.StatusNoContent},
		{"Bad token", "/bookings", "Bearer nope", http.StatusUnauthorized},
		{"Wrong scheme", "/bookings", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"Token lookup fails", "/bookings", "Bearer db-down", http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
