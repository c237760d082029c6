package authz

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const callerKey = "caller"

type TokenParser interface {
	ParseToken(ctx context.Context, token string) (domain.Caller, error)
}

// Authenticate resolves the Bearer token into a caller. Requests without a
// token continue as ANONYMOUS; a bad token is rejected.
func Authenticate(tokens TokenParser, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(callerKey, domain.Caller{Role: domain.RoleAnonymous})
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			abort(c, http.StatusUnauthorized, "unauthenticated", "invalid authorization header")
			return
		}
		caller, err := tokens.ParseToken(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, domain.ErrStorageUnavailable) {
				logger.WithError(err).Error("token lookup failed")
				abort(c, http.StatusServiceUnavailable, "storage_unavailable", domain.ErrStorageUnavailable.Error())
				return
			}
			logger.WithField("path", c.Request.URL.Path).Warn("rejected token")
			abort(c, http.StatusUnauthorized, "unauthenticated", err.Error())
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// Require lets the request through when the caller's role may perform act on obj.
func (p *Policy) Require(obj Object, act Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		if p.Allowed(caller.Role, obj, act) {
			c.Next()
			return
		}
		if caller.Role == domain.RoleAnonymous {
			abort(c, http.StatusUnauthorized, "unauthenticated", "authentication required")
			return
		}
		abort(c, http.StatusForbidden, "forbidden", "insufficient role")
	}
}

// CallerFrom returns the caller stored by Authenticate, or an anonymous one.
func CallerFrom(c *gin.Context) domain.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(domain.Caller); ok {
			return caller
		}
	}
	return domain.Caller{Role: domain.RoleAnonymous}
}

// WithCaller stores caller on the context; handlers under test use it in
// place of Authenticate.
func WithCaller(c *gin.Context, caller domain.Caller) {
	c.Set(callerKey, caller)
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "error": msg})
}

// Guard binds obj so route tables only name the action.
func (p *Policy) Guard(obj Object) func(Action) gin.HandlerFunc {
	return func(act Action) gin.HandlerFunc {
		return p.Require(obj, act)
	}
}
