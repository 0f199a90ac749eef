// Package middleware provides the gin middleware used by the HTTP server.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/youtube-trending-go/internal/auth"
	"github.com/trendlens/youtube-trending-go/internal/model"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	CtxSessionKey = "session"
)

// SessionAuth gates routes behind the login flow. With auth disabled every
// request carries an anonymous, always-authenticated session; with auth
// enabled, requests without a resolvable session cookie get 401 and a prompt
// to log in.
type SessionAuth struct {
	sessions *auth.Manager
	enabled  bool
}

// NewSessionAuth creates the session middleware.
func NewSessionAuth(sessions *auth.Manager, enabled bool) *SessionAuth {
	return &SessionAuth{sessions: sessions, enabled: enabled}
}

// Middleware returns the gin handler enforcing the gate.
func (a *SessionAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.enabled {
			c.Set(CtxSessionKey, auth.Anonymous())
			c.Next()
			return
		}

		token, err := c.Cookie(a.sessions.CookieName())
		if err != nil || token == "" {
			a.abortUnauthorized(c, "Please log in to continue")
			return
		}

		session, ok := a.sessions.Resolve(token)
		if !ok {
			a.abortUnauthorized(c, "Session expired, please log in again")
			return
		}

		c.Set(CtxSessionKey, session)
		c.Next()
	}
}

func (a *SessionAuth) abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
		Status:    http.StatusUnauthorized,
		Error:     "Unauthorized",
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}

// SessionFromContext returns the session placed by SessionAuth, if any.
func SessionFromContext(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*auth.Session)
	return session, ok
}
