package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendlens/youtube-trending-go/internal/auth"
	"github.com/trendlens/youtube-trending-go/internal/credstore"
	"github.com/trendlens/youtube-trending-go/internal/metrics"
	"github.com/trendlens/youtube-trending-go/internal/middleware"
	"github.com/trendlens/youtube-trending-go/internal/model"
	"github.com/trendlens/youtube-trending-go/pkg/logger"
)

// AuthHandler handles login, logout and session introspection.
type AuthHandler struct {
	store    *credstore.Store
	sessions *auth.Manager
	isAdmin  func(username string) bool
}

// NewAuthHandler creates a new AuthHandler instance. isAdmin decides admin
// capability; it should consult both the credential file's allow-list and the
// configured one.
func NewAuthHandler(store *credstore.Store, sessions *auth.Manager, isAdmin func(string) bool) *AuthHandler {
	return &AuthHandler{
		store:    store,
		sessions: sessions,
		isAdmin:  isAdmin,
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad Request", "username and password are required")
		return
	}

	if !h.store.VerifyPassword(req.Username, req.Password) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		logger.Log.Warn("login failed", zap.String("username", req.Username))
		authErr := &model.AuthError{Message: "Invalid username or password"}
		respondError(c, http.StatusUnauthorized, "Unauthorized", authErr.Error())
		return
	}

	rec, _ := h.store.User(req.Username)
	session, token, err := h.sessions.Issue(req.Username, rec.Name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal Server Error", "failed to create session")
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Log.Info("login succeeded", zap.String("username", req.Username))

	c.SetCookie(h.sessions.CookieName(), token, h.sessions.CookieMaxAge(), "/", "", false, true)
	c.JSON(http.StatusOK, h.sessionDTO(session))
}

// Logout handles POST /api/auth/logout: the session is revoked and the
// cookie cleared, returning the caller to the login prompt.
func (h *AuthHandler) Logout(c *gin.Context) {
	if session, ok := middleware.SessionFromContext(c); ok && session.ID != "" {
		h.sessions.Revoke(session.ID)
		logger.Log.Info("logout", zap.String("username", session.Username))
	}
	c.SetCookie(h.sessions.CookieName(), "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Session handles GET /api/auth/session.
func (h *AuthHandler) Session(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, model.SessionDTO{})
		return
	}
	c.JSON(http.StatusOK, h.sessionDTO(session))
}

// sessionDTO renders a session. The admin console flag is present only when
// the user is allow-listed and the credential store accepts writes; in
// read-only deployments the console is withheld entirely.
func (h *AuthHandler) sessionDTO(session *auth.Session) model.SessionDTO {
	dto := model.SessionDTO{
		Authenticated: session.Authenticated,
		Username:      session.Username,
		DisplayName:   session.DisplayName,
	}
	if session.Username != "" && h.isAdmin(session.Username) && h.store != nil && h.store.Writable() {
		dto.AdminConsole = true
	}
	return dto
}
