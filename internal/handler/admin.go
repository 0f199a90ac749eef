package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendlens/youtube-trending-go/internal/credstore"
	"github.com/trendlens/youtube-trending-go/internal/middleware"
	"github.com/trendlens/youtube-trending-go/internal/model"
	"github.com/trendlens/youtube-trending-go/internal/validation"
	"github.com/trendlens/youtube-trending-go/pkg/logger"
)

// persistWarning is attached to admin mutations that succeeded in memory but
// could not be written back to the credential file.
const persistWarning = "change applied for this process only: the credential file is not writable"

// AdminHandler exposes user management to allow-listed identities.
type AdminHandler struct {
	store   *credstore.Store
	isAdmin func(username string) bool
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(store *credstore.Store, isAdmin func(string) bool) *AdminHandler {
	return &AdminHandler{
		store:   store,
		isAdmin: isAdmin,
	}
}

// RequireAdmin rejects callers whose session user is not on the allow-list.
func (h *AdminHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.SessionFromContext(c)
		if !ok || session.Username == "" || !h.isAdmin(session.Username) {
			c.AbortWithStatusJSON(http.StatusForbidden, model.ErrorResponse{
				Status:    http.StatusForbidden,
				Error:     "Forbidden",
				Message:   "admin capability required",
				Timestamp: time.Now(),
				Path:      c.Request.URL.Path,
			})
			return
		}
		c.Next()
	}
}

// AddUser handles POST /api/admin/users.
func (h *AdminHandler) AddUser(c *gin.Context) {
	var req model.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad Request", "username, display_name, email and password are required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := validation.ValidateNewUser(req.Username, req.Email, req.Password); err != nil {
		respondError(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	err := h.store.AddUser(req.Username, req.DisplayName, req.Email, req.Password)
	var persistErr *model.PersistenceError
	switch {
	case err == nil:
		logger.Log.Info("user added", zap.String("username", req.Username))
		c.JSON(http.StatusCreated, gin.H{"username": req.Username})
	case errors.As(err, &persistErr):
		// The record exists in memory; persistence failure is a soft warning.
		logger.Log.Warn("user added without persistence",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		c.JSON(http.StatusCreated, gin.H{"username": req.Username, "warning": persistWarning})
	case errors.Is(err, credstore.ErrUserExists):
		respondError(c, http.StatusConflict, "Conflict", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// ChangePassword handles PUT /api/admin/users/:username/password.
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	username := c.Param("username")

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad Request", "password is required")
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		respondError(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	err := h.store.ChangePassword(username, req.Password)
	var persistErr *model.PersistenceError
	switch {
	case err == nil:
		logger.Log.Info("password changed", zap.String("username", username))
		c.JSON(http.StatusOK, gin.H{"username": username})
	case errors.As(err, &persistErr):
		logger.Log.Warn("password changed without persistence",
			zap.String("username", username),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, gin.H{"username": username, "warning": persistWarning})
	case errors.Is(err, credstore.ErrUnknownUser):
		respondError(c, http.StatusNotFound, "Not Found", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"usernames": h.store.Usernames(),
		"writable":  h.store.Writable(),
	})
}
