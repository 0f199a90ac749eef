package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/youtube-trending-go/internal/auth"
	"github.com/trendlens/youtube-trending-go/internal/config"
	"github.com/trendlens/youtube-trending-go/internal/credstore"
)

// AppVersion is the reported application version.
const AppVersion = "0.2.0"

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg   *config.Config
	store *credstore.Store
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(cfg *config.Config, store *credstore.Store) *HealthHandler {
	return &HealthHandler{
		cfg:   cfg,
		store: store,
	}
}

// LivenessProbe checks if the application is running.
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"version": AppVersion,
		"time":    time.Now(),
	})
}

// ReadinessProbe checks if the application is ready to serve traffic: the
// API key must be configured and, with auth enabled, the credential store
// must be usable.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	if err := h.cfg.Validate(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"config": "invalid",
			"error":  err.Error(),
			"time":   time.Now(),
		})
		return
	}

	if err := auth.EnsureCredentials(h.cfg.Auth.Enabled, h.store); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":      "DOWN",
			"credentials": "unavailable",
			"error":       err.Error(),
			"time":        time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"version": AppVersion,
		"time":    time.Now(),
	})
}
