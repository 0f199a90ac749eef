// Package handler provides HTTP request handlers for the application.
package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendlens/youtube-trending-go/internal/model"
	"github.com/trendlens/youtube-trending-go/internal/service"
	"github.com/trendlens/youtube-trending-go/internal/validation"
	"github.com/trendlens/youtube-trending-go/pkg/format"
	"github.com/trendlens/youtube-trending-go/pkg/logger"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// TrendingHandler serves the trending list, the region list and the refresh
// action.
type TrendingHandler struct {
	svc           *service.TrendingService
	defaultRegion string
}

// NewTrendingHandler creates a new TrendingHandler instance.
func NewTrendingHandler(svc *service.TrendingService, defaultRegion string) *TrendingHandler {
	return &TrendingHandler{
		svc:           svc,
		defaultRegion: defaultRegion,
	}
}

// GetTrending handles GET /api/trending?region=XX.
func (h *TrendingHandler) GetTrending(c *gin.Context) {
	region := strings.ToUpper(strings.TrimSpace(c.DefaultQuery("region", h.defaultRegion)))
	if !validation.IsValidRegionCode(region) || !model.IsKnownRegion(region) {
		respondError(c, http.StatusBadRequest, "Bad Request", "invalid region code: "+region)
		return
	}

	items, err := h.svc.GetTrendingVideos(c.Request.Context(), region)
	if err != nil {
		logger.Log.Error("trending fetch failed",
			zap.String("region", region),
			zap.Error(err),
		)
		respondError(c, statusFor(err), "Upstream Failure", err.Error())
		return
	}

	// Channel-stats failure degrades gracefully: subscriber counts render as
	// "-" and a warning is attached, but the trending list still renders.
	warning := ""
	channelIDs := make([]string, 0, len(items))
	for _, it := range items {
		channelIDs = append(channelIDs, it.ChannelID)
	}
	stats, err := h.svc.GetChannelStats(c.Request.Context(), channelIDs)
	if err != nil {
		logger.Log.Warn("channel stats fetch failed",
			zap.String("region", region),
			zap.Error(err),
		)
		warning = "Some channel information could not be loaded: " + err.Error()
		stats = nil
	}

	dtos := make([]model.TrendingVideoDTO, 0, len(items))
	for i, it := range items {
		dtos = append(dtos, renderItem(i+1, it, stats))
	}

	c.JSON(http.StatusOK, model.TrendingResponse{
		Region:    region,
		FetchedAt: time.Now(),
		Items:     dtos,
		Warning:   warning,
	})
}

// Refresh handles POST /api/refresh: both caches are cleared unconditionally
// and the next read refetches.
func (h *TrendingHandler) Refresh(c *gin.Context) {
	h.svc.Refresh()
	c.JSON(http.StatusOK, gin.H{
		"status": "refreshed",
		"time":   time.Now(),
	})
}

// ListRegions handles GET /api/regions.
func (h *TrendingHandler) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default": h.defaultRegion,
		"regions": model.Regions,
	})
}

func renderItem(rank int, it model.TrendingItem, stats map[string]model.ChannelStats) model.TrendingVideoDTO {
	subscribers := format.Placeholder
	if st, ok := stats[it.ChannelID]; ok {
		subscribers = format.Int64(st.SubscriberCount)
	}

	return model.TrendingVideoDTO{
		Rank:         rank,
		ID:           it.ID,
		URL:          watchURLPrefix + it.ID,
		Title:        it.Title,
		ChannelTitle: it.ChannelTitle,
		ChannelID:    it.ChannelID,
		ThumbnailURL: it.ThumbnailURL,
		Views:        format.Count(it.ViewCount),
		Likes:        format.OptionalCount(it.LikeCount),
		Comments:     format.OptionalCount(it.CommentCount),
		Subscribers:  subscribers,
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var upstreamErr *model.UpstreamAPIError
	var netErr *model.NetworkError
	switch {
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	case errors.As(err, &netErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standard error body.
func respondError(c *gin.Context, status int, errLabel, message string) {
	c.JSON(status, model.ErrorResponse{
		Status:    status,
		Error:     errLabel,
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}
