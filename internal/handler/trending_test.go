package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/youtube-trending-go/internal/model"
	"github.com/trendlens/youtube-trending-go/internal/service"
	"github.com/trendlens/youtube-trending-go/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init("error", "")
	gin.SetMode(gin.TestMode)
	m.Run()
}

type stubAPI struct {
	items       []model.TrendingItem
	stats       map[string]model.ChannelStats
	trendingErr error
	channelErr  error
}

func (s *stubAPI) ListTrending(context.Context, string) ([]model.TrendingItem, error) {
	if s.trendingErr != nil {
		return nil, s.trendingErr
	}
	return s.items, nil
}

func (s *stubAPI) ListChannelStats(context.Context, []string) (map[string]model.ChannelStats, error) {
	if s.channelErr != nil {
		return nil, s.channelErr
	}
	return s.stats, nil
}

func strPtr(s string) *string { return &s }

func performJSON(t *testing.T, r *gin.Engine, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func newTrendingRouter(api *stubAPI) *gin.Engine {
	svc := service.NewTrendingService(api, time.Minute)
	h := NewTrendingHandler(svc, "KR")

	r := gin.New()
	r.GET("/api/trending", h.GetTrending)
	r.GET("/api/regions", h.ListRegions)
	r.POST("/api/refresh", h.Refresh)
	return r
}

func TestGetTrendingRendersCounts(t *testing.T) {
	subs := int64(250000)
	api := &stubAPI{
		items: []model.TrendingItem{
			{
				ID:           "vid1",
				Title:        "Big Video",
				ChannelTitle: "Channel One",
				ChannelID:    "UCa",
				ViewCount:    "1234567",
			},
		},
		stats: map[string]model.ChannelStats{
			"UCa": {SubscriberCount: &subs},
		},
	}
	r := newTrendingRouter(api)

	w, body := performJSON(t, r, "GET", "/api/trending")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "KR", body["region"], "default region applies when none given")

	items := body["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)

	assert.Equal(t, float64(1), item["rank"])
	assert.Equal(t, "https://www.youtube.com/watch?v=vid1", item["url"])
	assert.Equal(t, "1,234,567", item["views"], "view count gets locale grouping")
	assert.Equal(t, "-", item["likes"], "absent like count renders as placeholder")
	assert.Equal(t, "-", item["comments"], "absent comment count renders as placeholder")
	assert.Equal(t, "250,000", item["subscribers"])
}

func TestGetTrendingUnparsableViewCount(t *testing.T) {
	api := &stubAPI{
		items: []model.TrendingItem{
			{ID: "vid1", Title: "T", ChannelTitle: "C", ChannelID: "UCa", ViewCount: "12x34", LikeCount: strPtr("oops")},
		},
		stats: map[string]model.ChannelStats{},
	}
	r := newTrendingRouter(api)

	w, body := performJSON(t, r, "GET", "/api/trending")
	require.Equal(t, http.StatusOK, w.Code)

	item := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "12x34", item["views"], "unparsable numerics pass through as raw strings")
	assert.Equal(t, "oops", item["likes"])
}

func TestGetTrendingChannelStatsFailureDegrades(t *testing.T) {
	api := &stubAPI{
		items: []model.TrendingItem{
			{ID: "vid1", Title: "T", ChannelTitle: "C", ChannelID: "UCa", ViewCount: "10"},
		},
		channelErr: &model.UpstreamAPIError{Message: "quotaExceeded"},
	}
	r := newTrendingRouter(api)

	w, body := performJSON(t, r, "GET", "/api/trending")
	require.Equal(t, http.StatusOK, w.Code, "trending list must still render")

	assert.Contains(t, body["warning"], "quotaExceeded")
	item := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "-", item["subscribers"])
}

func TestGetTrendingUpstreamFailure(t *testing.T) {
	api := &stubAPI{trendingErr: &model.UpstreamAPIError{Message: "keyInvalid"}}
	r := newTrendingRouter(api)

	w, body := performJSON(t, r, "GET", "/api/trending")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, body["message"], "keyInvalid")
}

func TestGetTrendingInvalidRegion(t *testing.T) {
	r := newTrendingRouter(&stubAPI{})

	t.Run("malformed code", func(t *testing.T) {
		w, body := performJSON(t, r, "GET", "/api/trending?region=KOREA")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, body["message"], "invalid region code")
	})

	t.Run("well-formed but not a selectable region", func(t *testing.T) {
		w, body := performJSON(t, r, "GET", "/api/trending?region=ZZ")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, body["message"], "invalid region code")
	})
}

func TestListRegions(t *testing.T) {
	r := newTrendingRouter(&stubAPI{})

	w, body := performJSON(t, r, "GET", "/api/regions")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "KR", body["default"])
	regions := body["regions"].([]any)
	assert.Len(t, regions, 50)
}

func TestRefresh(t *testing.T) {
	r := newTrendingRouter(&stubAPI{stats: map[string]model.ChannelStats{}})

	w, body := performJSON(t, r, "POST", "/api/refresh")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "refreshed", body["status"])
}
