// Package youtube is a thin client for the two YouTube Data API v3 read calls
// this service depends on: the mostPopular videos chart and channel statistics.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/trendlens/youtube-trending-go/internal/metrics"
	"github.com/trendlens/youtube-trending-go/internal/model"
)

const (
	defaultBaseURL    = "https://www.googleapis.com/youtube/v3"
	defaultTimeout    = 15 * time.Second
	defaultMaxResults = 30
)

// Client calls the YouTube Data API v3 with a static API key.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithTimeout overrides the fixed request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithMaxResults overrides the trending page size.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// NewClient creates a new YouTube API client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, &model.ConfigError{Message: "YouTube API key is required"}
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		maxResults: defaultMaxResults,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Response schemas. Statistics counts arrive as JSON strings; pointer fields
// distinguish absent values from empty ones so the documented defaults can be
// applied at this boundary.

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error *apiError `json:"error"`
}

type thumbnail struct {
	URL string `json:"url"`
}

type thumbnailSet struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
	High    *thumbnail `json:"high"`
}

type videoSnippet struct {
	Title        string        `json:"title"`
	ChannelTitle string        `json:"channelTitle"`
	ChannelID    string        `json:"channelId"`
	Thumbnails   *thumbnailSet `json:"thumbnails"`
}

type videoStatistics struct {
	ViewCount    *string `json:"viewCount"`
	LikeCount    *string `json:"likeCount"`
	CommentCount *string `json:"commentCount"`
}

type videoItem struct {
	ID         string           `json:"id"`
	Snippet    *videoSnippet    `json:"snippet"`
	Statistics *videoStatistics `json:"statistics"`
}

type videoListResponse struct {
	Error *apiError   `json:"error"`
	Items []videoItem `json:"items"`
}

type channelStatistics struct {
	SubscriberCount *string `json:"subscriberCount"`
}

type channelItem struct {
	ID         string             `json:"id"`
	Statistics *channelStatistics `json:"statistics"`
}

type channelListResponse struct {
	Error *apiError     `json:"error"`
	Items []channelItem `json:"items"`
}

// ListTrending fetches the mostPopular chart for a region.
func (c *Client) ListTrending(ctx context.Context, region string) ([]model.TrendingItem, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("chart", "mostPopular")
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	params.Set("regionCode", region)
	params.Set("key", c.apiKey)

	var resp videoListResponse
	if err := c.get(ctx, "videos", params, &resp); err != nil {
		return nil, err
	}

	items := make([]model.TrendingItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, mapTrendingItem(it))
	}
	return items, nil
}

// ListChannelStats fetches subscriber counts for the given channel IDs.
// The caller is responsible for deduplication; IDs are joined in the order
// given.
func (c *Client) ListChannelStats(ctx context.Context, channelIDs []string) (map[string]model.ChannelStats, error) {
	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", strings.Join(channelIDs, ","))
	params.Set("key", c.apiKey)

	var resp channelListResponse
	if err := c.get(ctx, "channels", params, &resp); err != nil {
		return nil, err
	}

	stats := make(map[string]model.ChannelStats, len(resp.Items))
	for _, it := range resp.Items {
		var subs *int64
		if it.Statistics != nil && it.Statistics.SubscriberCount != nil {
			if n, err := strconv.ParseInt(*it.Statistics.SubscriberCount, 10, 64); err == nil {
				subs = &n
			}
		}
		stats[it.ID] = model.ChannelStats{SubscriberCount: subs}
	}
	return stats, nil
}

// enveloped is a response body that may carry an upstream error envelope.
type enveloped interface {
	envelope() *apiError
}

// get performs one outbound request and decodes the body into out. The body
// is checked for an error envelope even on 2xx responses.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out enveloped) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(endpoint, start, err) }()

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &model.NetworkError{Op: endpoint, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &model.NetworkError{Op: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.NetworkError{Op: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies usually carry an envelope with a usable message.
		var env errorEnvelope
		if jsonErr := json.Unmarshal(body, &env); jsonErr == nil && env.Error != nil {
			return &model.UpstreamAPIError{Code: env.Error.Code, Message: env.Error.Message}
		}
		return &model.NetworkError{Op: endpoint, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &model.NetworkError{Op: endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if apiErr := out.envelope(); apiErr != nil {
		return &model.UpstreamAPIError{Code: apiErr.Code, Message: apiErr.Message}
	}
	return nil
}

func (r *videoListResponse) envelope() *apiError   { return r.Error }
func (r *channelListResponse) envelope() *apiError { return r.Error }

// mapTrendingItem applies the documented field defaults at the parse boundary.
func mapTrendingItem(it videoItem) model.TrendingItem {
	item := model.TrendingItem{
		ID:           it.ID,
		Title:        model.PlaceholderTitle,
		ChannelTitle: model.PlaceholderChannel,
		ViewCount:    model.DefaultViewCount,
	}

	if it.Snippet != nil {
		if it.Snippet.Title != "" {
			item.Title = it.Snippet.Title
		}
		if it.Snippet.ChannelTitle != "" {
			item.ChannelTitle = it.Snippet.ChannelTitle
		}
		item.ChannelID = it.Snippet.ChannelID
		item.ThumbnailURL = pickThumbnail(it.Snippet.Thumbnails)
	}

	if it.Statistics != nil {
		if it.Statistics.ViewCount != nil {
			item.ViewCount = *it.Statistics.ViewCount
		}
		item.LikeCount = it.Statistics.LikeCount
		item.CommentCount = it.Statistics.CommentCount
	}

	return item
}

// pickThumbnail prefers medium, then high, then default resolution.
func pickThumbnail(set *thumbnailSet) *string {
	if set == nil {
		return nil
	}
	for _, t := range []*thumbnail{set.Medium, set.High, set.Default} {
		if t != nil && t.URL != "" {
			return &t.URL
		}
	}
	return nil
}
