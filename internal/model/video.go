// Package model contains the data models and DTOs for the trending dashboard service.
package model

// TrendingItem is a single entry of a region's trending chart.
// Items are immutable once parsed; they live for one fetch cycle and are
// discarded when the cache entry expires or is invalidated.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type TrendingItem struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ChannelTitle string  `json:"channel_title"`
	ChannelID    string  `json:"channel_id"`
	ThumbnailURL *string `json:"thumbnail_url"`
	ViewCount    string  `json:"view_count"`
	LikeCount    *string `json:"like_count"`
	CommentCount *string `json:"comment_count"`
}

// ChannelStats holds the statistics fetched for a single channel.
// SubscriberCount is nil when the upstream hides or omits the value.
type ChannelStats struct {
	SubscriberCount *int64 `json:"subscriber_count"`
}

// Placeholder values applied at the parse boundary when the upstream payload
// omits a field, so rendering code never has to nil-check snippets.
const (
	PlaceholderTitle   = "(no title)"
	PlaceholderChannel = "(no channel info)"
	DefaultViewCount   = "0"
)
