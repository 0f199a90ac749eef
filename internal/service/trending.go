// Package service contains the application services of the trending dashboard.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trendlens/youtube-trending-go/internal/cache"
	"github.com/trendlens/youtube-trending-go/internal/metrics"
	"github.com/trendlens/youtube-trending-go/internal/model"
	"github.com/trendlens/youtube-trending-go/pkg/logger"
)

const (
	trendingCacheName = "trending"
	channelCacheName  = "channel_stats"
)

// VideoAPI is the upstream surface the trending service depends on.
type VideoAPI interface {
	ListTrending(ctx context.Context, region string) ([]model.TrendingItem, error)
	ListChannelStats(ctx context.Context, channelIDs []string) (map[string]model.ChannelStats, error)
}

// TrendingService is a read-through TTL cache in front of the platform API.
type TrendingService struct {
	client   VideoAPI
	videos   *cache.Cache[string, []model.TrendingItem]
	channels *cache.Cache[string, map[string]model.ChannelStats]
}

// NewTrendingService creates a TrendingService with the given cache TTL.
func NewTrendingService(client VideoAPI, ttl time.Duration) *TrendingService {
	return &TrendingService{
		client:   client,
		videos:   cache.New[string, []model.TrendingItem](ttl),
		channels: cache.New[string, map[string]model.ChannelStats](ttl),
	}
}

// GetTrendingVideos returns the trending chart for a region, memoized per
// region code. A cache hit within the TTL performs no network call.
func (s *TrendingService) GetTrendingVideos(ctx context.Context, region string) ([]model.TrendingItem, error) {
	region = strings.ToUpper(strings.TrimSpace(region))

	if items, ok := s.videos.Get(region); ok {
		metrics.CacheHit(trendingCacheName)
		return items, nil
	}
	metrics.CacheMiss(trendingCacheName)

	items, err := s.client.ListTrending(ctx, region)
	if err != nil {
		return nil, err
	}

	s.videos.Put(region, items)
	logger.Log.Info("fetched trending chart",
		zap.String("region", region),
		zap.Int("items", len(items)),
	)
	return items, nil
}

// GetChannelStats returns subscriber stats for the given channel IDs.
// Input IDs are deduplicated preserving first-seen order before the outbound
// request is built; an empty input short-circuits with no network call. The
// cache key is the order-normalized unique ID set.
func (s *TrendingService) GetChannelStats(ctx context.Context, channelIDs []string) (map[string]model.ChannelStats, error) {
	unique := dedupe(channelIDs)
	if len(unique) == 0 {
		return map[string]model.ChannelStats{}, nil
	}

	key := cacheKey(unique)
	if stats, ok := s.channels.Get(key); ok {
		metrics.CacheHit(channelCacheName)
		return stats, nil
	}
	metrics.CacheMiss(channelCacheName)

	stats, err := s.client.ListChannelStats(ctx, unique)
	if err != nil {
		return nil, err
	}

	s.channels.Put(key, stats)
	return stats, nil
}

// Refresh invalidates both caches unconditionally; the next read refetches.
func (s *TrendingService) Refresh() {
	s.videos.Invalidate()
	s.channels.Invalidate()
	logger.Log.Info("fetch caches invalidated")
}

// dedupe removes duplicates and empty IDs, preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// cacheKey builds an order-independent key for a unique ID set.
func cacheKey(unique []string) string {
	sorted := make([]string, len(unique))
	copy(sorted, unique)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
