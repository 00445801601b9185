// page.go provides a Redis-backed cache for rendered public pages. The
// marketing site's pages change only when an admin edits content, so
// rendered HTML is kept in Redis and invalidated per section on writes.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pageKeyPrefix = "page:"

	// DefaultPageTTL bounds staleness even if an invalidation is missed.
	DefaultPageTTL = 10 * time.Minute
)

// Page cache keys for the public routes. Blog posts append their slug.
const (
	PageHome         = "home"
	PageTeam         = "team"
	PageGallery      = "gallery"
	PageBlogIndex    = "blog"
	PageTestimonials = "testimonials"
	PageEvent        = "event"
)

// BlogPostKey returns the cache key for a single blog post page.
func BlogPostKey(slug string) string {
	return "blog:" + slug
}

// PageCache stores rendered HTML for public pages in Redis.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a page cache backed by the given Redis client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a page key. Cache errors degrade to a
// miss; the page is simply re-rendered.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// Invalidate removes the given page keys from the cache. Used by admin
// handlers after a write so the public site reflects the change.
func (pc *PageCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = pageKeyPrefix + k
	}
	if err := pc.client.Del(ctx, full...).Err(); err != nil {
		slog.Warn("page cache invalidate error", "keys", keys, "error", err)
	}
}

// InvalidateBlog clears the blog index, the homepage (it lists recent
// posts), and a specific post page.
func (pc *PageCache) InvalidateBlog(ctx context.Context, slug string) {
	keys := []string{PageBlogIndex, PageHome}
	if slug != "" {
		keys = append(keys, BlogPostKey(slug))
	}
	pc.Invalidate(ctx, keys...)
}
