package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawpost/pawpost/internal/cache"
	"github.com/pawpost/pawpost/internal/db"
	"github.com/pawpost/pawpost/internal/feed"
	"github.com/pawpost/pawpost/pkg/config"
)

// FeedAPI provides feed query methods
type FeedAPI struct {
	composer *feed.Composer
	groups   *db.GroupRepository
	cache    *cache.Cache
	cfg      *config.FeedConfig
}

// NewFeedAPI creates a new feed API
func NewFeedAPI(composer *feed.Composer, groups *db.GroupRepository, redisCache *cache.Cache, cfg *config.FeedConfig) *FeedAPI {
	return &FeedAPI{
		composer: composer,
		groups:   groups,
		cache:    redisCache,
		cfg:      cfg,
	}
}

func (f *FeedAPI) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > f.cfg.MaxLimit {
		return f.cfg.MaxLimit
	}
	return limit
}

// cacheTTL returns how long a composed feed may be served stale. Engagement
// writes rely on expiry rather than explicit invalidation.
func cacheTTL(kind feed.ScopeKind) time.Duration {
	switch kind {
	case feed.ScopeTopHelpful:
		return 30 * time.Second
	case feed.ScopeSearch:
		return 10 * time.Second
	default:
		return 3 * time.Second
	}
}

func (f *FeedAPI) composeCached(ctx *gin.Context, scope feed.Scope, limit int, keyParts ...string) (interface{}, error) {
	cacheKey := cache.HashKey(keyParts...)

	if f.cache != nil {
		var cached []PostView
		if err := f.cache.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := f.composer.Compose(ctx.Request.Context(), scope, limit)
	if err != nil {
		return nil, err
	}
	views := NewPostViews(posts)

	if f.cache != nil {
		// Best effort; a failed cache write never fails the read
		_ = f.cache.SetJSON(cacheKey, views, cacheTTL(scope.Kind))
	}
	return views, nil
}

// GetPosts handles feed.get_posts: the global feed, or one group's feed when
// group_id is given
func (f *FeedAPI) GetPosts(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		GroupID *int64 `json:"group_id"`
		Limit   int    `json:"limit"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, NewError(ErrInvalidParams, "invalid parameters format")
		}
	}
	limit := f.clampLimit(p.Limit, f.cfg.DefaultLimit)

	scope := feed.GlobalScope()
	groupKey := "global"
	if p.GroupID != nil {
		if _, err := f.groups.GetByID(ctx.Request.Context(), *p.GroupID); err != nil {
			return nil, err
		}
		scope = feed.GroupScope(*p.GroupID)
		groupKey = fmt.Sprintf("group:%d", *p.GroupID)
	}

	return f.composeCached(ctx, scope, limit,
		"feed_get_posts", groupKey, fmt.Sprintf("%d", limit))
}

// Search handles feed.search: case-insensitive substring match on content,
// recency order
func (f *FeedAPI) Search(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, NewError(ErrInvalidParams, "invalid parameters format")
	}
	if p.Query == "" {
		return nil, NewError(ErrInvalidParams, "missing required parameter: query")
	}
	limit := f.clampLimit(p.Limit, f.cfg.SearchLimit)

	return f.composeCached(ctx, feed.SearchScope(p.Query), limit,
		"feed_search", p.Query, fmt.Sprintf("%d", limit))
}

// GetHelpful handles feed.get_helpful: posts ranked by helpful count
func (f *FeedAPI) GetHelpful(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Limit int `json:"limit"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, NewError(ErrInvalidParams, "invalid parameters format")
		}
	}
	limit := f.clampLimit(p.Limit, f.cfg.HelpfulLimit)

	return f.composeCached(ctx, feed.TopHelpfulScope(), limit,
		"feed_get_helpful", fmt.Sprintf("%d", limit))
}
