package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/pawpost/pawpost/internal/models"
	"github.com/pawpost/pawpost/pkg/telemetry"
)

// ScopeKind selects the candidate set and ordering of a feed
type ScopeKind int

const (
	// ScopeGlobal is the global feed: posts with no group, boost-aware order
	ScopeGlobal ScopeKind = iota
	// ScopeGroup is one group's feed, boost-aware order
	ScopeGroup
	// ScopeSearch is a content substring search, recency order only
	ScopeSearch
	// ScopeTopHelpful ranks by the denormalized helpful counter
	ScopeTopHelpful
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeGroup:
		return "group"
	case ScopeSearch:
		return "search"
	case ScopeTopHelpful:
		return "top_helpful"
	default:
		return "unknown"
	}
}

// Scope is a feed viewing context
type Scope struct {
	Kind    ScopeKind
	GroupID int64
	Query   string
}

// GlobalScope returns the global-feed scope
func GlobalScope() Scope {
	return Scope{Kind: ScopeGlobal}
}

// GroupScope returns the feed scope for one group
func GroupScope(groupID int64) Scope {
	return Scope{Kind: ScopeGroup, GroupID: groupID}
}

// SearchScope returns a content-search scope
func SearchScope(query string) Scope {
	return Scope{Kind: ScopeSearch, Query: query}
}

// TopHelpfulScope returns the helpful-ranked scope
func TopHelpfulScope() Scope {
	return Scope{Kind: ScopeTopHelpful}
}

// PostSource fetches candidate posts per scope. Global and group listings
// carry no ordering requirement; search and helpful listings come back
// pre-ordered by the store.
type PostSource interface {
	ListGlobal(ctx context.Context, limit int) ([]models.Post, error)
	ListByGroup(ctx context.Context, groupID int64, limit int) ([]models.Post, error)
	SearchContent(ctx context.Context, query string, limit int) ([]models.Post, error)
	ListTopHelpful(ctx context.Context, limit int) ([]models.Post, error)
}

// Composer decides which posts appear in a feed and in what order, then hands
// off to the hydrator. It is stateless apart from the injected clock.
type Composer struct {
	posts    PostSource
	hydrator *Hydrator
	now      func() time.Time
	logger   *zap.Logger
}

// NewComposer creates a new feed composer
func NewComposer(posts PostSource, hydrator *Hydrator, now func() time.Time, logger *zap.Logger) *Composer {
	if now == nil {
		now = time.Now
	}
	return &Composer{
		posts:    posts,
		hydrator: hydrator,
		now:      now,
		logger:   logger.With(zap.String("component", "feed-composer")),
	}
}

// Compose fetches the scope's candidate posts, orders them, and hydrates
// them. The limit truncates at fetch time on the unordered candidate set for
// global and group scopes, matching the product's observable behavior: a
// low-level boosted post can fall outside the fetch window.
func (c *Composer) Compose(ctx context.Context, scope Scope, limit int) ([]HydratedPost, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.compose")
	defer span.End()
	span.SetAttributes(
		attribute.String("feed.scope", scope.Kind.String()),
		attribute.Int("feed.limit", limit),
	)

	var (
		posts []models.Post
		err   error
	)
	switch scope.Kind {
	case ScopeGlobal:
		posts, err = c.posts.ListGlobal(ctx, limit)
		if err == nil {
			orderBoostAware(posts, c.now())
		}
	case ScopeGroup:
		posts, err = c.posts.ListByGroup(ctx, scope.GroupID, limit)
		if err == nil {
			orderBoostAware(posts, c.now())
		}
	case ScopeSearch:
		// Search order is relevance by recency; promotion does not apply
		posts, err = c.posts.SearchContent(ctx, strings.TrimSpace(scope.Query), limit)
	case ScopeTopHelpful:
		posts, err = c.posts.ListTopHelpful(ctx, limit)
	default:
		return nil, fmt.Errorf("unknown feed scope %d", scope.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch feed candidates: %w", err)
	}
	span.SetAttributes(attribute.Int("feed.candidates", len(posts)))

	c.logger.Debug("composed feed",
		zap.Stringer("scope", scope.Kind),
		zap.Int("candidates", len(posts)))

	return c.hydrator.Hydrate(ctx, posts)
}

// orderBoostAware sorts posts in place: currently boosted posts first, by
// boost level descending then created_at descending; the rest by created_at
// descending. now is sampled once by the caller so a composition sees one
// consistent boost partition.
func orderBoostAware(posts []models.Post, now time.Time) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := &posts[i], &posts[j]
		aBoosted, bBoosted := a.BoostedAt(now), b.BoostedAt(now)

		if aBoosted && bBoosted {
			al, bl := a.BoostLevel.Int64, b.BoostLevel.Int64
			if al != bl {
				return al > bl
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if aBoosted != bBoosted {
			return aBoosted
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
