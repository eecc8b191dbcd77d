package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pawpost/pawpost/internal/cache"
	"github.com/pawpost/pawpost/internal/db"
	"github.com/pawpost/pawpost/internal/engagement"
	"github.com/pawpost/pawpost/internal/feed"
	"github.com/pawpost/pawpost/internal/rewards"
	"github.com/pawpost/pawpost/pkg/config"
	"github.com/pawpost/pawpost/pkg/logging"
)

// Router sets up API routes
type Router struct {
	handler *JSONRPCHandler
	db      *db.DB
	cache   *cache.Cache
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, cfg *config.Config) *Router {
	handler := NewJSONRPCHandler()
	router := &Router{
		handler: handler,
		db:      database,
		cache:   redisCache,
		cfg:     cfg,
		logger:  logging.GetLogger().With(zap.String("component", "api-router")),
	}

	// Register all API methods
	router.registerMethods()

	return router
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// JSON-RPC endpoint
	engine.POST("/", r.handler.Handle)
}

// registerMethods registers all API methods
func (r *Router) registerMethods() {
	repo := db.NewRepository(r.db.DB)
	logger := logging.GetLogger()

	profiles := db.NewProfileRepository(repo)
	posts := db.NewPostRepository(repo)
	groups := db.NewGroupRepository(repo)
	likes := db.NewLikeRepository(repo)
	helpful := db.NewHelpfulMarkRepository(repo)
	comments := db.NewCommentRepository(repo)
	boards := db.NewBoardRepository(repo)
	saved := db.NewSavedPostRepository(repo)
	messages := db.NewMessageRepository(repo)
	notifications := db.NewNotificationRepository(repo)

	ledger := rewards.NewLedger(profiles, logger)
	hydrator := feed.NewHydrator(likes, helpful, comments, profiles)
	composer := feed.NewComposer(posts, hydrator, time.Now, logger)
	actions := engagement.NewActions(
		posts, likes, helpful, comments, profiles,
		boards, saved, messages, notifications,
		ledger, time.Now, logger,
	)

	// Feed API
	feedAPI := NewFeedAPI(composer, groups, r.cache, &r.cfg.Feed)
	r.handler.RegisterMethod("feed.get_posts", feedAPI.GetPosts)
	r.handler.RegisterMethod("feed.search", feedAPI.Search)
	r.handler.RegisterMethod("feed.get_helpful", feedAPI.GetHelpful)

	// Engagement API
	engagementAPI := NewEngagementAPI(actions, profiles)
	r.handler.RegisterMethod("engagement.toggle_like", engagementAPI.ToggleLike)
	r.handler.RegisterMethod("engagement.toggle_helpful", engagementAPI.ToggleHelpful)
	r.handler.RegisterMethod("engagement.add_comment", engagementAPI.AddComment)
	r.handler.RegisterMethod("engagement.save_post", engagementAPI.SavePost)
	r.handler.RegisterMethod("engagement.redeem_boost", engagementAPI.RedeemBoost)
	r.handler.RegisterMethod("engagement.redeem_discount", engagementAPI.RedeemDiscount)

	// Profile API
	profileAPI := NewProfileAPI(profiles)
	r.handler.RegisterMethod("profile.get", profileAPI.Get)
	r.handler.RegisterMethod("profile.get_tier", profileAPI.GetTier)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "pawpost-api",
	})
}
