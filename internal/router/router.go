package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/courtside/racketdb/internal/config"
	"github.com/courtside/racketdb/internal/handler"
	"github.com/courtside/racketdb/internal/middleware"
)

// Handlers bundles every handler the API mounts.  Keeping them in one
// struct keeps the registration signature stable as endpoints are added.
type Handlers struct {
	Auth     *handler.AuthHandler
	Brands   *handler.BrandHandler
	Rackets  *handler.RacketHandler
	Comments *handler.CommentHandler
	Reviews  *handler.ReviewHandler
	Profile  *handler.ProfileHandler
	Upload   *handler.UploadHandler
}

// Register mounts the whole HTTP surface: the health check, the public
// catalog reads and the authenticated community/profile/upload routes.
// The Redis client powers the response cache on the public listings and
// the per-surface write rate limits; a nil client disables both.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rl config.RateLimitConfig, cache config.CacheConfig, rdb *redis.Client) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	// Session endpoints.  Logout lives here too: it operates on the refresh
	// token in the body, so no access token is demanded.
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Public catalog reads.  The listing endpoints sit behind the response
	// cache; every filter combination is its own cache entry.
	cached := middleware.NewRedisCache(cache, rdb)
	api.GET("/brands", h.Brands.List, cached)
	api.GET("/brands/:slug", h.Brands.Get)
	api.GET("/brands/:slug/rackets", h.Brands.Rackets, cached)
	api.GET("/rackets", h.Rackets.List, cached)
	api.GET("/rackets/:id", h.Rackets.Get)
	api.GET("/rackets/:id/comments", h.Comments.ListForRacket)
	api.GET("/rackets/:id/reviews", h.Reviews.ListForRacket)

	// Authenticated write surface.  Each write family draws from its own
	// IP-keyed token bucket.
	authed := api.Group("", middleware.JWTAuth(cfg.JWTSecret))

	commentLimit := middleware.RateLimit(rl, rl.Comments, "comments", rdb)
	authed.POST("/comments", h.Comments.Create, commentLimit)
	authed.PUT("/comments/:id", h.Comments.Update, commentLimit)
	authed.DELETE("/comments/:id", h.Comments.Delete, commentLimit)

	reviewLimit := middleware.RateLimit(rl, rl.Reviews, "reviews", rdb)
	authed.POST("/reviews", h.Reviews.Create, reviewLimit)
	authed.PUT("/reviews/:id", h.Reviews.Update, reviewLimit)
	authed.DELETE("/reviews/:id", h.Reviews.Delete, reviewLimit)

	authed.GET("/profile", h.Profile.Get)
	authed.PUT("/profile", h.Profile.Update)

	// Authenticated logout variant; with "all": true it revokes every
	// session of the caller, which needs the bearer token to know who that
	// is.
	authed.POST("/logout", h.Auth.Logout)

	authed.POST("/upload", h.Upload.Create, middleware.RateLimit(rl, rl.Uploads, "uploads", rdb))
}
