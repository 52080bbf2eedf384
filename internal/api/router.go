package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sanctionsfeed/internal/api/handlers"
	"sanctionsfeed/internal/api/middleware"
	"sanctionsfeed/internal/metrics"
	"sanctionsfeed/internal/storage"
)

// Router wraps the Gin router with handlers
type Router struct {
	engine        *gin.Engine
	screenHandler *handlers.ScreenHandler
	feedHandler   *handlers.FeedHandler
}

// NewRouter creates a new Router with all handlers
func NewRouter(
	store *storage.SanctionedStore,
	meta *storage.MetaStore,
	m *metrics.Metrics,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:        gin.New(),
		screenHandler: handlers.NewScreenHandler(store, m),
		feedHandler:   handlers.NewFeedHandler(store, meta),
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// setupMiddleware configures middleware
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger())
	r.engine.Use(middleware.CORS())
}

// setupRoutes configures API routes
func (r *Router) setupRoutes() {
	// Health check
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/metadata", r.feedHandler.GetMetadata)

		screen := v1.Group("/screen")
		screen.Use(middleware.ValidateChain())
		{
			screen.GET("/:chain/:address", r.screenHandler.Screen)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(middleware.ValidateChain())
		{
			addresses.GET("/:chain", r.feedHandler.ListByChain)
		}
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
