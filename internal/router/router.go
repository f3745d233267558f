package router

import (
	"net/http"
	"time"

	"github.com/chybby/tutorifull/internal/config"
	"github.com/chybby/tutorifull/internal/handler"
	"github.com/chybby/tutorifull/internal/middleware"
	"github.com/chybby/tutorifull/internal/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course *handler.CourseHandler
	Alert  *handler.AlertHandler
	Yo     *handler.YoHandler
	Site   *handler.SiteHandler
	Stats  *handler.StatsHandler
}

// siteStatusMaxAge keeps the feature-flag endpoint cheap to poll without
// letting a stale "closed" banner linger after a deploy.
const siteStatusMaxAge = 5 * time.Minute

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Course listings are repetitive JSON; compress anything large enough
	// to be worth it for clients that ask.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the abuse-prone endpoints: the signup POST and the
	// per-keystroke Yo username lookup.
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)

	// ─── 1. Catalog (Public Reads) ─────────────────────────────────────
	api := router.Group("/api")
	{
		api.GET("/courses", handlers.Course.SearchCourses)
		api.GET("/courses/:course_id", handlers.Course.GetCourse)
		api.GET("/site", middleware.CacheControl(siteStatusMaxAge), handlers.Site.GetStatus)
		api.GET("/stats", handlers.Stats.GetOverview)

		// ─── 2. Signup (Rate Limited) ──────────────────────────────────
		api.GET("/validateyoname", limiter.Middleware(), handlers.Yo.ValidateYoName)
		api.POST("/alerts", limiter.Middleware(), handlers.Alert.SaveAlerts)
	}

	// ─── 3. Confirmation Page Data ─────────────────────────────────────
	router.GET("/alert", handlers.Alert.ShowSelection)

	return router
}
