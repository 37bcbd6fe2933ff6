package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/pixmarket/config"
	"github.com/cppla/pixmarket/controllers"
	"github.com/cppla/pixmarket/middleware"
	"github.com/cppla/pixmarket/utils"
)

// SetupRouter wires routes, middlewares, and controllers. cache may be nil.
func SetupRouter(db *gorm.DB, svc controllers.MarketService, cache utils.Cache) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log and panic recovery go to their own rolling file.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, true))
	} else {
		utils.Sugar.Warnf("gin file logger unavailable, using stdout logger: %v", err)
		r.Use(utils.Ginzap(utils.Logger, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(utils.Logger, true))
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	cacheTTL := time.Duration(cfg.MarketCacheTTLSeconds) * time.Second
	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db, cache, cacheTTL)
	marketController := controllers.NewMarketController(svc, cache, cacheTTL)
	statsController := controllers.NewStatsController(db)

	auth := middleware.AuthRequired(db)
	apiLimit := middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, 42901)
	bidLimit := middleware.RateLimitMiddleware(cfg.BidRateLimitPerMinute, 42902)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(apiLimit)
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", auth, authController.Logout)
	authGroup.GET("/me", auth, authController.Me)
	authGroup.PATCH("/profile", auth, authController.UpdateProfile)

	// Public reads
	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)
	api.GET("/posts/:id/stats", statsController.GetPostStats)
	api.GET("/stats", statsController.GetStats)
	api.GET("/users/:id", authController.GetUserPublic)
	api.GET("/users/:id/posts", postController.ListUserPosts)
	api.GET("/users/:id/bids", marketController.ListUserBids)

	marketGroup := api.Group("/market")
	marketGroup.GET("/listings", marketController.ListListings)
	marketGroup.GET("/listings/:id", marketController.GetListing)
	marketGroup.GET("/stats", marketController.Stats)

	protected := api.Group("")
	protected.Use(auth, apiLimit)
	protected.POST("/posts", postController.CreatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/:id/comments", postController.CreateComment)
	protected.DELETE("/comments/:commentId", postController.DeleteComment)
	protected.POST("/posts/:id/listing", marketController.CreateListing)
	protected.DELETE("/posts/:id/listing", marketController.DeleteListing)
	protected.POST("/posts/:id/bids", bidLimit, marketController.PlaceBid)
	protected.GET("/users/me/posts", postController.ListMyPosts)
	protected.GET("/users/me/bids", marketController.ListMyBids)
	protected.PATCH("/admin/users/:id/ban", authController.SetBanned)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
	})

	return r
}
