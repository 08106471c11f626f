package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hanjiho/tripmate/config"
	"github.com/hanjiho/tripmate/controllers"
	"github.com/hanjiho/tripmate/middleware"
	"github.com/hanjiho/tripmate/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
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
	r.Use(middleware.RequestID())

	// Replace the default console logger with a file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel,
		cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	feedController := controllers.NewFeedController(db)
	memberController := controllers.NewMemberController(db)
	recruitmentController := controllers.NewRecruitmentController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public feed reads
	api.GET("/feed", feedController.ListFeeds)
	api.GET("/feed/:id", feedController.GetFeed)
	// Public member profile and recruitment reads
	api.GET("/members/:email", memberController.GetMember)
	api.GET("/recruitments/:id", recruitmentController.GetRecruitment)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/feed", feedController.CreateFeed)
	protected.PATCH("/feed/:id", feedController.UpdateFeed)
	protected.DELETE("/feed/:id", feedController.DeleteFeed)
	protected.PATCH("/members", memberController.UpdateProfile)
	protected.POST("/members/follow/:email", memberController.Follow)
	protected.DELETE("/members/unfollow/:email", memberController.Unfollow)
	protected.POST("/recruitments", recruitmentController.CreateRecruitment)
	protected.PATCH("/recruitments/:id", recruitmentController.UpdateRecruitment)
	protected.POST("/recruitments/:id/close", recruitmentController.CloseRecruitment)
	protected.DELETE("/recruitments/:id", recruitmentController.DeleteRecruitment)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
