package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avelkov/bloghub/config"
	"github.com/avelkov/bloghub/controllers"
	"github.com/avelkov/bloghub/middleware"
	"github.com/avelkov/bloghub/models"
	"github.com/avelkov/bloghub/utils"
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
	// Access log and recovery go through zap instead of gin's default console logger.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
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
	blogController := controllers.NewBlogController(db)
	commentController := controllers.NewCommentController(db)

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/users", middleware.AuthRequired(), middleware.RequireRoles(models.RoleAdmin), authController.ListUsers)
	authGroup.POST("/users/:id/promote", middleware.AuthRequired(), middleware.RequireRoles(models.RoleAdmin), authController.PromoteUser)
	authGroup.POST("/users/:id/demote", middleware.AuthRequired(), middleware.RequireRoles(models.RoleAdmin), authController.DemoteUser)
	authGroup.DELETE("/:id", middleware.AuthRequired(), middleware.RequireRoles(models.RoleAdmin), authController.DeleteUser)
	authGroup.GET("/profile/view", middleware.AuthRequired(), authController.ViewProfile)
	authGroup.POST("/profile/update", middleware.AuthRequired(), authController.UpdateProfile)

	blogGroup := r.Group("/blog")
	blogGroup.Use(middleware.AuthRequired())
	blogGroup.POST("", middleware.RequireRoles(models.RoleUser), blogController.CreateBlog)
	blogGroup.GET("", middleware.RequireRoles(models.RoleAdmin), blogController.ListBlogs)
	blogGroup.GET("/:id", blogController.GetBlog)
	blogGroup.PUT("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleUser), blogController.UpdateBlog)
	blogGroup.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleUser), blogController.DeleteBlog)
	blogGroup.POST("/:id/like", blogController.LikeBlog)
	blogGroup.POST("/:id/unlike", blogController.UnlikeBlog)

	commentGroup := r.Group("/comment")
	commentGroup.Use(middleware.AuthRequired())
	commentGroup.POST("/:id", commentController.CreateComment)
	commentGroup.GET("/:id", middleware.RequireRoles(models.RoleAdmin), commentController.ListComments)
	commentGroup.PUT("/:commentId", middleware.RequireRoles(models.RoleAdmin, models.RoleUser), commentController.UpdateComment)
	commentGroup.DELETE("/:commentId", middleware.RequireRoles(models.RoleAdmin, models.RoleUser), commentController.DeleteComment)

	return r
}
