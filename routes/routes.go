package routes

import (
	"time"

	"echofeed/config"
	"echofeed/handlers"
	"echofeed/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimitMax > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimitMax,
			time.Duration(cfg.RateLimitWindow)*time.Second))
	}

	// Public routes (no auth required)
	router.POST("/api/signup", handlers.Signup)
	router.POST("/api/login", handlers.Login)
	router.GET("/api/vapid-public-key", handlers.GetVapidPublicKey)

	// Google OAuth
	router.GET("/api/google/auth-url", handlers.GetGoogleAuthURL)
	router.GET("/api/google/callback", handlers.GoogleOAuthCallback)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	// Profile
	protected.GET("/me", handlers.GetMyProfile)
	protected.PUT("/me", handlers.UpdateMyProfile)
	protected.GET("/u/:username", handlers.GetUserByUsername)
	protected.POST("/me/badges", handlers.ToggleBadge)
	protected.GET("/achievements", handlers.GetAchievements)

	// Follows
	protected.POST("/users/:id/follow", handlers.ToggleFollow)

	// Search
	protected.GET("/search", handlers.Search)

	// Posts
	protected.POST("/posts", handlers.CreatePost)
	protected.GET("/feed", handlers.GetFeed)
	protected.GET("/posts/:id", handlers.GetPost)
	protected.DELETE("/posts/:id", handlers.DeletePost)
	protected.GET("/u/:username/posts", handlers.GetUserPosts)
	protected.POST("/posts/:id/comments", handlers.AddComment)
	protected.POST("/posts/:id/upvote", handlers.UpvotePost)
	protected.POST("/posts/:id/downvote", handlers.DownvotePost)

	// Videos
	protected.POST("/videos", handlers.CreateVideo)
	protected.GET("/videos", handlers.GetVideoFeed)
	protected.POST("/videos/:id/like", handlers.LikeVideo)
	protected.POST("/videos/:id/share", handlers.ShareVideo)
	protected.POST("/videos/:id/comments", handlers.AddVideoComment)
	protected.GET("/videos/:id/comments", handlers.GetVideoComments)

	// Notifications
	protected.GET("/notifications", handlers.GetNotifications)
	protected.POST("/notifications/:id/read", handlers.MarkNotificationRead)
	protected.POST("/notifications/read-all", handlers.MarkAllNotificationsRead)

	// AI
	protected.POST("/ai/reply", handlers.GenerateReply)
	protected.POST("/ai/trending", handlers.SummarizeTrending)

	// Media upload
	protected.POST("/upload", handlers.UploadMedia)

	// Push subscriptions
	protected.POST("/subscribe", handlers.SubscribePush)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
