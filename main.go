package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"echofeed/ai"
	"echofeed/config"
	"echofeed/database"
	"echofeed/handlers"
	"echofeed/logger"
	"echofeed/routes"
	"echofeed/websocket"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFile)
	logrus.Info("Starting echofeed server...")

	// ===== CONNECT TO MONGODB WITH RETRY =====
	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.Connect(cfg); err != nil {
			dbErr = err
			logrus.Warnf("MongoDB connection attempt %d failed: %v", i, err)
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		logrus.Fatal("Failed to connect to MongoDB: ", dbErr)
	}

	gin.SetMode(cfg.GinMode)

	handlers.Init(cfg)

	// ===== AI REPLIER (optional) =====
	if cfg.GeminiAPIKey != "" {
		model, err := ai.NewGeminiModel(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logrus.Fatal("Failed to init Gemini client: ", err)
		}
		handlers.SetReplier(ai.NewReplier(model))
		logrus.WithField("model", cfg.GeminiModel).Info("AI replier configured")
	} else {
		logrus.Warn("GEMINI_API_KEY not set - AI endpoints disabled")
	}

	router := routes.SetupRouter(cfg)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "echofeed backend running",
			"service": "healthy",
		})
	})

	// ===== WEBSOCKET =====
	wsManager := websocket.NewManager()
	go wsManager.Start()
	handlers.SetWebSocketManager(wsManager)

	router.GET("/ws", func(c *gin.Context) {
		websocket.Handler(wsManager, cfg.JWTSecret)(c.Writer, c.Request)
	})

	server := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Server running on %s", cfg.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Server error: ", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Error("Forced shutdown: ", err)
	}

	if err := database.Disconnect(); err != nil {
		logrus.Error("MongoDB disconnect error: ", err)
	}

	logrus.Info("Server stopped gracefully")
}
