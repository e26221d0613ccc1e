package handlers

import (
	"time"

	"echofeed/ai"
	"echofeed/config"
	"echofeed/middleware"
	"echofeed/websocket"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Common constants and wiring shared across all handler files
const fallbackAvatar = "https://upload.wikimedia.org/wikipedia/commons/8/89/Portrait_Placeholder.png"

var (
	cfg       *config.Config
	wsManager *websocket.Manager
	replier   *ai.Replier
)

// Init hands the loaded configuration to the handler layer. Called once at
// startup before any route is served.
func Init(c *config.Config) {
	cfg = c
}

func SetWebSocketManager(manager *websocket.Manager) {
	wsManager = manager
}

func SetReplier(r *ai.Replier) {
	replier = r
}

// issueToken signs a 24h session token for the given user id.
func issueToken(userID string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// actorID returns the authenticated user's id set by the auth middleware.
func actorID(c *gin.Context) string {
	return c.GetString("userId")
}
