package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"echofeed/database"
	"echofeed/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func googleOAuthConfig() *oauth2.Config {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

func GetGoogleAuthURL(c *gin.Context) {
	conf := googleOAuthConfig()
	if conf == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}

	url := conf.AuthCodeURL("state-token", oauth2.AccessTypeOnline)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func GoogleOAuthCallback(c *gin.Context) {
	conf := googleOAuthConfig()
	if conf == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		logrus.WithError(err).Error("Google code exchange failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	resp, err := conf.Client(ctx, token).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		logrus.WithError(err).Error("Google userinfo request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user info"})
		return
	}
	defer resp.Body.Close()

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode user info"})
		return
	}
	if info.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google account has no email"})
		return
	}

	userID, err := findOrCreateGoogleUser(ctx, info)
	if err != nil {
		logrus.WithError(err).Error("Google sign-in upsert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	tokenString, err := issueToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   tokenString,
		"userId":  userID,
		"message": "Login successful",
	})
}

// findOrCreateGoogleUser maps a Google identity onto a user document keyed by
// email, creating the profile on first sign-in.
func findOrCreateGoogleUser(ctx context.Context, info GoogleUserInfo) (string, error) {
	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": info.Email}).Decode(&user)
	if err == nil {
		database.Users.UpdateOne(ctx, bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"lastSeen": time.Now().Unix()}})
		return user.ID.Hex(), nil
	}
	if err != mongo.ErrNoDocuments {
		return "", err
	}

	avatar := info.Picture
	if avatar == "" {
		avatar = fallbackAvatar
	}

	user = models.User{
		ID:           primitive.NewObjectID(),
		Email:        info.Email,
		AuthProvider: "google",
		Username:     "user_" + primitive.NewObjectID().Hex()[:8],
		Bio:          "",
		Avatar:       avatar,

		UnlockedAchievements: []string{},
		DisplayedBadges:      []string{},
		Following:            []string{},
		Followers:            []string{},

		CreatedAt: time.Now().Unix(),
		LastSeen:  time.Now().Unix(),
	}

	if _, err := database.Users.InsertOne(ctx, user); err != nil {
		return "", err
	}
	return user.ID.Hex(), nil
}
