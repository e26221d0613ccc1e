package handlers

import (
	"context"
	"net/http"
	"time"

	"echofeed/database"
	"echofeed/display"
	"echofeed/models"
	"echofeed/reaction"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fetchUser loads a user document by hex id without touching the response.
func fetchUser(ctx context.Context, idHex string) (models.User, error) {
	var user models.User
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return user, err
	}
	err = database.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, err
}

// loadUser is fetchUser plus the standard error responses.
func loadUser(ctx context.Context, c *gin.Context, idHex string) (models.User, bool) {
	user, err := fetchUser(ctx, idHex)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return user, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return user, false
	}
	return user, true
}

// unlockAchievement grants an achievement id to a user. $addToSet makes
// repeated grants harmless; failures are logged and swallowed because an
// achievement is never worth failing the triggering mutation for.
func unlockAchievement(ctx context.Context, userIDHex, achievementID string) {
	id, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return
	}
	_, err = database.Users.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"unlockedAchievements": achievementID}})
	if err != nil {
		logrus.WithError(err).WithField("achievement", achievementID).
			Warn("Failed to unlock achievement")
	}
}

func GetMyProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, ok := loadUser(ctx, c, actorID(c))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, profileView(user, true))
}

// GetUserByUsername is the public profile lookup.
func GetUserByUsername(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"username": c.Param("username")}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, profileView(user, false))
}

type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=30"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
	Avatar   *string `json:"avatar" binding:"omitempty,url"`
}

func UpdateMyProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(actorID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{}
	if req.Username != nil {
		// Usernames stay unique across the collection
		count, err := database.Users.CountDocuments(ctx, bson.M{
			"username": *req.Username,
			"_id":      bson.M{"$ne": userID},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		update["username"] = *req.Username
	}
	if req.Bio != nil {
		update["bio"] = *req.Bio
	}
	if req.Avatar != nil {
		update["avatar"] = *req.Avatar
	}

	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update}); err != nil {
		logrus.WithError(err).Error("UpdateMyProfile failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

type ToggleBadgeRequest struct {
	AchievementID string `json:"achievementId" binding:"required"`
}

// ToggleBadge flips one achievement in the caller's displayed badge list.
// The engine enforces the unlocked-only and max-5 rules; a rejected toggle
// leaves the stored list untouched.
func ToggleBadge(c *gin.Context) {
	var req ToggleBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, ok := loadUser(ctx, c, actorID(c))
	if !ok {
		return
	}

	next, err := reaction.ToggleDisplayedBadge(user.DisplayedBadges, req.AchievementID, user.UnlockedAchievements)
	switch err {
	case nil:
	case reaction.ErrNotUnlocked:
		c.JSON(http.StatusForbidden, gin.H{"error": "Achievement not unlocked"})
		return
	case reaction.ErrBadgeLimit:
		c.JSON(http.StatusBadRequest, gin.H{"error": "You can only display up to 5 badges."})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle badge"})
		return
	}

	// The badge list is single-writer (only the profile owner edits it), so a
	// whole-field $set is safe here, unlike the multi-actor reaction sets.
	_, err = database.Users.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"displayedBadges": next}})
	if err != nil {
		logrus.WithError(err).Error("ToggleBadge update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"displayedBadges": next})
}

// GetAchievements lists the static catalog with the caller's unlock state.
func GetAchievements(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, ok := loadUser(ctx, c, actorID(c))
	if !ok {
		return
	}

	entries := make([]gin.H, len(models.Achievements))
	for i, a := range models.Achievements {
		entries[i] = gin.H{
			"id":          a.ID,
			"title":       a.Title,
			"description": a.Description,
			"icon":        a.Icon,
			"unlocked":    reaction.Has(user.UnlockedAchievements, a.ID),
			"displayed":   reaction.Has(user.DisplayedBadges, a.ID),
		}
	}

	c.JSON(http.StatusOK, entries)
}

func profileView(user models.User, private bool) gin.H {
	view := gin.H{
		"id":              user.ID.Hex(),
		"username":        user.Username,
		"bio":             user.Bio,
		"avatar":          user.Avatar,
		"isVerified":      user.IsVerified,
		"followerCount":   display.CompactCount(len(user.Followers)),
		"followingCount":  display.CompactCount(len(user.Following)),
		"followers":       user.Followers,
		"following":       user.Following,
		"displayedBadges": display.ResolveDisplayedBadges(user.DisplayedBadges, models.Achievements),
	}
	if private {
		view["email"] = user.Email
		view["unlockedAchievements"] = user.UnlockedAchievements
	}
	return view
}
