package handlers

import (
	"context"
	"net/http"
	"time"

	"echofeed/database"
	"echofeed/models"
	"echofeed/reaction"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToggleFollow follows or unfollows the target user. The engine produces two
// independent set patches; each is applied as its own atomic $addToSet/$pull
// write. The pair is not transactional: a crash between the writes can leave
// the relationship half-applied, and re-toggling repairs it.
func ToggleFollow(c *gin.Context) {
	targetIDHex := c.Param("id")
	targetID, err := primitive.ObjectIDFromHex(targetIDHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	actor := actorID(c)
	if actor == targetIDHex {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	me, ok := loadUser(ctx, c, actor)
	if !ok {
		return
	}

	count, err := database.Users.CountDocuments(ctx, bson.M{"_id": targetID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	isFollowing := reaction.Has(me.Following, targetIDHex)
	patch := reaction.ToggleFollow(actor, targetIDHex, isFollowing)

	if err := applySetPatch(ctx, me.ID, "following", patch.Following); err != nil {
		logrus.WithError(err).Error("ToggleFollow: following update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow state"})
		return
	}
	if err := applySetPatch(ctx, targetID, "followers", patch.Followers); err != nil {
		logrus.WithError(err).Error("ToggleFollow: followers update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow state"})
		return
	}

	if !isFollowing {
		notify(ctx, models.Notification{
			RecipientID:      targetIDHex,
			SenderID:         actor,
			SenderUsername:   me.Username,
			SenderProfileURL: me.Avatar,
			Type:             models.NotificationFollow,
		})
	}

	c.JSON(http.StatusOK, gin.H{"following": !isFollowing})
}

func applySetPatch(ctx context.Context, userID primitive.ObjectID, field string, p reaction.SetPatch) error {
	update := bson.M{}
	if p.Add != "" {
		update["$addToSet"] = bson.M{field: p.Add}
	}
	if p.Remove != "" {
		update["$pull"] = bson.M{field: p.Remove}
	}
	if len(update) == 0 {
		return nil
	}
	_, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}
