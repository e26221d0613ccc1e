package handlers

import (
	"context"
	"net/http"
	"time"

	"echofeed/database"
	"echofeed/feed"
	"echofeed/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// notify persists a notification and fans it out over the live channels.
// Persistence failure is logged but never fails the mutation that caused the
// notification; websocket and web push delivery are best effort on top.
func notify(ctx context.Context, n models.Notification) {
	n.ID = primitive.NewObjectID()
	n.Read = false
	n.CreatedAt = time.Now().Unix()

	if _, err := database.Notifications.InsertOne(ctx, n); err != nil {
		logrus.WithError(err).Error("Failed to store notification")
		return
	}

	if wsManager != nil {
		wsManager.SendToUser(n.RecipientID, "notification", n)
	}
	sendWebPush(ctx, n)
}

func GetNotifications(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(feed.DefaultLimit)

	cursor, err := database.Notifications.Find(ctx, bson.M{"recipientId": actorID(c)}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode notifications"})
		return
	}

	res := feed.FromItems(notifications)
	c.JSON(http.StatusOK, gin.H{
		"status":        res.State.String(),
		"notifications": res.Items,
	})
}

func MarkNotificationRead(c *gin.Context) {
	notifID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Recipient-only
	result, err := database.Notifications.UpdateOne(ctx,
		bson.M{"_id": notifID, "recipientId": actorID(c)},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func MarkAllNotificationsRead(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := database.Notifications.UpdateMany(ctx,
		bson.M{"recipientId": actorID(c), "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
