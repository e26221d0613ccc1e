package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"echofeed/database"
	"echofeed/models"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PushSubscription stores one browser's web push endpoint for a user.
type PushSubscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	UserID string               `bson:"userId"`
	Sub    webpush.Subscription `bson:"sub"`
}

func GetVapidPublicKey(c *gin.Context) {
	if cfg.VAPIDPublicKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "VAPID public key not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"publicKey": cfg.VAPIDPublicKey})
}

func SubscribePush(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sub := PushSubscription{
		UserID: actorID(c),
		Sub: webpush.Subscription{
			Endpoint: req.Endpoint,
			Keys: webpush.Keys{
				P256dh: req.Keys.P256dh,
				Auth:   req.Keys.Auth,
			},
		},
	}

	// One subscription per endpoint; re-subscribing refreshes the keys
	opts := options.Replace().SetUpsert(true)
	_, err := database.PushSubs.ReplaceOne(ctx,
		bson.M{"userId": sub.UserID, "sub.endpoint": req.Endpoint}, sub, opts)
	if err != nil {
		logrus.WithError(err).Error("SubscribePush upsert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed to push notifications"})
}

// sendWebPush delivers a notification to all of the recipient's registered
// browsers. Failures are logged and dropped; push is never load-bearing.
func sendWebPush(ctx context.Context, n models.Notification) {
	if cfg == nil || cfg.VAPIDPrivateKey == "" || cfg.VAPIDPublicKey == "" {
		return
	}

	cursor, err := database.PushSubs.Find(ctx, bson.M{"userId": n.RecipientID})
	if err != nil {
		logrus.WithError(err).Warn("Failed to load push subscriptions")
		return
	}
	defer cursor.Close(ctx)

	var subs []PushSubscription
	if err := cursor.All(ctx, &subs); err != nil {
		return
	}

	payload, err := json.Marshal(gin.H{
		"type":      n.Type,
		"sender":    n.SenderUsername,
		"postTitle": n.PostTitle,
	})
	if err != nil {
		return
	}

	for _, s := range subs {
		sub := s.Sub
		go func() {
			resp, err := webpush.SendNotification(payload, &sub, &webpush.Options{
				Subscriber:      cfg.VAPIDSubject,
				VAPIDPublicKey:  cfg.VAPIDPublicKey,
				VAPIDPrivateKey: cfg.VAPIDPrivateKey,
				TTL:             60,
			})
			if err != nil {
				logrus.WithError(err).Debug("Web push delivery failed")
				return
			}
			resp.Body.Close()
		}()
	}
}
