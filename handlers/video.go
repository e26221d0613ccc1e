package handlers

import (
	"context"
	"net/http"
	"time"

	"echofeed/database"
	"echofeed/display"
	"echofeed/feed"
	"echofeed/models"
	"echofeed/reaction"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreateVideoRequest struct {
	VideoURL string `json:"videoUrl" binding:"required,url"`
	Caption  string `json:"caption" binding:"max=500"`
	Song     string `json:"song" binding:"max=200"`
}

func CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	author, ok := loadUser(ctx, c, actorID(c))
	if !ok {
		return
	}

	video := models.Video{
		ID:             primitive.NewObjectID(),
		UserID:         author.ID.Hex(),
		Username:       author.Username,
		UserProfileURL: author.Avatar,
		VideoURL:       req.VideoURL,
		Caption:        req.Caption,
		Song:           req.Song,
		Likes:          []string{},
		Comments:       []models.Comment{},
		Shares:         0,
		IsVerified:     author.IsVerified,
		CreatedAt:      time.Now().Unix(),
	}

	if _, err := database.Videos.InsertOne(ctx, video); err != nil {
		logrus.WithError(err).Error("CreateVideo insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create video"})
		return
	}

	if wsManager != nil {
		wsManager.Broadcast("new_video", gin.H{"videoId": video.ID.Hex()})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Video uploaded successfully",
		"videoId": video.ID.Hex(),
	})
}

func GetVideoFeed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(feed.DefaultLimit)

	cursor, err := database.Videos.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err := cursor.All(ctx, &videos); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode videos"})
		return
	}

	res := feed.FromItems(videos)
	now := time.Now()
	views := make([]gin.H, len(res.Items))
	for i, v := range res.Items {
		views[i] = videoView(v, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": res.State.String(),
		"videos": views,
	})
}

// LikeVideo flips the caller's like on a video via the reaction engine and
// persists it atomically.
func LikeVideo(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var video models.Video
	err = database.Videos.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch video"})
		return
	}

	next, patch := reaction.ToggleLike(video.Likes, actorID(c))

	update := bson.M{}
	if patch.Add != "" {
		update["$addToSet"] = bson.M{"likes": patch.Add}
	}
	if patch.Remove != "" {
		update["$pull"] = bson.M{"likes": patch.Remove}
	}
	if _, err := database.Videos.UpdateOne(ctx, bson.M{"_id": videoID}, update); err != nil {
		logrus.WithError(err).Error("LikeVideo update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":     patch.Add != "",
		"likes":     next,
		"likeCount": display.CompactCount(len(next)),
	})
}

// ShareVideo bumps the share counter. Plain $inc, no dedup: the counter is
// best effort and repeated shares by one user all count.
func ShareVideo(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.Videos.UpdateOne(ctx, bson.M{"_id": videoID},
		bson.M{"$inc": bson.M{"shares": 1}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record share"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share recorded"})
}

func AddVideoComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	author, ok := loadUser(ctx, c, actorID(c))
	if !ok {
		return
	}

	comment := models.Comment{
		ID:             uuid.NewString(),
		UserID:         author.ID.Hex(),
		Username:       author.Username,
		UserProfileURL: author.Avatar,
		Text:           req.Text,
		CreatedAt:      time.Now().Unix(),
	}

	result, err := database.Videos.UpdateOne(ctx, bson.M{"_id": videoID},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		logrus.WithError(err).Error("AddVideoComment update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	unlockAchievement(ctx, author.ID.Hex(), "first_comment")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added",
		"comment": comment,
	})
}

func GetVideoComments(c *gin.Context) {
	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var video models.Video
	err = database.Videos.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch video"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"commentCount": display.CompactCount(len(video.Comments)),
		"comments":     display.SortCommentsNewestFirst(video.Comments),
	})
}

func videoView(v models.Video, now time.Time) gin.H {
	return gin.H{
		"id":             v.ID.Hex(),
		"userId":         v.UserID,
		"username":       v.Username,
		"userProfileUrl": v.UserProfileURL,
		"videoUrl":       v.VideoURL,
		"caption":        v.Caption,
		"song":           v.Song,
		"likes":          v.Likes,
		"likeCount":      display.CompactCount(len(v.Likes)),
		"commentCount":   display.CompactCount(len(v.Comments)),
		"shareCount":     display.CompactCount(int(v.Shares)),
		"timeAgo":        display.RelativeTime(time.Unix(v.CreatedAt, 0), now),
		"createdAt":      v.CreatedAt,
		"isVerified":     v.IsVerified,
	}
}
