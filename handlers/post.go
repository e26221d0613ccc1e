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

type CreatePostRequest struct {
	Title     string                `json:"title" binding:"required,max=200"`
	Content   string                `json:"content" binding:"required"`
	Tags      []string              `json:"tags"`
	ImageURL  string                `json:"imageUrl"`
	Donations *models.PostDonations `json:"donations"`
}

func CreatePost(c *gin.Context) {
	var req CreatePostRequest
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

	post := models.Post{
		ID:             primitive.NewObjectID(),
		UserID:         author.ID.Hex(),
		Username:       author.Username,
		UserProfileURL: author.Avatar,
		Title:          req.Title,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
		Tags:           req.Tags,
		Upvotes:        []string{},
		Downvotes:      []string{},
		Comments:       []models.Comment{},
		IsVerified:     author.IsVerified,
		Donations:      req.Donations,
		CreatedAt:      time.Now().Unix(),
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if _, err := database.Posts.InsertOne(ctx, post); err != nil {
		logrus.WithError(err).Error("CreatePost insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	unlockAchievement(ctx, author.ID.Hex(), "first_post")
	if n, err := database.Posts.CountDocuments(ctx, bson.M{"userId": author.ID.Hex()}); err == nil && n > 10 {
		unlockAchievement(ctx, author.ID.Hex(), "power_user")
	}

	if wsManager != nil {
		wsManager.Broadcast("new_post", gin.H{"postId": post.ID.Hex()})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"postId":  post.ID.Hex(),
	})
}

func GetFeed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(feed.DefaultLimit)

	cursor, err := database.Posts.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	res := feed.FromItems(posts)
	now := time.Now()
	views := make([]gin.H, len(res.Items))
	for i, p := range res.Items {
		views[i] = postView(p, now, false)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": res.State.String(),
		"posts":  views,
	})
}

func GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, postView(post, time.Now(), true))
}

func GetUserPosts(c *gin.Context) {
	username := c.Param("username")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(feed.DefaultLimit)

	cursor, err := database.Posts.Find(ctx, bson.M{"userId": user.ID.Hex()}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	res := feed.FromItems(posts)
	now := time.Now()
	views := make([]gin.H, len(res.Items))
	for i, p := range res.Items {
		views[i] = postView(p, now, false)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": res.State.String(),
		"posts":  views,
	})
}

func DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Author-only delete
	result, err := database.Posts.DeleteOne(ctx, bson.M{"_id": postID, "userId": actorID(c)})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

func AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	author, ok := loadUser(ctx, c, actorID(c))
	if !ok {
		return
	}

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
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

	// Append-only: $push keeps insertion order and never clobbers concurrent comments
	result, err := database.Posts.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		logrus.WithError(err).Error("AddComment update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}
	if result.MatchedCount == 0 {
		// Post deleted between the fetch above and the update.
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	unlockAchievement(ctx, author.ID.Hex(), "first_comment")

	if post.UserID != author.ID.Hex() {
		notify(ctx, models.Notification{
			RecipientID:      post.UserID,
			SenderID:         author.ID.Hex(),
			SenderUsername:   author.Username,
			SenderProfileURL: author.Avatar,
			Type:             models.NotificationComment,
			PostID:           post.ID.Hex(),
			PostTitle:        post.Title,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added",
		"comment": comment,
	})
}

func UpvotePost(c *gin.Context) {
	votePost(c, true)
}

func DownvotePost(c *gin.Context) {
	votePost(c, false)
}

// votePost reads the post's current vote sets, computes the toggle with the
// reaction engine, and persists the patch with atomic $addToSet/$pull so two
// concurrent voters can never overwrite each other's change.
func votePost(c *gin.Context, up bool) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	actor := actorID(c)
	state := reaction.VoteState{Upvotes: post.Upvotes, Downvotes: post.Downvotes}

	var next reaction.VoteState
	var patch reaction.VotePatch
	if up {
		next, patch = reaction.ToggleUpvote(state, actor)
	} else {
		next, patch = reaction.ToggleDownvote(state, actor)
	}

	if update := votePatchUpdate(patch); len(update) > 0 {
		if _, err := database.Posts.UpdateOne(ctx, bson.M{"_id": postID}, update); err != nil {
			logrus.WithError(err).Error("votePost update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save vote"})
			return
		}
	}

	if patch.AddUpvote != "" && post.UserID != actor {
		if len(post.Upvotes) == 0 {
			unlockAchievement(ctx, post.UserID, "first_upvote")
		}
		if len(next.Upvotes) > 25 {
			unlockAchievement(ctx, post.UserID, "popular_post")
		}
		if len(next.Upvotes) > 100 {
			unlockAchievement(ctx, post.UserID, "story_teller")
		}

		if sender, err := fetchUser(ctx, actor); err == nil {
			notify(ctx, models.Notification{
				RecipientID:      post.UserID,
				SenderID:         actor,
				SenderUsername:   sender.Username,
				SenderProfileURL: sender.Avatar,
				Type:             models.NotificationUpvote,
				PostID:           post.ID.Hex(),
				PostTitle:        post.Title,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"upvotes":   next.Upvotes,
		"downvotes": next.Downvotes,
		"score":     reaction.Score(next.Upvotes, next.Downvotes),
	})
}

// votePatchUpdate maps an engine patch onto Mongo's atomic set operators.
func votePatchUpdate(p reaction.VotePatch) bson.M {
	addToSet := bson.M{}
	pull := bson.M{}
	if p.AddUpvote != "" {
		addToSet["upvotes"] = p.AddUpvote
	}
	if p.RemoveUpvote != "" {
		pull["upvotes"] = p.RemoveUpvote
	}
	if p.AddDownvote != "" {
		addToSet["downvotes"] = p.AddDownvote
	}
	if p.RemoveDownvote != "" {
		pull["downvotes"] = p.RemoveDownvote
	}

	update := bson.M{}
	if len(addToSet) > 0 {
		update["$addToSet"] = addToSet
	}
	if len(pull) > 0 {
		update["$pull"] = pull
	}
	return update
}

// postView shapes a post for the client. Thread views carry the comments
// sorted newest first; feed views only carry the count.
func postView(p models.Post, now time.Time, withComments bool) gin.H {
	view := gin.H{
		"id":             p.ID.Hex(),
		"userId":         p.UserID,
		"username":       p.Username,
		"userProfileUrl": p.UserProfileURL,
		"title":          p.Title,
		"content":        p.Content,
		"imageUrl":       p.ImageURL,
		"tags":           p.Tags,
		"upvotes":        p.Upvotes,
		"downvotes":      p.Downvotes,
		"score":          reaction.Score(p.Upvotes, p.Downvotes),
		"commentCount":   display.CompactCount(len(p.Comments)),
		"timeAgo":        display.RelativeTime(time.Unix(p.CreatedAt, 0), now),
		"createdAt":      p.CreatedAt,
		"isVerified":     p.IsVerified,
	}
	if p.Donations != nil {
		view["donations"] = p.Donations
	}
	if withComments {
		view["comments"] = display.SortCommentsNewestFirst(p.Comments)
	}
	return view
}
