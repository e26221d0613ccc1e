package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"echofeed/database"
	"echofeed/feed"
	"echofeed/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const searchLimit = 10

// searchTerm trims the raw query and reports whether it is long enough to
// search on. Terms under two characters match too much to be useful.
func searchTerm(raw string) (string, bool) {
	term := strings.TrimSpace(raw)
	return term, utf8.RuneCountInString(term) >= 2
}

// Search finds posts by exact title and users by exact username.
func Search(c *gin.Context) {
	term, ok := searchTerm(c.Query("q"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search term must be at least 2 characters"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetLimit(searchLimit)

	postCursor, err := database.Posts.Find(ctx, bson.M{"title": term}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	defer postCursor.Close(ctx)

	var posts []models.Post
	if err := postCursor.All(ctx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	userCursor, err := database.Users.Find(ctx, bson.M{"username": term}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	defer userCursor.Close(ctx)

	var users []models.User
	if err := userCursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	postRes := feed.FromItems(posts)
	now := time.Now()
	postViews := make([]gin.H, len(postRes.Items))
	for i, p := range postRes.Items {
		postViews[i] = postView(p, now, false)
	}

	userRes := feed.FromItems(users)
	userViews := make([]gin.H, len(userRes.Items))
	for i, u := range userRes.Items {
		userViews[i] = gin.H{
			"id":         u.ID.Hex(),
			"username":   u.Username,
			"avatar":     u.Avatar,
			"bio":        u.Bio,
			"isVerified": u.IsVerified,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"postsStatus": postRes.State.String(),
		"posts":       postViews,
		"usersStatus": userRes.State.String(),
		"users":       userViews,
	})
}
