package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"echofeed/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSearchTerm(t *testing.T) {
	term, ok := searchTerm("  golang  ")
	assert.True(t, ok)
	assert.Equal(t, "golang", term)

	_, ok = searchTerm("a")
	assert.False(t, ok)

	_, ok = searchTerm("   ")
	assert.False(t, ok)

	// Multi-byte characters count as characters, not bytes
	_, ok = searchTerm("日本")
	assert.True(t, ok)
}

func TestSearchRejectsShortQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/search?q=a", nil)

	Search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchClassifiesResults(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no posts, one user", func(mt *mtest.T) {
		database.Posts = mt.Coll
		database.Users = mt.Coll

		userID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "echofeed.posts", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "echofeed.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: userID},
				{Key: "username", Value: "maya"},
				{Key: "bio", Value: "hi there"},
				{Key: "avatar", Value: "https://example.com/a.png"},
			}),
		)

		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/search?q=maya", nil)

		Search(c)

		require.Equal(mt, http.StatusOK, w.Code)

		var resp struct {
			PostsStatus string `json:"postsStatus"`
			Posts       []any  `json:"posts"`
			UsersStatus string `json:"usersStatus"`
			Users       []struct {
				Username string `json:"username"`
			} `json:"users"`
		}
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(mt, "empty", resp.PostsStatus)
		assert.Empty(mt, resp.Posts)
		assert.Equal(mt, "populated", resp.UsersStatus)
		require.Len(mt, resp.Users, 1)
		assert.Equal(mt, "maya", resp.Users[0].Username)
	})
}
