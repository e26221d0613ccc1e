package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"echofeed/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// A post can disappear between the fetch and the comment append. The append
// must then report not-found instead of claiming the comment was saved.
func TestAddCommentPostDeletedBetweenReadAndWrite(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted post", func(mt *mtest.T) {
		database.Users = mt.Coll
		database.Posts = mt.Coll

		authorID := primitive.NewObjectID()
		postID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "echofeed.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: authorID},
				{Key: "username", Value: "maya"},
				{Key: "avatar", Value: "https://example.com/a.png"},
			}),
			mtest.CreateCursorResponse(0, "echofeed.posts", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: postID},
				{Key: "userId", Value: primitive.NewObjectID().Hex()},
				{Key: "title", Value: "gone soon"},
			}),
			// $push matches nothing: the post was deleted in between
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
		)

		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost,
			"/api/posts/"+postID.Hex()+"/comments",
			strings.NewReader(`{"text":"still here?"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: postID.Hex()}}
		c.Set("userId", authorID.Hex())

		AddComment(c)

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "Post not found")
	})
}
