package handlers

import (
	"net/http"

	"echofeed/ai"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type GenerateReplyRequest struct {
	Text string `json:"text" binding:"required"`
}

// GenerateReply feeds the echo canvas transcript through the hosted model
// and returns the generated text. No retries: upstream failures surface to
// the caller as-is.
func GenerateReply(c *gin.Context) {
	if replier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI generation is not configured"})
		return
	}

	var req GenerateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := replier.Generate(c.Request.Context(), req.Text)
	if err == ai.ErrEmptyInput {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt cannot be empty."})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("AI generation failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "An error occurred while communicating with the AI. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": out})
}

type TrendingSummaryRequest struct {
	Topics string `json:"topics" binding:"required"`
}

func SummarizeTrending(c *gin.Context) {
	if replier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI generation is not configured"})
		return
	}

	var req TrendingSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := replier.SummarizeTrending(c.Request.Context(), req.Topics)
	if err == ai.ErrEmptyInput {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topics cannot be empty."})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("Trending summary failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "An error occurred while communicating with the AI. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": out})
}
