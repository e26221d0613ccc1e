package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UploadMedia pushes an image or video blob to Cloudinary and returns its
// public URL. Blobs are keyed under the uploading user's id with a timestamp
// so repeated uploads of the same filename never collide.
func UploadMedia(c *gin.Context) {
	if cfg.CloudinaryURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		logrus.WithError(err).Error("Cloudinary init failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload service unavailable"})
		return
	}

	name := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	publicID := fmt.Sprintf("%s/%d_%s", actorID(c), time.Now().Unix(), name)

	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "auto",
	})
	if err != nil {
		logrus.WithError(err).Error("Cloudinary upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":      result.SecureURL,
		"publicId": result.PublicID,
	})
}
