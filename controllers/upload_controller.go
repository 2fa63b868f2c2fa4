package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"github.com/restycailao/CAMSHOP-sub000/config"
)

// UploadImage pushes a product image to Cloudinary and returns the hosted
// URL. The catalog only ever stores URLs, never file bytes.
func UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	defer file.Close()

	cldURL := config.GetEnv("CLOUDINARY_URL", "")
	if cldURL == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image hosting is not configured"})
		return
	}

	cld, err := cloudinary.NewFromURL(cldURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image hosting is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   config.GetEnv("CLOUDINARY_FOLDER", "camshop"),
		PublicID: header.Filename,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded",
		"url":     result.SecureURL,
	})
}
