package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restycailao/CAMSHOP-sub000/config"
)

// GetPayPalConfig hands the client the PayPal client id. Payment capture
// happens in the browser; the server only confirms the result.
func GetPayPalConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"clientId": config.GetEnv("PAYPAL_CLIENT_ID", "sb"),
	})
}
