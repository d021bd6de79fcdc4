package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response. The render service has no
// external dependencies, so a live process is a healthy process.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
