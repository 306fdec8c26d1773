package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"environment": srv.environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (srv *HTTPServer) ready(c *gin.Context) {
	if srv.stats != nil {
		if err := srv.stats.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (srv *HTTPServer) live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
