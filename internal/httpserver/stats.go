package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) statsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var processed int64
	redisConnected := false
	if srv.stats != nil {
		if n, err := srv.stats.ProcessedCount(ctx); err == nil {
			processed = n
		} else {
			srv.l.Warnf(ctx, "httpserver.stats.ProcessedCount: %v", err)
		}
		redisConnected = srv.stats.Ping(ctx) == nil
	}

	c.JSON(http.StatusOK, gin.H{
		"processed_messages": processed,
		"monitored_groups":   srv.monitoredGroups,
		"redis_connected":    redisConnected,
	})
}
