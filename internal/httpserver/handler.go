package httpserver

import "github.com/gin-gonic/gin"

func (srv *HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.RequestID())
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.health)
	srv.gin.GET("/ready", srv.ready)
	srv.gin.GET("/live", srv.live)
	srv.gin.GET("/stats", srv.statsHandler)
}

func (srv *HTTPServer) registerDomainRoutes() {
	webhook := srv.gin.Group("/webhook")
	if srv.rateLimitPerMin > 0 {
		webhook.Use(srv.mw.RateLimit(srv.rateLimitPerMin))
	}
	webhook.POST("/telegram", srv.telegramHandler.HandleWebhook)
}
