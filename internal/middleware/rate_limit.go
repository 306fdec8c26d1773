package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	pkgResponse "memokeeper/pkg/response"
)

// RateLimit bounds an endpoint to perMin requests per minute with a burst of
// the same size. perMin <= 0 disables the limiter.
func (m Middleware) RateLimit(perMin int) gin.HandlerFunc {
	if perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := rate.NewLimiter(rate.Limit(perMin)/60, perMin)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			pkgResponse.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
