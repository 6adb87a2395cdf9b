package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/ratelimit"
)

// RateLimit limits by client IP. A limiter backend failure lets the request through.
func RateLimit(l ratelimit.Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		ok, err := l.Allow(c.Request.Context(), ip)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			httperr.TooManyRequests(c, "rate_limited", "Too many requests. Try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
