package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ph46m/ttknew/pkg/logger"
)

// RequestLogger emits one structured line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": GetRequestID(c),
		}
		if user := AuthUser(c); user != "" {
			fields["user"] = user
		}

		log.WithFields(fields).Info("Request handled")
	}
}
