package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/shared/constants"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// CustomLogger writes one access log line per request. Health checks are
// logged at debug so they do not drown the ticket traffic.
func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if id := c.GetString(constants.ContextKeyRequestID); id != "" {
			fields = append(fields, "request_id", id)
		}
		if uid := c.GetUint(constants.ContextKeyUserID); uid != 0 {
			fields = append(fields, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		case strings.HasSuffix(c.FullPath(), "/health"):
			log.Debugw("request served", fields...)
		default:
			log.Infow("request served", fields...)
		}
	}
}
