package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/resinfo/internal/domain/status"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

// SlowRequest is the latency above which a successful request is logged at
// info level instead of debug.
const SlowRequest = 2 * time.Second

// CustomLogger logs one line per request, tagged with the topics it
// selected.
func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		code := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", code,
			"latency", latency,
			"client_ip", c.ClientIP(),
			"request_id", GetRequestID(c),
		}
		if topics := status.NewQuery(c.Request.URL.Query()).Selected(); len(topics) > 0 {
			fields = append(fields, "topics", topics)
		}

		switch {
		case code >= 500:
			log.Errorw("request failed", fields...)
		case code >= 400:
			log.Warnw("request rejected", fields...)
		case latency > SlowRequest:
			log.Infow("slow request", fields...)
		default:
			log.Debugw("request served", fields...)
		}
	}
}
