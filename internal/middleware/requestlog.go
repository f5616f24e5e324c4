package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/recipe-backend/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

type RequestLogMiddleware struct {
	log *logger.Logger
}

func NewRequestLogMiddleware(baseLog *logger.Logger) *RequestLogMiddleware {
	return &RequestLogMiddleware{log: baseLog.With("middleware", "RequestLogMiddleware")}
}

// Handler tags every request with an id and logs method, path, status, and
// latency after the handler chain completes.
func (m *RequestLogMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		m.log.Info("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
