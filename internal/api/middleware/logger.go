package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/timmy/photorama/internal/logger"
)

const (
	headerRequestID = "X-Request-ID"
	ginLoggerKey    = "logger"
)

// LoggerMiddleware injects a request-scoped logger carrying a request id.
// An incoming X-Request-ID header is reused when present.
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetDefault()
	}
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := log.WithContext(c.Request.Context())
		ctx = logger.SetComponent(logger.SetRequestID(ctx, requestID), "api")
		c.Request = c.Request.WithContext(ctx)
		c.Set(ginLoggerKey, logger.FromContext(ctx))
		c.Header(headerRequestID, requestID)

		c.Next()

		logger.With(logger.Fields{
			logger.FieldStatus:     c.Writer.Status(),
			logger.FieldDurationMs: time.Since(start).Milliseconds(),
			logger.FieldSize:       c.Writer.Size(),
			"client_ip":            c.ClientIP(),
		}).Info(ctx, "Request completed: method=%s, path=%s", c.Request.Method, c.Request.URL.Path)
	}
}

// GetLogger returns the request-scoped logger.
func GetLogger(c *gin.Context) *logger.Logger {
	if l, exists := c.Get(ginLoggerKey); exists {
		if log, ok := l.(*logger.Logger); ok {
			return log
		}
	}
	return logger.FromContext(c.Request.Context())
}
