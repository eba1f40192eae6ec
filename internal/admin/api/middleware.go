package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lxoreader/internal/pkg"
)

const (
	// RequestIDHeader 请求 id 的响应头，客户端带上时沿用
	RequestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// RequestLogger 为每个请求分配 id，并把带 id 的 logger 放入请求的 context
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		reqLogger := logger.With(zap.String(requestIDKey, id))
		c.Request = c.Request.WithContext(pkg.WithLogger(c.Request.Context(), reqLogger))

		start := time.Now()
		c.Next()
		reqLogger.Info("请求完成",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
