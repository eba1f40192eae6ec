package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lxoreader/internal/admin/api"
)

// SetupRouter 配置 Gin 路由
func SetupRouter(h *api.Handler, allowOrigins []string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(logger))

	// 配置 CORS
	config := cors.DefaultConfig()
	if len(allowOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", api.RequestIDHeader}
	config.ExposeHeaders = []string{api.RequestIDHeader}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	// API v1 分组
	apiV1 := r.Group("/api/v1")
	{
		decode := apiV1.Group("/decode")
		{
			decode.POST("", h.Decode)        // POST /api/v1/decode
			decode.POST("/chunks", h.Chunks) // POST /api/v1/decode/chunks
			decode.POST("/points", h.Points) // POST /api/v1/decode/points?where=
		}
	}

	return r
}
