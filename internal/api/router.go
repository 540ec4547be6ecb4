package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/triprec/trips-backend-go/internal/config"
	"github.com/triprec/trips-backend-go/internal/handler"
	"github.com/triprec/trips-backend-go/internal/middleware"
	"github.com/triprec/trips-backend-go/internal/trip"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, engine *trip.Engine) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Trip Recorder API is running",
		})
	})

	sessionHandler := handler.NewSessionHandler(engine)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(600, time.Minute))
	{
		sessions := api.Group("/sessions")
		{
			sessions.GET("/:id", sessionHandler.GetSession)

			authed := sessions.Group("")
			authed.Use(middleware.Auth(cfg.JWTSecret))
			{
				authed.POST("", sessionHandler.StartSession)
				authed.POST("/:id/fixes", sessionHandler.IngestFixes)
				authed.POST("/:id/stop", sessionHandler.StopSession)
			}
		}
	}

	return r
}
