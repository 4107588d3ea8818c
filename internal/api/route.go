package api

import (
	"Lumina/internal/api/middleware"
	"Lumina/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		feedGroup := apiGroup.Group("/feed")
		{
			authGroup := feedGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("", group.FeedHandler.GetFeed)
				authGroup.POST("/view/:post_id", group.FeedHandler.MarkViewed)
			}
		}
	}

	return r
}
