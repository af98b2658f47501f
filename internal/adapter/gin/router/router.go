package router

import (
	"net/http"

	"user-registration-service/internal/adapter/gin/docs"
	"user-registration-service/internal/adapter/gin/handler"
	"user-registration-service/internal/adapter/gin/middleware"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware.
// extra middleware (rate limiting, access log) runs after request id and logging.
func SetupRouter(
	userHandler *handler.UserHandler,
	systemHandler *handler.SystemHandler,
	log *zap.Logger,
	extra ...gin.HandlerFunc,
) *gin.Engine {
	router := gin.New()
	// Unmatched paths get the JSON 404, never a redirect
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(extra...)

	router.GET("/", systemHandler.Welcome)
	router.GET("/health", systemHandler.Health)

	// API docs
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docs.Spec)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))

	api := router.Group("/api")
	{
		api.POST("", userHandler.Register)
		api.POST("/", userHandler.Register)
		api.GET("", userHandler.List)
		api.GET("/", userHandler.List)
	}

	router.NoRoute(handler.NotFound)

	return router
}
