package router

import (
	"net/http"

	"user-crud-service/api/swagger"
	"user-crud-service/internal/adapter/gin/handler"
	"user-crud-service/internal/adapter/gin/middleware"
	"user-crud-service/pkg/logger"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// Config holds the router settings that come from application configuration
type Config struct {
	APIKey      string
	SSLRedirect bool
	ServiceName string
}

// SetupRouter configures and returns a Gin router with all routes and middleware.
// rateLimiter may be nil.
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	cfg Config,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Secure(cfg.SSLRedirect))
	router.Use(rateLimiter.Handler())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.ServiceName,
		})
	})

	// API docs
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", swagger.Document)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
	)))

	users := router.Group("/users")
	users.Use(middleware.APIKey(cfg.APIKey, log))
	{
		users.GET("", userHandler.LookupUsers)
		users.POST("", userHandler.CreateUser)
		users.PATCH("/:id", userHandler.UpdateUser)
		users.PUT("/:id", userHandler.ReplaceUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return router
}
