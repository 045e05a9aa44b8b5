package server

import (
	"net/http"
	"time"

	ginhandler "user-crud-service/internal/adapter/gin/handler"
	"user-crud-service/internal/adapter/gin/middleware"
	ginrouter "user-crud-service/internal/adapter/gin/router"
	"user-crud-service/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	cfg *config.Config,
	handler *ginhandler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	l *zap.Logger,
) *http.Server {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(handler, rateLimiter, ginrouter.Config{
		APIKey:      cfg.Auth.APIKey,
		SSLRedirect: cfg.App.IsProduction(),
		ServiceName: cfg.Logger.ServiceName,
	}, l)

	addr := ":" + cfg.App.HTTPPort
	l.Info("Gin REST API configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
