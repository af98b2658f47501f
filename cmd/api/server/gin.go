package server

import (
	"net/http"
	"time"

	"user-registration-service/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// SetupGinServer wraps the Gin router with CORS and returns the HTTP server for it
func SetupGinServer(router *gin.Engine, cfg *config.Config, l *zap.Logger) *http.Server {
	addr := cfg.App.Addr()

	l.Info("Gin REST API configured",
		zap.String("address", addr),
		zap.Strings("cors_allowed_origins", cfg.HTTP.CORSAllowedOrigins),
	)

	return &http.Server{
		Addr:              addr,
		Handler:           withCORS(router, cfg.HTTP.CORSAllowedOrigins),
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func withCORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}
