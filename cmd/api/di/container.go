package di

import (
	"errors"
	"fmt"
	"io"

	"user-registration-service/cmd/api/infrastructure"
	"user-registration-service/internal/adapter/db/gormrepo"
	ginhandler "user-registration-service/internal/adapter/gin/handler"
	"user-registration-service/internal/adapter/gin/middleware"
	ginrouter "user-registration-service/internal/adapter/gin/router"
	"user-registration-service/internal/config"
	"user-registration-service/internal/usecase/user"
	"user-registration-service/pkg/logger"
	redisclient "user-registration-service/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	RedisClient   *redisclient.Client
	UserUC        user.Usecase
	RateLimiter   *middleware.RateLimiter
	UserHandler   *ginhandler.UserHandler
	SystemHandler *ginhandler.SystemHandler
	Router        *gin.Engine

	accessLog io.WriteCloser
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (_ *Container, err error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	// Initialize database
	c.DB, err = infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Initialize repository and use case
	repo := gormrepo.NewUserRepo(c.DB, l)
	c.UserUC = user.New(repo, l)

	// Initialize Gin handlers
	c.UserHandler = ginhandler.NewUserHandler(c.UserUC, l, cfg.HTTP.StrictErrorStatus)
	c.SystemHandler = ginhandler.NewSystemHandler(sqlDB, cfg.App.WelcomeMessage, cfg.Logger.ServiceName, l)

	var extra []gin.HandlerFunc

	if cfg.RateLimit.Enabled {
		c.RedisClient, err = infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}

		c.RateLimiter = middleware.NewRateLimiter(
			c.RedisClient.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
			},
			l,
		)
		extra = append(extra, c.RateLimiter.Handler())
	}

	if cfg.HTTP.AccessLogPath != "" {
		c.accessLog = logger.NewRotatingFile(cfg.HTTP.AccessLogPath)
		extra = append(extra, middleware.AccessLog(c.accessLog, l))
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	c.Router = ginrouter.SetupRouter(c.UserHandler, c.SystemHandler, l, extra...)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.accessLog != nil {
		if err := c.accessLog.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close access log: %w", err))
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
