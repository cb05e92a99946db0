package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sparklabs-au/ignite-api/api/swagger"
	"github.com/sparklabs-au/ignite-api/internal/handler"
	"github.com/sparklabs-au/ignite-api/internal/middleware"
	"github.com/sparklabs-au/ignite-api/internal/registry"
	"github.com/sparklabs-au/ignite-api/internal/repository"
	"github.com/sparklabs-au/ignite-api/internal/service"
	"github.com/sparklabs-au/ignite-api/internal/timezone"
	"github.com/sparklabs-au/ignite-api/pkg/cache"
	"github.com/sparklabs-au/ignite-api/pkg/config"
	"github.com/sparklabs-au/ignite-api/pkg/database"
	"github.com/sparklabs-au/ignite-api/pkg/logger"
	corsmiddleware "github.com/sparklabs-au/ignite-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sparklabs-au/ignite-api/pkg/middleware/requestid"
)

// @title Ignite API
// @version 1.0.0
// @description Recurring session calendar and availability API
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	loc, err := timezone.Load(cfg.Calendar.Timezone)
	if err != nil {
		logr.Sugar().Fatalw("failed to load business timezone", "timezone", cfg.Calendar.Timezone, "error", err)
	}

	sessions, err := registry.Load(cfg.Calendar.SessionsFile, cfg.Calendar.DefaultCapacity, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to load sessions", "file", cfg.Calendar.SessionsFile, "error", err)
	}
	logr.Sugar().Infow("sessions loaded", "count", sessions.Len(), "file", cfg.Calendar.SessionsFile)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	// Redis is optional: without it the calendar is computed per request.
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, continuing without cache", zap.Error(err))
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)

	subscriptionRepo := repository.NewSubscriptionRepository(db)
	rosterSvc := service.NewRosterService(subscriptionRepo, logr)
	calendarSvc := service.NewCalendarService(sessions, rosterSvc, cacheSvc, metricsSvc, service.CalendarOptions{
		Location:     loc,
		MaxRangeDays: cfg.Calendar.MaxRangeDays,
		CacheTTL:     cfg.Cache.TTL,
	}, logr)
	sessionSvc := service.NewSessionService(sessions)
	exportSvc := service.NewExportService(calendarSvc, loc, cfg.Export.CalendarName, logr)
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		JWTSecret:         cfg.Auth.JWTSecret,
		TokenExpiration:   cfg.Auth.TokenExpiration,
		Issuer:            cfg.Auth.Issuer,
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", readyHandler(db, redisClient))
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	exportHandler := handler.NewExportHandler(exportSvc, calendarSvc)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/calendar/events", middleware.OptionalJWT(authSvc), calendarHandler.List)
	if cfg.Export.Enabled {
		api.GET("/calendar/export", middleware.OptionalJWT(authSvc), exportHandler.Download)
	}
	api.GET("/sessions", sessionHandler.List)
	api.GET("/sessions/:id", sessionHandler.Get)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "timezone", loc.String())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func readyHandler(db *sqlx.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
