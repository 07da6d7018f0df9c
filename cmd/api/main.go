package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/arfandy-is/calendar-api/api/swagger"
	"github.com/arfandy-is/calendar-api/internal/handler"
	"github.com/arfandy-is/calendar-api/internal/middleware"
	"github.com/arfandy-is/calendar-api/internal/repository"
	"github.com/arfandy-is/calendar-api/internal/service"
	"github.com/arfandy-is/calendar-api/pkg/cache"
	"github.com/arfandy-is/calendar-api/pkg/config"
	"github.com/arfandy-is/calendar-api/pkg/database"
	"github.com/arfandy-is/calendar-api/pkg/logger"
	corsmiddleware "github.com/arfandy-is/calendar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/arfandy-is/calendar-api/pkg/middleware/requestid"
)

// @title Calendar API
// @version 1.0.0
// @description Personal event calendar: open reads, API-key-gated writes.
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to migrate schema", "error", err)
	}

	var listCache *repository.CacheRepository
	cacheTTL := cfg.Cache.TTL
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, list cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			listCache = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()
	eventRepo := repository.NewEventRepository(db)
	eventSvc := service.NewEventService(eventRepo, validate, logr)
	ingestSvc := service.NewIngestService(eventRepo, cfg.Ingest, logr)
	metricsSvc := service.NewMetricsService()

	var cacheForHandler handler.ListCache
	if listCache != nil {
		cacheForHandler = listCache
	}
	eventHandler := handler.NewEventHandler(eventSvc, ingestSvc, cacheForHandler, cacheTTL, metricsSvc, logr)
	calendarHandler := handler.NewCalendarHandler(eventSvc)
	exportHandler := handler.NewExportHandler(eventSvc)

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

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	r.GET("/events", eventHandler.List)
	r.GET("/calendar", calendarHandler.DayIndex)
	r.GET("/calendar.ics", exportHandler.Feed)
	if cfg.Export.Enabled {
		r.GET("/events/export", exportHandler.Export)
	}

	admin := r.Group("/", middleware.APIKey(cfg.APIKey))
	admin.POST("/events", eventHandler.Create)
	admin.PUT("/events/:id", eventHandler.Update)
	admin.DELETE("/events/:id", eventHandler.Delete)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
