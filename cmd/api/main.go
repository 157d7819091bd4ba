package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/alexkm13/scarlet-planner/api/swagger"
	"github.com/alexkm13/scarlet-planner/internal/handler"
	"github.com/alexkm13/scarlet-planner/internal/middleware"
	"github.com/alexkm13/scarlet-planner/internal/repository"
	"github.com/alexkm13/scarlet-planner/internal/service"
	"github.com/alexkm13/scarlet-planner/pkg/cache"
	"github.com/alexkm13/scarlet-planner/pkg/config"
	"github.com/alexkm13/scarlet-planner/pkg/database"
	"github.com/alexkm13/scarlet-planner/pkg/logger"
	corsmiddleware "github.com/alexkm13/scarlet-planner/pkg/middleware/cors"
	reqidmiddleware "github.com/alexkm13/scarlet-planner/pkg/middleware/requestid"
)

// @title Scarlet Planner API
// @version 1.0.0
// @description Course catalog search and weekly schedule planning
// @BasePath /api/v1
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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, catalog caching disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()
	metricsService := service.NewMetricsService()

	courseRepo := repository.NewCourseRepository(db)
	planRepo := repository.NewPlanRepository(db)
	userRepo := repository.NewUserRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Catalog.CacheTTL, logr, cfg.Catalog.CacheEnabled)
	courseService := service.NewCourseService(courseRepo, cacheService, cfg.Catalog.CacheTTL, logr)
	plannerService := service.NewPlannerService(planRepo, courseRepo, metricsService, logr)
	ratingService := service.NewRatingService(ratingRepo, cfg.Ratings.CacheTTL, logr)
	exportService := service.NewExportService(plannerService, cfg.Export, logr)
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "scarlet-planner",
	})

	courseHandler := handler.NewCourseHandler(courseService)
	planHandler := handler.NewPlanHandler(plannerService)
	exportHandler := handler.NewExportHandler(exportService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	authHandler := handler.NewAuthHandler(authService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.JWT(authService), authHandler.Me)
		}

		courses := api.Group("/courses")
		{
			courses.GET("", courseHandler.Search)
			courses.GET("/subjects", courseHandler.Subjects)
			courses.GET("/terms", courseHandler.Terms)
			courses.GET("/hub-units", courseHandler.HubUnits)
			courses.GET("/:id", courseHandler.Get)
		}

		api.GET("/ratings/:name", ratingHandler.Get)
		api.POST("/ratings/batch", ratingHandler.Batch)
		api.POST("/schedule/validate", planHandler.Validate)

		plans := api.Group("/plans", middleware.JWT(authService))
		{
			plans.GET("", planHandler.List)
			plans.POST("", planHandler.Create)
			plans.GET("/:id", planHandler.Get)
			plans.DELETE("/:id", planHandler.Delete)
			plans.POST("/:id/courses", planHandler.AddCourse)
			plans.PUT("/:id/courses", planHandler.ReplaceCourses)
			plans.DELETE("/:id/courses", planHandler.Clear)
			plans.DELETE("/:id/courses/:courseId", planHandler.RemoveCourse)
			plans.GET("/:id/export/:format", exportHandler.Export)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
