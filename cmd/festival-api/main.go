package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/helpston-festival/festival-api/api/swagger"
	"github.com/helpston-festival/festival-api/internal/handler"
	"github.com/helpston-festival/festival-api/internal/middleware"
	"github.com/helpston-festival/festival-api/internal/repository"
	"github.com/helpston-festival/festival-api/internal/service"
	"github.com/helpston-festival/festival-api/pkg/cache"
	"github.com/helpston-festival/festival-api/pkg/config"
	"github.com/helpston-festival/festival-api/pkg/database"
	"github.com/helpston-festival/festival-api/pkg/logger"
	corsmiddleware "github.com/helpston-festival/festival-api/pkg/middleware/cors"
	reqidmiddleware "github.com/helpston-festival/festival-api/pkg/middleware/requestid"
	"github.com/helpston-festival/festival-api/pkg/ratelimit"
)

// @title Helpston Beer Festival API
// @version 0.1.0
// @description Lead capture, content and admin API for the festival website
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	limiterOpts := ratelimit.Options{Max: cfg.RateLimit.Max, Window: cfg.RateLimit.Window}
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Backend == config.RateLimitBackendRedis {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		limiter = ratelimit.NewRedisLimiter(redisClient, limiterOpts)
	} else {
		limiter = ratelimit.NewMemoryLimiter(limiterOpts)
	}

	metricsSvc := service.NewMetricsService()

	var leadSvc *service.LeadService
	var exportSvc *service.LeadExportService
	switch cfg.Leads.Backend {
	case config.LeadsBackendFile:
		repo, err := repository.NewFileLeadRepository(cfg.Leads.Dir, logr)
		if err != nil {
			logr.Sugar().Fatalw("failed to open lead directory", "dir", cfg.Leads.Dir, "error", err)
		}
		leadSvc = service.NewLeadService(repo, limiter, logr, service.WithLeadMetrics(metricsSvc))
		exportSvc = service.NewLeadExportService(repo, cfg.Export.MaxRows, logr)
	default:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to database", "error", err)
		}
		defer db.Close() //nolint:errcheck
		repo := repository.NewLeadRepository(db)
		leadSvc = service.NewLeadService(repo, limiter, logr, service.WithLeadMetrics(metricsSvc))
		exportSvc = service.NewLeadExportService(repo, cfg.Export.MaxRows, logr)
	}

	contentRepo := repository.NewContentRepository(cfg.Content.Dir, logr)
	contentSvc := service.NewContentService(contentRepo, logr)
	if cfg.Content.Watch {
		if err := contentSvc.Watch(); err != nil {
			logr.Warn("content watcher unavailable", zap.Error(err))
		}
		defer contentSvc.Close() //nolint:errcheck
	}

	authSvc := service.NewAdminAuthService(cfg.Admin, logr)
	if !authSvc.Enabled() {
		logr.Warn("admin password not configured, admin routes disabled")
	}

	leadHandler := handler.NewLeadHandler(leadSvc)
	adminLeadHandler := handler.NewAdminLeadHandler(leadSvc, exportSvc)
	authHandler := handler.NewAuthHandler(authSvc, cfg.Admin.CookieSecure)
	contentHandler := handler.NewContentHandler(contentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)

	api.POST("/sponsorship/enquiries", leadHandler.Submit)

	content := api.Group("/content")
	{
		content.GET("/sponsors", contentHandler.Sponsors)
		content.GET("/sponsorship-packages", contentHandler.Packages)
		content.GET("/charities", contentHandler.Charities)
		content.GET("/impact-reports", contentHandler.ImpactReports)
		content.GET("/gallery", contentHandler.GalleryAlbums)
		content.GET("/gallery/:year", contentHandler.GalleryAlbum)
		content.GET("/site-settings", contentHandler.SiteSettings)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login", authHandler.Login)
		admin.POST("/logout", authHandler.Logout)
		admin.GET("/session", authHandler.Session)

		leads := admin.Group("/leads", middleware.AdminSession(authSvc))
		{
			leads.GET("", adminLeadHandler.List)
			leads.GET("/stats", adminLeadHandler.Stats)
			leads.GET("/export", adminLeadHandler.Export)
			leads.GET("/:id", adminLeadHandler.Get)
			leads.GET("/:id/history", adminLeadHandler.History)
			leads.PATCH("/:id/status", adminLeadHandler.UpdateStatus)
			leads.PUT("/:id/notes", adminLeadHandler.SetNotes)
			leads.POST("/:id/archive", adminLeadHandler.Archive)
			leads.POST("/:id/restore", adminLeadHandler.Restore)
		}
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"leadsBackend", cfg.Leads.Backend,
		"rateLimitBackend", cfg.RateLimit.Backend,
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
