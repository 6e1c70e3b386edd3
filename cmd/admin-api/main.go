package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vanshwebstep/screeningstar-admin-api/api/swagger"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/handler"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/middleware"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/repository"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/router"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/cache"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/config"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/database"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/jobs"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/logger"
	corsmiddleware "github.com/vanshwebstep/screeningstar-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/vanshwebstep/screeningstar-admin-api/pkg/middleware/requestid"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/mailer"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/storage"
)

// @title Screening Star Admin API
// @version 1.0.0
// @description Backend API for the background verification admin portal
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	metrics := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.DefaultTTL, logr, cfg.Cache.Enabled && redisClient != nil)

	var mirror storage.Mirror
	if cfg.Uploads.FTPEnabled {
		mirror = storage.NewFTPMirror(cfg.Uploads.FTPHost, cfg.Uploads.FTPPort, cfg.Uploads.FTPUser, cfg.Uploads.FTPPassword, cfg.Uploads.FTPBaseDir)
	}
	uploads, err := storage.NewUploadStorage(cfg.Uploads.BaseDir, cfg.Uploads.MaxFileSize, mirror)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	mail := mailer.NewSMTP(cfg.Mail, cfg.App)

	adminRepo := repository.NewAdminRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	directoryRepo := repository.NewDirectoryRepository(db)
	billingRepo := repository.NewBillingContactRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	trackerRepo := repository.NewTrackerRepository(db)

	auditSvc := service.NewAuditService(auditRepo, metrics, logr, jobs.QueueConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
	})

	sessionSvc := service.NewSessionService(adminRepo, logr, service.SessionConfig{
		TokenLifetime: cfg.Session.TokenLifetime,
		SuperRole:     cfg.Session.SuperRole,
	})
	authSvc := service.NewAuthService(adminRepo, auditSvc, mail, validate, logr, service.AuthConfig{
		TokenLifetime: cfg.Session.TokenLifetime,
		OTPLifetime:   cfg.Session.OTPLifetime,
		ResetSecret:   cfg.Reset.Secret,
		ResetLifetime: cfg.Reset.Lifetime,
		PortalURL:     cfg.App.PortalURL,
	})
	adminSvc := service.NewAdminService(adminRepo, mail, validate, logr)
	customerSvc := service.NewCustomerService(customerRepo, validate, logr)
	catalogSvc := service.NewCatalogService(catalogRepo, validate, logr)
	directorySvc := service.NewDirectoryService(directoryRepo, cacheSvc, validate, logr, service.DirectoryCacheConfig{
		TTL: cfg.Cache.DefaultTTL,
	})
	billingSvc := service.NewBillingService(billingRepo, customerRepo, validate, logr)
	holidaySvc := service.NewHolidayService(holidayRepo, validate, logr)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, customerRepo, validate, logr)
	trackerSvc := service.NewTrackerService(trackerRepo, customerRepo, validate, logr)
	storageSvc := service.NewStorageService(uploads, logr, service.StorageConfig{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auditSvc.Start(ctx)
	defer auditSvc.Stop()

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				storageSvc.RunCleanup(ctx)
			}
		}
	}()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.Register(r, cfg.APIPrefix, router.Deps{
		Sessions:    sessionSvc,
		Audit:       auditSvc,
		Auth:        handler.NewAuthHandler(authSvc),
		Admins:      handler.NewAdminHandler(adminSvc),
		Customers:   handler.NewCustomerHandler(customerSvc),
		Catalog:     handler.NewCatalogHandler(catalogSvc),
		Billing:     billingSvc,
		Holidays:    handler.NewHolidayHandler(holidaySvc),
		Invoices:    handler.NewInvoiceHandler(invoiceSvc),
		Tracker:     handler.NewTrackerHandler(trackerSvc),
		Uploads:     handler.NewUploadHandler(uploads, signer, storageSvc),
		Directories: directorySvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
