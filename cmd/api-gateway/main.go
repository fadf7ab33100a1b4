package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/photographer-catalog-api/api/swagger"
	"github.com/noah-isme/photographer-catalog-api/internal/handler"
	internalmiddleware "github.com/noah-isme/photographer-catalog-api/internal/middleware"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	"github.com/noah-isme/photographer-catalog-api/internal/repository"
	"github.com/noah-isme/photographer-catalog-api/internal/service"
	"github.com/noah-isme/photographer-catalog-api/pkg/cache"
	"github.com/noah-isme/photographer-catalog-api/pkg/config"
	"github.com/noah-isme/photographer-catalog-api/pkg/database"
	"github.com/noah-isme/photographer-catalog-api/pkg/jobs"
	"github.com/noah-isme/photographer-catalog-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/photographer-catalog-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/photographer-catalog-api/pkg/middleware/requestid"
	"github.com/noah-isme/photographer-catalog-api/pkg/source"
)

// @title Photographer Catalog API
// @version 1.0.0
// @description Filter, sort and paginate a photographer directory; send booking inquiries.
// @BasePath /api/v1
// @schemes http

const shutdownTimeout = 15 * time.Second

type recordSource interface {
	List(ctx context.Context) ([]models.Photographer, error)
	Get(ctx context.Context, id int64) (*models.Photographer, error)
}

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	var cacheSvc *service.CacheService
	if cfg.Catalog.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.String("addr", cache.Addr(cfg.Redis)), zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(client, "photographer-catalog", logr)
			defer cacheRepo.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, true)
		}
	}

	var db *sqlx.DB
	if cfg.Source.Driver == config.SourcePostgres || cfg.Inquiry.Store == config.InquiryStorePostgres {
		conn, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := database.EnsureSchema(ctx, conn); err != nil {
			return err
		}
		db = conn
	}

	var src recordSource
	switch cfg.Source.Driver {
	case config.SourcePostgres:
		src = repository.NewPhotographerRepository(db)
	case config.SourceHTTP:
		src = source.NewClient(cfg.Source.BaseURL, cfg.Source.Timeout, logr)
	default:
		return fmt.Errorf("unsupported SOURCE_DRIVER %q", cfg.Source.Driver)
	}

	catalogSvc := service.NewCatalogService(src, cacheSvc, metrics, service.CatalogServiceConfig{
		SourceName:      cfg.Source.Driver,
		ItemsPerPage:    cfg.Catalog.ItemsPerPage,
		CacheTTL:        cfg.Catalog.CacheTTL,
		RefreshDebounce: cfg.Catalog.RefreshDebounce,
		RefreshTimeout:  cfg.Source.Timeout * 3,
	}, logr)
	defer catalogSvc.Stop()

	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.Source.Timeout*3)
	if err := catalogSvc.Load(loadCtx); err != nil {
		logr.Warn("initial catalog load failed, serving 503 until a refresh succeeds", zap.Error(err))
		catalogSvc.ScheduleRefresh("boot")
	}
	cancelLoad()

	var inquiryStore interface {
		Create(ctx context.Context, inquiry *models.Inquiry) error
		FindByID(ctx context.Context, id string) (*models.Inquiry, error)
		UpdateStatus(ctx context.Context, id string, status models.InquiryStatus, errMsg *string, sentAt *time.Time) error
	}
	if cfg.Inquiry.Store == config.InquiryStorePostgres {
		inquiryStore = repository.NewInquiryRepository(db)
	} else {
		inquiryStore = service.NewMemoryInquiryStore()
	}
	inquirySvc := service.NewInquiryService(inquiryStore, catalogSvc, validate, metrics,
		service.InquiryServiceConfig{DeliveryDelay: cfg.Inquiry.DeliveryDelay}, logr)
	queue := jobs.NewQueue("inquiries", inquirySvc.Deliver, jobs.QueueConfig{
		Workers:     cfg.Inquiry.Workers,
		MaxRetries:  cfg.Inquiry.MaxRetries,
		OnExhausted: inquirySvc.HandleExhausted,
		Logger:      logr,
	})
	inquirySvc.SetDispatcher(queue)
	queue.Start(ctx)
	defer queue.Stop()

	var sessionStore interface {
		Load(ctx context.Context, id string) (*models.BrowseSession, error)
		Save(ctx context.Context, session *models.BrowseSession) error
	}
	if cacheSvc.Enabled() {
		sessionStore = service.NewCacheSessionStore(cacheSvc, cfg.Sessions.TTL)
	} else {
		sessionStore = service.NewMemorySessionStore(cfg.Sessions.TTL)
	}
	sessionSvc := service.NewSessionService(catalogSvc, sessionStore, validate, metrics, logr)
	exportSvc := service.NewExportService(catalogSvc, nil, cfg.Export.Title, logr)

	scheduler := jobs.NewScheduler(0, logr)
	if cfg.Catalog.RefreshCron != "" {
		if err := scheduler.Add("catalog-refresh", cfg.Catalog.RefreshCron, func(context.Context) {
			catalogSvc.ScheduleRefresh("cron")
		}); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		scheduler.Stop(stopCtx)
	}()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(internalmiddleware.WithResponseMeta())

	handler.Routes{
		Photographers:  handler.NewPhotographerHandler(catalogSvc, exportSvc, validate),
		Inquiries:      handler.NewInquiryHandler(inquirySvc),
		Sessions:       handler.NewSessionHandler(sessionSvc),
		Catalog:        handler.NewCatalogHandler(catalogSvc),
		Ops:            handler.NewOpsHandler(metrics, catalogSvc),
		RequireCatalog: internalmiddleware.RequireCatalog(catalogSvc),
	}.Register(r, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("source", cfg.Source.Driver),
			zap.Bool("cache", cacheSvc.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
