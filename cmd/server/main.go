package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/voltshop/backend/internal/application/catalog"
	financeapp "github.com/voltshop/backend/internal/application/finance"
	identityapp "github.com/voltshop/backend/internal/application/identity"
	partnerapp "github.com/voltshop/backend/internal/application/partner"
	tradeapp "github.com/voltshop/backend/internal/application/trade"
	warrantyapp "github.com/voltshop/backend/internal/application/warranty"
	"github.com/voltshop/backend/internal/domain/shared"
	"github.com/voltshop/backend/internal/infrastructure/auth"
	"github.com/voltshop/backend/internal/infrastructure/cache"
	"github.com/voltshop/backend/internal/infrastructure/config"
	"github.com/voltshop/backend/internal/infrastructure/logger"
	"github.com/voltshop/backend/internal/infrastructure/persistence"
	"github.com/voltshop/backend/internal/interfaces/http/handler"
	"github.com/voltshop/backend/internal/interfaces/http/middleware"
	"github.com/voltshop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// A Redis-backed idempotency store is shared across replicas; the
	// in-memory store covers single-instance deployments.
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Host != "" {
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		idempotencyStore = store
		log.Info("Using redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		log.Info("Using in-memory idempotency store")
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Failed to close idempotency store", zap.Error(err))
		}
	}()

	jwtService := auth.NewJWTService(cfg.JWT)
	scope := persistence.NewGormTransactionScope(db.DB)

	entityRepo := persistence.NewGormEntityRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	authService := identityapp.NewAuthService(userRepo, jwtService)
	entityService := partnerapp.NewEntityService(entityRepo)
	catalogService := catalogapp.NewCatalogService(scope)
	purchaseService := tradeapp.NewPurchaseService(scope)
	saleService := tradeapp.NewSaleService(scope)
	warrantyService := warrantyapp.NewWarrantyService(scope)
	ledgerService := financeapp.NewLedgerService(ledgerRepo, entityRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(middleware.DefaultCORSConfig()),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(middleware.JWTAuthMiddleware(jwtService)),
	)
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewEntityHandler(entityService))
	r.Register(handler.NewCatalogHandler(catalogService))
	r.Register(handler.NewPurchaseHandler(purchaseService))
	r.Register(handler.NewSaleHandler(saleService, idempotencyStore))
	r.Register(handler.NewWarrantyHandler(warrantyService))
	r.Register(handler.NewLedgerHandler(ledgerService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
