package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jainnhimanshuu/savorini/internal/di"
	"github.com/jainnhimanshuu/savorini/pkg/config"
	"github.com/jainnhimanshuu/savorini/pkg/database"
	"github.com/jainnhimanshuu/savorini/pkg/logger"
	"github.com/jainnhimanshuu/savorini/pkg/middleware"
	pkgredis "github.com/jainnhimanshuu/savorini/pkg/redis"
	"github.com/jainnhimanshuu/savorini/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting deals API...")

	ctx := context.Background()

	// Initialize tracing
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Fatal(fmt.Sprintf("Telemetry init failed: %v", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info("Database connected")

	// Initialize Redis connection
	redisClient, err := pkgredis.NewClient(ctx, &pkgredis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: 100 * time.Millisecond,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Redis connection failed: %v", err))
	}
	defer redisClient.Close()
	appLog.Info("Redis connected")

	// Schedule evaluation runs in the venue market's local time zone
	location, err := time.LoadLocation(cfg.Discovery.Timezone)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Invalid timezone %q: %v", cfg.Discovery.Timezone, err))
	}

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		Config:   cfg,
		DB:       db,
		Redis:    redisClient,
		Location: location,
	})

	// Load the jurisdiction rule snapshot before serving traffic
	if err := container.RuleService.Load(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to load jurisdiction rules: %v", err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// API routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.JWT.Secret))
	{
		feed := v1.Group("/feed")
		{
			feed.GET("", container.FeedHandler.GetFeed)
			feed.GET("/spotlight", container.FeedHandler.GetSpotlight)
		}

		deals := v1.Group("/deals")
		{
			deals.GET("/:id", container.DealHandler.GetDeal)
			deals.POST("", middleware.RequireRole("vendor", "admin"), container.DealHandler.CreateDeal)
			deals.PUT("/:id", middleware.RequireRole("vendor", "admin"), container.DealHandler.UpdateDeal)
			deals.POST("/:id/redeem", container.DealHandler.RedeemDeal)
			deals.POST("/:id/feature", middleware.RequireRole("admin"), container.DealHandler.FeatureDeal)
			deals.DELETE("/:id/feature", middleware.RequireRole("admin"), container.DealHandler.UnfeatureDeal)
			deals.POST("/:id/verify", middleware.RequireRole("admin"), container.DealHandler.VerifyDeal)
		}

		venues := v1.Group("/venues")
		{
			venues.GET("/nearby", container.VenueHandler.NearbyVenues)
			venues.GET("/:id", container.VenueHandler.GetVenue)
			venues.POST("", middleware.RequireRole("vendor", "admin"), container.VenueHandler.CreateVenue)
			venues.POST("/:id/activate", middleware.RequireRole("admin"), container.VenueHandler.ActivateVenue)
			venues.POST("/:id/suspend", middleware.RequireRole("admin"), container.VenueHandler.SuspendVenue)
		}

		rules := v1.Group("/rules")
		{
			rules.GET("", container.RuleHandler.ListRules)
			rules.PUT("", middleware.RequireRole("admin"), container.RuleHandler.ReplaceRules)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Deals API listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
