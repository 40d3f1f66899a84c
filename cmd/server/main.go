package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"shopapi/internal/auth"
	"shopapi/internal/config"
	"shopapi/internal/db"
	"shopapi/internal/handler"
	"shopapi/internal/logging"
	"shopapi/internal/observability"
	"shopapi/internal/repository"
	"shopapi/internal/router"
	"shopapi/internal/service"
)

// @title Shop API
// @version 1.0
// @description Product catalogue and user administration with JWT authentication.
// @host localhost:4000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").Fatalf("config: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	log.WithField("driver", cfg.DBDriver).Info("Connected to database")

	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	jwtService, err := auth.NewJWTService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("jwt init: %v", err)
	}
	hasher := auth.NewPasswordHasher(auth.DefaultCost)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("database handle: %v", err)
	}
	if err := metrics.RegisterDB(sqlDB, cfg.DBDriver); err != nil {
		log.Fatalf("register db metrics: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService)
	productService := service.NewProductService(productRepo)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	router.Register(
		e,
		cfg,
		log,
		metrics,
		gormDB,
		jwtService,
		authHandler,
		productHandler,
		userHandler,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Infof("Server running on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("Closing database failed")
	}
	log.Info("Server stopped")
}
