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

	"github.com/labstack/echo/v4"
	"github.com/mwangi/kodisha/internal/pkg/config"
	"github.com/mwangi/kodisha/internal/pkg/database"
	"github.com/mwangi/kodisha/internal/pkg/health"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/middleware"
	"github.com/mwangi/kodisha/internal/pkg/nats"
	nrpkg "github.com/mwangi/kodisha/internal/pkg/newrelic"
	occupancyHandler "github.com/mwangi/kodisha/services/occupancy/handler"
	occupancyRepository "github.com/mwangi/kodisha/services/occupancy/repository"
	"github.com/mwangi/kodisha/services/occupancy/scheduler"
	occupancyUsecase "github.com/mwangi/kodisha/services/occupancy/usecase"
	"github.com/mwangi/kodisha/services/payments"
	paymentHandler "github.com/mwangi/kodisha/services/payments/handler"
	"github.com/mwangi/kodisha/services/payments/provider"
	paymentRepository "github.com/mwangi/kodisha/services/payments/repository"
	paymentUsecase "github.com/mwangi/kodisha/services/payments/usecase"
	"github.com/mwangi/kodisha/services/reservations/gateway"
	reservationHandler "github.com/mwangi/kodisha/services/reservations/handler"
	reservationRepository "github.com/mwangi/kodisha/services/reservations/repository"
	reservationUsecase "github.com/mwangi/kodisha/services/reservations/usecase"
)

func main() {
	appName := "lifecycle-engine"
	configPath := "config/engine.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	// Set global logger for application-wide access
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	if !natsClient.IsConnected() {
		zapLogger.Fatal("NATS client not connected")
	}

	// Initialize repositories
	db := postgresClient.GetDB()
	reservationRepo := reservationRepository.NewReservationRepository(configs, db)
	paymentRepo := paymentRepository.NewPaymentRepository(configs, db)
	occupancyRepo := occupancyRepository.NewOccupancyRepository(configs, db)

	// Initialize gateway
	reservationGW := gateway.NewReservationGW(configs, natsClient)

	// Initialize payment provider adapters
	registry := payments.NewRegistry(
		provider.NewFlutterwave(configs.Providers.Flutterwave, zapLogger),
		provider.NewMpesa(configs.Providers.Mpesa, configs.App.BaseURL, zapLogger),
		provider.NewAirtel(configs.Providers.Airtel, zapLogger),
	)

	// Initialize usecases
	reservationUC := reservationUsecase.NewReservationUC(configs, reservationRepo, reservationGW)
	paymentUC := paymentUsecase.NewPaymentUC(configs, paymentRepo, redisClient, registry, reservationUC)
	occupancyUC := occupancyUsecase.NewOccupancyUC(configs, occupancyRepo, reservationGW)

	// Initialize handlers
	resHandler := reservationHandler.NewHandler(reservationUC, configs)
	payHandler := paymentHandler.NewHandler(paymentUC, configs)
	occHandler := occupancyHandler.NewHandler(occupancyUC)

	// Initialize Echo server
	e := echo.New()

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Initialize API key middleware for internal routes
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(&configs.APIKey)

	// Initialize health service
	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	resHandler.RegisterRoutes(e)
	payHandler.RegisterRoutes(e, apiKeyMiddleware)
	occHandler.RegisterRoutes(e, apiKeyMiddleware)

	// Start the occupancy sweep scheduler
	sweepScheduler := scheduler.NewScheduler(configs, occupancyUC, paymentUC)
	if err := sweepScheduler.Start(); err != nil {
		zapLogger.Fatal("Failed to start sweep scheduler", logger.Err(err))
	}

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%d", configs.Server.Port)
		zapLogger.Info("Starting HTTP server",
			logger.String("address", addr),
			logger.String("app", appName))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	zapLogger.Info("Received shutdown signal", logger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server first so no new work arrives
	zapLogger.Info("Shutting down HTTP server...")
	if err := e.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	// Let any in-flight sweep finish
	zapLogger.Info("Stopping sweep scheduler...")
	select {
	case <-sweepScheduler.Stop().Done():
	case <-ctx.Done():
		zapLogger.Error("Sweep scheduler did not stop in time")
	}

	zapLogger.Info("Closing PostgreSQL connection...")
	postgresClient.Close()

	zapLogger.Info("Closing Redis connection...")
	if err := redisClient.Close(); err != nil {
		zapLogger.Error("Error closing Redis connection", logger.Err(err))
	}

	zapLogger.Info("Closing NATS connection...")
	natsClient.Close()

	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
