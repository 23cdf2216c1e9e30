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

	"github.com/dkurush/fleetops/internal/pkg/clock"
	"github.com/dkurush/fleetops/internal/pkg/config"
	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/database"
	"github.com/dkurush/fleetops/internal/pkg/health"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/middleware"
	"github.com/dkurush/fleetops/internal/pkg/models"
	natspkg "github.com/dkurush/fleetops/internal/pkg/nats"
	wspkg "github.com/dkurush/fleetops/internal/pkg/websocket"
	"github.com/dkurush/fleetops/services/location/gateway"
	httpHandler "github.com/dkurush/fleetops/services/location/handler/http"
	wsHandler "github.com/dkurush/fleetops/services/location/handler/websocket"
	"github.com/dkurush/fleetops/services/location/repository"
	"github.com/dkurush/fleetops/services/location/usecase"
)

func main() {
	appName := "location-service"
	configs := config.InitConfig(os.Getenv("CONFIG_PATH"))

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       "info",
		Environment: configs.App.Environment,
		ServiceName: appName,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment))

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
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	clk := clock.Real{}

	// Initialize repository
	locationRepo := repository.NewLocationRepository(redisClient, postgresClient.GetDB())

	// Initialize gateway
	locationGW := gateway.NewLocationGW(natsClient)

	// Handlers for WebSocket
	manager := wspkg.NewManager(configs.JWT)
	wsManager := wsHandler.NewWSManager(configs, locationRepo, locationGW, clk, manager)

	// Initialize the roster aggregator; applied changes are pushed to
	// connected dispatcher consoles.
	aggregator := usecase.NewAggregator(configs.Location, locationRepo, natsClient, clk)
	aggregator.OnUpdate(func(entry models.RosterEntry) {
		manager.NotifyRole(models.RoleDispatcher, constants.EventRosterUpdate, entry)
	})
	if err := aggregator.Start(context.Background()); err != nil {
		zapLogger.Fatal("Failed to start roster aggregator", logger.Err(err))
	}
	defer aggregator.Stop()

	// Handlers for HTTP
	locationHandler := httpHandler.NewLocationHandler(aggregator, locationRepo)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	// Add middlewares
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	healthService := health.NewService()
	healthService.AddChecker("postgres", health.NewPostgresChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSChecker(natsClient))
	health.RegisterEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	e.GET("/ws", wsManager.HandleWebSocket)
	locationHandler.RegisterRoutes(e)

	// Start server
	go func() {
		zapLogger.Info("Starting server",
			logger.String("app", appName),
			logger.Int("port", configs.Server.Port))

		if err := e.Start(fmt.Sprintf(":%d", configs.Server.Port)); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server",
				logger.String("app", appName),
				logger.Err(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server", logger.String("app", appName))

	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		zapLogger.Error("Server shutdown failed", logger.Err(err))
	}
}
