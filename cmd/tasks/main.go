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
	"github.com/dkurush/fleetops/internal/pkg/database"
	"github.com/dkurush/fleetops/internal/pkg/health"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/middleware"
	natspkg "github.com/dkurush/fleetops/internal/pkg/nats"
	nsqpkg "github.com/dkurush/fleetops/internal/pkg/nsq"
	wspkg "github.com/dkurush/fleetops/internal/pkg/websocket"
	"github.com/dkurush/fleetops/services/tasks/gateway"
	httpHandler "github.com/dkurush/fleetops/services/tasks/handler/http"
	natsHandler "github.com/dkurush/fleetops/services/tasks/handler/nats"
	"github.com/dkurush/fleetops/services/tasks/repository"
	"github.com/dkurush/fleetops/services/tasks/usecase"
)

func main() {
	appName := "tasks-service"
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

	// Initialize NATS client
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	// Initialize NSQ producer for the admin activity feed
	activityProducer, err := nsqpkg.NewProducer(configs.NSQ.Address)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}
	defer activityProducer.Stop()

	// Initialize repository
	taskRepo := repository.NewTaskRepo(configs, postgresClient.GetDB())

	// Initialize gateway
	taskGW := gateway.NewTaskGW(natsClient, activityProducer, configs.NSQ.ActivityTopic)

	// Initialize usecase
	taskUC := usecase.NewTaskUC(taskRepo, taskGW, clock.Real{})

	// Handlers for HTTP
	taskHandler := httpHandler.NewTaskHandler(taskUC, configs.JWT.Secret)

	// Handlers for NATS, forwarding transitions to websocket clients
	manager := wspkg.NewManager(configs.JWT)
	notifier := natsHandler.NewNotifier(natsClient, manager)
	if err := notifier.Start(); err != nil {
		zapLogger.Fatal("Failed to start task notifier", logger.Err(err))
	}
	defer notifier.Stop()

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
	healthService.AddChecker("nats", health.NewNATSChecker(natsClient))
	health.RegisterEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	taskHandler.RegisterRoutes(e)

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
