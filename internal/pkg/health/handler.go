package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkurush/fleetops/internal/pkg/database"
	"github.com/dkurush/fleetops/internal/pkg/nats"
)

// Checker verifies the health of one dependency
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// PostgresChecker checks PostgreSQL connectivity
type PostgresChecker struct {
	client *database.PostgresClient
}

// NewPostgresChecker creates a Postgres health checker
func NewPostgresChecker(client *database.PostgresClient) *PostgresChecker {
	return &PostgresChecker{client: client}
}

func (p *PostgresChecker) CheckHealth(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// RedisChecker checks Redis connectivity
type RedisChecker struct {
	client *database.RedisClient
}

// NewRedisChecker creates a Redis health checker
func NewRedisChecker(client *database.RedisClient) *RedisChecker {
	return &RedisChecker{client: client}
}

func (r *RedisChecker) CheckHealth(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// NATSChecker checks NATS connectivity
type NATSChecker struct {
	client *nats.Client
}

// NewNATSChecker creates a NATS health checker
func NewNATSChecker(client *nats.Client) *NATSChecker {
	return &NATSChecker{client: client}
}

func (n *NATSChecker) CheckHealth(ctx context.Context) error {
	if !n.client.IsConnected() {
		return ErrNATSDisconnected
	}
	return nil
}

// ErrNATSDisconnected indicates the NATS connection is down
var ErrNATSDisconnected = errNATSDisconnected{}

type errNATSDisconnected struct{}

func (errNATSDisconnected) Error() string { return "nats connection is not established" }

// Service aggregates checkers for the health endpoint
type Service struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewService creates a health service
func NewService() *Service {
	return &Service{checkers: make(map[string]Checker)}
}

// AddChecker registers a named dependency checker
func (s *Service) AddChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
}

// Response is the health endpoint payload
type Response struct {
	Status     string            `json:"status"`
	Service    string            `json:"service"`
	Version    string            `json:"version"`
	Hostname   string            `json:"hostname"`
	GoVersion  string            `json:"go_version"`
	ServerTime time.Time         `json:"server_time"`
	Checks     map[string]string `json:"checks"`
}

// CheckAll runs every registered checker with a bounded wait
func (s *Service) CheckAll(ctx context.Context) (map[string]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	checks := make(map[string]string, len(s.checkers))
	healthy := true

	for name, checker := range s.checkers {
		checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := checker.CheckHealth(checkCtx); err != nil {
			checks[name] = err.Error()
			healthy = false
		} else {
			checks[name] = "ok"
		}
		cancel()
	}

	return checks, healthy
}

// RegisterEndpoints registers the health check endpoints
func RegisterEndpoints(e *echo.Echo, serviceName, version string, service *Service) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	e.GET("/health", func(c echo.Context) error {
		checks, healthy := service.CheckAll(c.Request().Context())

		status := "ok"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		return c.JSON(code, Response{
			Status:     status,
			Service:    serviceName,
			Version:    version,
			Hostname:   hostname,
			GoVersion:  runtime.Version(),
			ServerTime: time.Now(),
			Checks:     checks,
		})
	})

	e.GET("/ready", func(c echo.Context) error {
		_, healthy := service.CheckAll(c.Request().Context())
		if !healthy {
			return c.String(http.StatusServiceUnavailable, "not ready")
		}
		return c.String(http.StatusOK, "OK")
	})
}
