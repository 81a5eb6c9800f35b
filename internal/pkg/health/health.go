package health

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mwangi/kodisha/internal/pkg/database"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/nats"
)

// HealthChecker defines the interface for health checking dependencies
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// PostgresHealthChecker checks PostgreSQL connection health
type PostgresHealthChecker struct {
	client *database.PostgresClient
}

// NewPostgresHealthChecker creates a new PostgreSQL health checker
func NewPostgresHealthChecker(client *database.PostgresClient) *PostgresHealthChecker {
	return &PostgresHealthChecker{client: client}
}

// CheckHealth checks if PostgreSQL is healthy
func (p *PostgresHealthChecker) CheckHealth(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.GetDB().PingContext(ctx)
}

// RedisHealthChecker checks Redis connection health
type RedisHealthChecker struct {
	client *database.RedisClient
}

// NewRedisHealthChecker creates a new Redis health checker
func NewRedisHealthChecker(client *database.RedisClient) *RedisHealthChecker {
	return &RedisHealthChecker{client: client}
}

// CheckHealth checks if Redis is healthy
func (r *RedisHealthChecker) CheckHealth(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Ping(ctx)
}

// NATSHealthChecker checks NATS connection health
type NATSHealthChecker struct {
	client *nats.Client
}

// NewNATSHealthChecker creates a new NATS health checker
func NewNATSHealthChecker(client *nats.Client) *NATSHealthChecker {
	return &NATSHealthChecker{client: client}
}

// CheckHealth checks if NATS is healthy
func (n *NATSHealthChecker) CheckHealth(ctx context.Context) error {
	if n.client == nil {
		return nil
	}
	if !n.client.IsConnected() {
		return errors.New("nats connection is down")
	}
	return nil
}

// HealthService aggregates named dependency checkers
type HealthService struct {
	logger   *logger.ZapLogger
	mu       sync.RWMutex
	checkers map[string]HealthChecker
}

// NewHealthService creates a new health service
func NewHealthService(zapLogger *logger.ZapLogger) *HealthService {
	return &HealthService{
		logger:   zapLogger,
		checkers: make(map[string]HealthChecker),
	}
}

// AddChecker registers a named dependency checker
func (s *HealthService) AddChecker(name string, checker HealthChecker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
}

// CheckAll runs every registered checker with a bounded deadline
func (s *HealthService) CheckAll(ctx context.Context) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make(map[string]string, len(s.checkers))
	for name, checker := range s.checkers {
		checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := checker.CheckHealth(checkCtx); err != nil {
			s.logger.Warn("health check failed",
				logger.String("dependency", name),
				logger.Err(err))
			results[name] = "unhealthy: " + err.Error()
		} else {
			results[name] = "healthy"
		}
		cancel()
	}
	return results
}

// RegisterHealthEndpoints registers /health, /health/live and /health/ready
func RegisterHealthEndpoints(e *echo.Echo, appName, version string, service *HealthService) {
	e.GET("/health", func(c echo.Context) error {
		results := service.CheckAll(c.Request().Context())
		status := http.StatusOK
		overall := "healthy"
		for _, v := range results {
			if v != "healthy" {
				status = http.StatusServiceUnavailable
				overall = "unhealthy"
				break
			}
		}
		return c.JSON(status, map[string]interface{}{
			"app":          appName,
			"version":      version,
			"status":       overall,
			"dependencies": results,
		})
	})

	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "alive"})
	})

	e.GET("/health/ready", func(c echo.Context) error {
		results := service.CheckAll(c.Request().Context())
		for _, v := range results {
			if v != "healthy" {
				return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
					"status":       "not ready",
					"dependencies": results,
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})
}
