package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/internal/utils"
)

const (
	// APIKeyHeader carries the key on internal service-to-service routes
	APIKeyHeader = "X-API-Key"
)

// APIKeyMiddleware guards internal routes with a shared admin key
type APIKeyMiddleware struct {
	cfg *models.APIKeyConfig
}

// NewAPIKeyMiddleware creates a new API key middleware
func NewAPIKeyMiddleware(cfg *models.APIKeyConfig) *APIKeyMiddleware {
	return &APIKeyMiddleware{cfg: cfg}
}

// Require validates the API key on internal routes
func (m *APIKeyMiddleware) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.UnauthorizedResponse(c, "API key is required")
			}

			if m.cfg.AdminKey == "" ||
				subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.AdminKey)) != 1 {
				return utils.UnauthorizedResponse(c, "Invalid API key")
			}

			return next(c)
		}
	}
}
