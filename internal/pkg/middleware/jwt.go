package middleware

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/mwangi/kodisha/internal/pkg/jwt"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/internal/utils"
)

// JWTAuthMiddleware validates the bearer token issued by the external
// identity service and stores the principal on the request context.
// requiredRoles, when non-empty, restricts the route to those roles.
func JWTAuthMiddleware(config models.JWTConfig, requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			userIDStr, ok := (*claims)["user_id"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing user_id claim")
			}

			role, ok := (*claims)["role"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing role claim")
			}

			userID, err := uuid.Parse(fmt.Sprintf("%v", userIDStr))
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token: user_id is not a valid UUID")
			}

			roleStr := fmt.Sprintf("%v", role)
			if len(requiredRoles) > 0 {
				allowed := false
				for _, r := range requiredRoles {
					if strings.EqualFold(r, roleStr) {
						allowed = true
						break
					}
				}
				if !allowed {
					return utils.ForbiddenResponse(c, "Insufficient role")
				}
			}

			c.Set("user_id", userID)
			c.Set("user_role", roleStr)

			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated principal's id
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	return userID, ok
}
