package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	nrpkg "github.com/mwangi/kodisha/internal/pkg/newrelic"
)

// PanicRecoveryMiddleware recovers from handler panics, logs the stack and
// reports the error to New Relic, then answers 500.
func PanicRecoveryMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}

					zapLogger.Error("panic recovered",
						logger.String("method", c.Request().Method),
						logger.String("path", c.Request().URL.Path),
						logger.Err(err),
						logger.String("stack", string(debug.Stack())))

					nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)

					if !c.Response().Committed {
						_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
							"success": false,
							"error":   "Internal server error",
						})
					}
				}
			}()

			return next(c)
		}
	}
}
