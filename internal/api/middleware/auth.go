package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
)

// APIKeyAuth validates the shared service key in the Authorization header.
// The key authenticates the calling platform component; the acting user
// arrives separately in the X-Actor-* headers. Health probes are exempt,
// and an unset API_KEY disables the check for local development.
func APIKeyAuth(logger *slog.Logger) echo.MiddlewareFunc {
	key := os.Getenv("API_KEY")
	if key == "" && logger != nil {
		logger.Warn("API_KEY not set - API is UNSECURED")
	}

	reject := func(c echo.Context, reason string) error {
		if logger != nil {
			logger.Warn(reason,
				slog.String("ip", c.RealIP()),
				slog.String("path", c.Path()))
		}
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
			"error": reason,
			"code":  "UNAUTHORIZED",
		})
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if key == "" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/ready") {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return reject(c, "missing authorization header")
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
				return reject(c, "invalid API key")
			}

			return next(c)
		}
	}
}
