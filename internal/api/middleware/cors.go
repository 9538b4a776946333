package middleware

import (
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const defaultOrigin = "http://localhost:3000"

// SecureCORS returns CORS middleware restricted to the dashboard origins in
// ALLOWED_ORIGINS. Wildcards are stripped in production; the actor identity
// headers are allowed so the gateway can forward them cross-origin.
func SecureCORS() echo.MiddlewareFunc {
	var origins []string
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" && os.Getenv("APP_ENV") == "production" {
			continue
		}
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		origins = []string{defaultOrigin}
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization,
			HeaderActorID, HeaderActorName, HeaderActorEmail, HeaderActorAdmin,
		},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
