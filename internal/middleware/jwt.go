package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kosratdiaz/barber-reservation/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects its claims into the request context.  The secret, issuer and
// audience must match the values used when issuing tokens; empty issuer or
// audience disables the respective check.  Handlers downstream read the
// caller's identity via c.Get("user_id"), c.Get("role"), c.Get("email")
// and c.Get("name").
func JWTAuth(secret, issuer, audience string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ValidateToken(secret, issuer, audience, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			c.Set("email", claims["email"])
			c.Set("name", claims["name"])
			return next(c)
		}
	}
}
