package middleware

import (
	"net/http"
	"storefront-api/internal/service"
	"strings"

	"github.com/labstack/echo/v4"
)

// JWTAuth extracts the bearer token and stores the authenticated user id in
// the request context. With required=false the request proceeds anonymously
// when no valid token is presented; with required=true it fails with 401.
func JWTAuth(authService service.AuthService, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")

			if !ok || token == "" {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
				}
				return next(c)
			}

			userID, err := authService.ParseToken(token)
			if err != nil {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				}
				return next(c)
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
