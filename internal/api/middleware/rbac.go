package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireType restricts a route to the given account types.
func RequireType(allowedTypes ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountType, _ := c.Get("type").(string)
			if _, ok := allowed[accountType]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
