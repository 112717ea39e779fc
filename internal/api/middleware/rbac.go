package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cinevault/movies-api/internal/api/metrics"
	"github.com/cinevault/movies-api/internal/core/domain"
)

// RequireRole lets the request through only when the verified claims carry
// one of allowedRoles. Missing claims are treated as a denial.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if !claims.HasRole(allowedRoles...) {
				role := "none"
				if claims != nil {
					role = claims.Role
				}
				metrics.AccessDeniedTotal.WithLabelValues(role).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
