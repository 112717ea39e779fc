package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cinevault/movies-api/internal/api/metrics"
	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
)

// ClaimsKey is the echo context key holding the verified *domain.Claims.
const ClaimsKey = "claims"

// Auth requires a valid bearer token. A request without usable credentials
// fails with domain.ErrUnauthenticated (401); a token that does not verify
// fails with the token error (403). Verified claims go on both the echo
// context and the request context.
func Auth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return fmt.Errorf("%w: missing authorization header", domain.ErrUnauthenticated)
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return fmt.Errorf("%w: expected bearer token", domain.ErrUnauthenticated)
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				reason := rejectionReason(err)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().
					Err(err).
					Str("reason", reason).
					Str("path", c.Path()).
					Msg("token rejected")
				return err
			}

			c.Set(ClaimsKey, claims)
			req := c.Request()
			c.SetRequest(req.WithContext(domain.ContextWithClaims(req.Context(), claims)))
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims set by Auth, or nil when Auth did not run.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(ClaimsKey).(*domain.Claims)
	return claims
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
