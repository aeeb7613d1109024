package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

// RequireAuthenticated ensures a principal was loaded by the middleware.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the principal carries the admin role from either the
// identity claims or the directory record.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Admin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
