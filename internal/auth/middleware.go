package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campusflow/disruption-service/internal/domain"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Admin is resolved exactly
// once per request: an admin signal in the verified claims wins, otherwise the
// role stored on the linked directory record applies.
type Principal struct {
	Claims *Claims
	User   *domain.User
	Admin  bool
}

// Directory resolves verified claims to a local user record, creating one on
// first sight.
type Directory interface {
	ResolveOrCreate(ctx context.Context, authUID, email, name string) (*domain.User, error)
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	verifier  Verifier
	directory Directory
}

// NewMiddleware constructs middleware.
func NewMiddleware(verifier Verifier, directory Directory) *Middleware {
	return &Middleware{verifier: verifier, directory: directory}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.verifier.Verify(c.UserContext(), strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	user, err := m.directory.ResolveOrCreate(c.UserContext(), claims.UID, claims.Email, claims.Name)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !user.IsActive {
		return apperrors.NewForbidden("account deactivated")
	}

	c.Locals(principalKey, &Principal{
		Claims: claims,
		User:   user,
		Admin:  claims.Admin || claims.Role == string(domain.UserRoleAdmin) || user.IsAdmin(),
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
