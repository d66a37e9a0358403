package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"

	"contactdb/internal/config"
	"contactdb/internal/models"
)

// actorKey is the request-local key the verified actor is stored under.
const actorKey = "actor"

// AuthMiddleware verifies bearer tokens issued by an external identity
// provider. It never issues tokens or sessions itself.
type AuthMiddleware struct {
	verifier *oidc.IDTokenVerifier
	cfg      *config.Config
}

// NewAuthMiddleware creates the auth middleware. When OIDC_ISSUER is unset
// the middleware runs open with a fixed development actor.
func NewAuthMiddleware(ctx context.Context, cfg *config.Config) (*AuthMiddleware, error) {
	if cfg.OIDCIssuer == "" {
		log.Println("OIDC verification is disabled. Set OIDC_ISSUER to enable.")
		return &AuthMiddleware{cfg: cfg}, nil
	}

	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, err
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})
	return &AuthMiddleware{verifier: verifier, cfg: cfg}, nil
}

// RequireAuth verifies the Authorization bearer token and stores the actor
// on the request.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	if m.verifier == nil {
		c.Locals(actorKey, models.Actor{ID: "dev", Name: "dev", Role: models.RoleAdmin})
		return c.Next()
	}

	auth := c.Get(fiber.HeaderAuthorization)
	raw, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || raw == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}

	token, err := m.verifier.Verify(c.Context(), raw)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	var claims struct {
		Name              string `json:"name"`
		PreferredUsername string `json:"preferred_username"`
		Role              string `json:"role"`
	}
	if err := token.Claims(&claims); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
	}

	name := claims.PreferredUsername
	if name == "" {
		name = claims.Name
	}
	if name == "" {
		name = token.Subject
	}
	role := claims.Role
	if role == "" {
		role = models.RoleUser
	}

	c.Locals(actorKey, models.Actor{ID: token.Subject, Name: name, Role: role})
	return c.Next()
}

// RequireRole ensures the actor holds one of the given roles. Must run
// after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		actor, ok := ActorFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}
		for _, r := range roles {
			if actor.Role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}
}

// RequireAuditCode checks the per-request audit capability header. Audit
// surfaces demand it on every call rather than relying on ambient session
// state.
func (m *AuthMiddleware) RequireAuditCode(c fiber.Ctx) error {
	if m.cfg.AuditAccessCode == "" {
		return c.Next()
	}
	if c.Get("X-Audit-Code") != m.cfg.AuditAccessCode {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid audit code")
	}
	return c.Next()
}

// ActorFromCtx returns the verified actor attached to the request.
func ActorFromCtx(c fiber.Ctx) (models.Actor, bool) {
	actor, ok := c.Locals(actorKey).(models.Actor)
	return actor, ok
}
