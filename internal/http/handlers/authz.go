package handlers

import (
	"github.com/gofiber/fiber/v2"

	"memberportal/internal/domain"
	applog "memberportal/internal/log"
	"memberportal/internal/metrics"
)

// Gate describes how a guarded route answers a refused request: API gates
// reply 401/403 JSON, page gates redirect.
type Gate struct {
	API bool
	// LoginPath receives anonymous visitors of page routes. Empty means "/".
	LoginPath string
	// DeniedPath receives signed-in visitors lacking the role. Empty means "/".
	DeniedPath string
}

var (
	PageGate = Gate{LoginPath: "/login", DeniedPath: "/"}
	APIGate  = Gate{API: true}
)

func (g Gate) RequireAuth() fiber.Handler { return g.require(nil) }

func (g Gate) RequireRole(roles ...domain.Role) fiber.Handler {
	allowed := make([]domain.Role, len(roles))
	copy(allowed, roles)
	return g.require(allowed)
}

func (g Gate) require(roles []domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := principal(c)
		if !p.IsAuthenticated() {
			metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
			applog.Security(c, "access.denied.anonymous", nil)
			if g.API {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": domain.ErrUnauthorized.Error()})
			}
			return c.Redirect(orRoot(g.LoginPath))
		}
		if roles != nil && !p.HasRole(roles...) {
			snap, _ := p.Snapshot()
			metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
			applog.Security(c, "access.denied.role", map[string]any{"role": snap.Role, "required": roles})
			if g.API {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": domain.ErrForbidden.Error()})
			}
			return c.Redirect(orRoot(g.DeniedPath))
		}
		return c.Next()
	}
}

func orRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
