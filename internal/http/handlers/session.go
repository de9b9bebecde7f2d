package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"memberportal/internal/domain"
	applog "memberportal/internal/log"
	"memberportal/internal/services"
)

const (
	SessionCookie = "sid"
	principalKey  = "principal"
)

// Attach resolves the sid cookie into a domain.Principal stored in Locals.
// A session store failure leaves the request anonymous.
func Attach(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := sessions.Read(c.UserContext(), c.Cookies(SessionCookie))
		if err != nil {
			applog.Error(c, "session.read.fail", err, nil)
		}
		setPrincipal(c, p)
		return c.Next()
	}
}

func setPrincipal(c *fiber.Ctx, p domain.Principal) {
	c.Locals(principalKey, p)
	uid := ""
	if s, ok := p.Snapshot(); ok {
		uid = strconv.FormatInt(s.ID, 10)
	}
	c.Locals(applog.UserIDLocal, uid)
}

func principal(c *fiber.Ctx) domain.Principal {
	p, _ := c.Locals(principalKey).(domain.Principal)
	return p
}

func setSessionCookie(c *fiber.Ctx, s domain.Session, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    s.Token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
		Expires:  s.ExpiresAt,
		MaxAge:   int(services.SessionTTL / time.Second),
	})
}

func clearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
