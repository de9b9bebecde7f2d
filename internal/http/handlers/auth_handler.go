package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"memberportal/internal/domain"
	applog "memberportal/internal/log"
	"memberportal/internal/metrics"
	"memberportal/internal/services"
)

// Shown for every failed login, whatever the cause.
const msgBadLogin = "Invalid email or password"

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": c.Query("error"), "Notice": c.Query("notice")})
}

func loginRedirect(c *fiber.Ctx, msg string) error {
	return c.Redirect("/login?error=" + url.QueryEscape(msg))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")

	sess, err := h.Auth.Login(c.UserContext(), email, pass)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return loginRedirect(c, msgBadLogin)
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		applog.Error(c, "auth.login.error", err, map[string]any{"email": email})
		return loginRedirect(c, "Server error, please try again")
	}

	// drop the session this browser held before, if any
	if old := c.Cookies(SessionCookie); old != "" {
		if err := h.Auth.Logout(c.UserContext(), old); err != nil {
			applog.Error(c, "auth.login.rotate", err, nil)
		}
	}
	setSessionCookie(c, sess, h.CookieSecure)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	applog.Audit(c, "auth.login.success", map[string]any{"email": email, "user_id": sess.Snapshot.ID})
	return c.Redirect("/")
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Err": "Invalid form submission"})
	}
	form := fiber.Map{"Form": in}

	id, err := h.Auth.Signup(c.UserContext(), in)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		form["Err"] = "Please fill in your name, a valid email and a password"
		return c.Status(fiber.StatusBadRequest).Render("signup", form)
	case errors.Is(err, domain.ErrDuplicateEmail):
		metrics.SignupsTotal.WithLabelValues("duplicate_email").Inc()
		applog.Security(c, "auth.signup.duplicate", map[string]any{"email": in.Email})
		form["Err"] = "This email is already registered"
		return c.Status(fiber.StatusBadRequest).Render("signup", form)
	default:
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		applog.Error(c, "auth.signup.error", err, map[string]any{"email": in.Email})
		form["Err"] = "Sign up failed, please try again"
		return c.Status(fiber.StatusInternalServerError).Render("signup", form)
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	applog.Audit(c, "auth.signup", map[string]any{"email": in.Email, "user_id": id})
	return c.Redirect("/login?notice=" + url.QueryEscape("Account created, please log in"))
}

func (h *AuthHandler) ResetForm(c *fiber.Ctx) error {
	return render(c, "reset", fiber.Map{})
}

type resetForm struct {
	Email       string `form:"email" json:"email"`
	NewPassword string `form:"newPassword" json:"newPassword"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in resetForm
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("reset", fiber.Map{"Err": "Invalid form submission"})
	}
	err := h.Auth.ResetPassword(c.UserContext(), in.Email, in.NewPassword)
	switch {
	case err == nil:
		applog.Audit(c, "auth.password.reset", map[string]any{"email": in.Email})
		return render(c, "reset", fiber.Map{"Message": "Your password has been reset"})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).Render("reset", fiber.Map{"Err": "Please enter your email and a new password"})
	case errors.Is(err, domain.ErrAccountNotFound):
		applog.Security(c, "auth.password.reset.unknown", map[string]any{"email": in.Email})
		return c.Status(fiber.StatusNotFound).Render("reset", fiber.Map{"Err": "No account uses this email"})
	default:
		applog.Error(c, "auth.password.reset.error", err, map[string]any{"email": in.Email})
		return c.Status(fiber.StatusInternalServerError).Render("reset", fiber.Map{"Err": "Could not reset the password, please try again"})
	}
}

// Logout always clears the cookie and redirects; a failed delete is only logged.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(SessionCookie)
	if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
		applog.Error(c, "auth.logout.error", err, nil)
	}
	clearSessionCookie(c, h.CookieSecure)
	setPrincipal(c, domain.Anonymous())
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}

// Me is GET /api/user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	snap, ok := principal(c).Snapshot()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": domain.ErrUnauthorized.Error()})
	}
	return c.JSON(snap)
}
