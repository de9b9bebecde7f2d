package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"memberportal/internal/domain"
	applog "memberportal/internal/log"
	"memberportal/internal/metrics"
	"memberportal/internal/services"
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

// Submit is POST /api/payment. It answers 200 with a success flag whatever happens.
func (h *PaymentHandler) Submit(c *fiber.Ctx) error {
	var in services.PaymentInput
	if err := c.BodyParser(&in); err != nil {
		metrics.PaymentsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	err := h.Payments.Submit(c.UserContext(), in)
	switch {
	case err == nil:
		metrics.PaymentsTotal.WithLabelValues("success").Inc()
		applog.Audit(c, "payment.submit", map[string]any{"email": in.Email, "package": in.Package})
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, domain.ErrValidation):
		metrics.PaymentsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(fiber.Map{"success": false, "message": "All fields are required"})
	default:
		metrics.PaymentsTotal.WithLabelValues("error").Inc()
		applog.Error(c, "payment.submit.fail", err, map[string]any{"email": in.Email})
		return c.JSON(fiber.Map{"success": false, "message": "Payment could not be saved"})
	}
}

// Me is GET /api/membership/me for the signed-in user's email.
func (h *PaymentHandler) Me(c *fiber.Ctx) error {
	snap, _ := principal(c).Snapshot()
	m, err := h.Payments.Current(c.UserContext(), snap.Email)
	if err != nil {
		return apiError(c, "membership.me.fail", err)
	}
	return c.JSON(m)
}

// MembershipPage shows the member's current package, if any.
func (h *PaymentHandler) MembershipPage(c *fiber.Ctx) error {
	snap, _ := principal(c).Snapshot()
	m, err := h.Payments.Current(c.UserContext(), snap.Email)
	data := fiber.Map{}
	switch {
	case err == nil:
		data["Membership"] = m
	case errors.Is(err, domain.ErrMembershipNotFound):
	default:
		applog.Error(c, "membership.page.fail", err, nil)
		data["Err"] = "Could not load your membership"
	}
	return render(c, "membership", data)
}
