package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"memberportal/internal/domain"
)

// Routes registers every endpoint. Guards are attached per route or group;
// handlers never check roles themselves.
func Routes(app *fiber.App, d *Deps) {
	app.Use(Attach(d.Sessions))

	app.Get("/", Home)
	app.Get("/signup", d.Auth.SignupForm)
	app.Post("/signup", d.Auth.Signup)
	app.Get("/login", d.Auth.LoginForm)
	app.Post("/login", d.Auth.Login)
	app.Get("/reset-password", d.Auth.ResetForm)
	app.Post("/reset-password", d.Auth.ResetPassword)
	app.Get("/logout", d.Auth.Logout)
	app.Post("/logout", d.Auth.Logout)

	admin := app.Group("/admin", PageGate.RequireRole(domain.RoleAdmin))
	admin.Get("/dashboard", d.Admin.DashboardPage)
	admin.Get("/members", d.Admin.MembersPage)

	app.Get("/membership", PageGate.RequireRole(domain.RoleMember), d.Payments.MembershipPage)

	api := app.Group("/api")
	api.Get("/user", d.Auth.Me)
	api.Post("/payment", d.Payments.Submit)
	api.Get("/membership/me", APIGate.RequireAuth(), d.Payments.Me)

	adminAPI := api.Group("/admin", APIGate.RequireRole(domain.RoleAdmin))
	adminAPI.Get("/total-members", d.Admin.TotalMembers)
	adminAPI.Get("/new-members-today", d.Admin.NewMembersToday)
	adminAPI.Get("/latest-members", d.Admin.LatestMembers)
	adminAPI.Get("/members-week", d.Admin.MembersWeek)
	adminAPI.Get("/members", d.Admin.ListMembers)
	adminAPI.Put("/update-role/:id", d.Admin.UpdateRole)
	adminAPI.Delete("/delete-member/:id", d.Admin.DeleteMember)

	app.Get("/healthz", Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(NotFound)
}
