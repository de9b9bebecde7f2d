package handlers

import (
	"github.com/jmoiron/sqlx"

	"memberportal/internal/config"
	"memberportal/internal/repos"
	"memberportal/internal/services"
)

type Deps struct {
	Sessions *services.SessionService
	Auth     *AuthHandler
	Admin    *AdminHandler
	Payments *PaymentHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	sessionRepo := repos.NewSessionRepo(db)
	paymentRepo := repos.NewPaymentRepo(db)

	sessions := services.NewSessionService(sessionRepo)
	auth := services.NewAuthService(userRepo, sessions)
	members := services.NewMemberService(userRepo)

	return &Deps{
		Sessions: sessions,
		Auth:     &AuthHandler{Auth: auth, CookieSecure: cfg.Session.CookieSecure},
		Admin:    &AdminHandler{Members: members, Dashboard: services.NewDashboardService(members)},
		Payments: &PaymentHandler{Payments: services.NewPaymentService(paymentRepo)},
	}
}
