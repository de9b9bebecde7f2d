package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"memberportal/internal/repos"
	"memberportal/internal/services"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type stack struct {
	DB       *sqlx.DB
	Clock    *clock
	Sessions *services.SessionService
	Auth     *services.AuthService
	Members  *services.MemberService
	Payments *services.PaymentService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db := memdb(t)
	clk := &clock{t: time.Date(2026, 5, 20, 9, 30, 0, 0, time.UTC)}
	sessions := services.NewSessionService(repos.NewSessionRepo(db))
	sessions.Now = clk.Now
	auth := services.NewAuthService(repos.NewUserRepo(db), sessions)
	auth.Now = clk.Now
	members := services.NewMemberService(repos.NewUserRepo(db))
	members.Now = clk.Now
	payments := services.NewPaymentService(repos.NewPaymentRepo(db))
	payments.Now = clk.Now
	return &stack{DB: db, Clock: clk, Sessions: sessions, Auth: auth, Members: members, Payments: payments}
}
