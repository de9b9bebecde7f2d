package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"

	"memberportal/internal/config"
	"memberportal/internal/http/handlers"
	"memberportal/internal/repos"
)

const (
	adminEmail = "admin@portal.test"
	adminPass  = "admin-pass"
)

type testApp struct {
	App  *fiber.App
	DB   *sqlx.DB
	Deps *handlers.Deps
}

func newApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	db, err := repos.OpenDB(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = repos.EnsureAdmin(ctx, db, adminEmail, adminPass, time.Now())
	require.NoError(t, err)

	cfg, err := config.LoadFrom(ctx, envconfig.MapLookuper(map[string]string{
		"TEMPLATES_DIR":  "../../web/templates",
		"STATIC_DIR":     "../../web/static",
		"SESSION_SECRET": "test-secret",
	}))
	require.NoError(t, err)
	app, deps := handlers.NewServer(cfg, db, io.Discard)
	return &testApp{App: app, DB: db, Deps: deps}
}

func (a *testApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := a.App.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func formReq(method, target string, vals url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withSID(req *http.Request, sid string) *http.Request {
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: handlers.SessionCookie, Value: sid})
	}
	return req
}

func cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func (a *testApp) signup(t *testing.T, name, email, pw string) {
	t.Helper()
	resp := a.do(t, formReq("POST", "/signup", url.Values{
		"username": {name},
		"surname":  {"Tester"},
		"email":    {email},
		"phone":    {"555-0100"},
		"password": {pw},
	}))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login"))
}

// login returns the session cookie value, or "" when no session was issued.
func (a *testApp) login(t *testing.T, email, pw string) (string, *http.Response) {
	t.Helper()
	resp := a.do(t, formReq("POST", "/login", url.Values{"email": {email}, "password": {pw}}))
	if c := cookie(resp, handlers.SessionCookie); c != nil {
		return c.Value, resp
	}
	return "", resp
}

func (a *testApp) member(t *testing.T, email string) string {
	t.Helper()
	a.signup(t, "Member", email, "secret1")
	sid, _ := a.login(t, email, "secret1")
	require.NotEmpty(t, sid)
	return sid
}

func (a *testApp) admin(t *testing.T) string {
	t.Helper()
	sid, _ := a.login(t, adminEmail, adminPass)
	require.NotEmpty(t, sid)
	return sid
}
