package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberportal/internal/http/handlers"
)

func TestErrorHandlerHidesInternals(t *testing.T) {
	app := fiber.New(fiber.Config{
		Views:        html.New("../../web/templates", ".html"),
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db timeout: secret trace") })
	app.Get("/api/boom", func(c *fiber.Ctx) error { return errors.New("db timeout: secret trace") })
	app.Get("/api/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := bodyString(t, resp)
	assert.Contains(t, body, "Something went wrong")
	assert.NotContains(t, body, "secret")

	resp, err = app.Test(httptest.NewRequest("GET", "/api/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))
	assert.NotContains(t, bodyString(t, resp), "secret")

	resp, err = app.Test(httptest.NewRequest("GET", "/api/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNotFoundAndHealth(t *testing.T) {
	a := newApp(t)
	resp := a.do(t, httptest.NewRequest("GET", "/no/such/page", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, httptest.NewRequest("GET", "/api/no-such", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	a.login(t, "ghost@x.com", "nope")
	resp = a.do(t, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "portal_logins_total")
}
