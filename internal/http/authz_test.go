package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminAPIGuard(t *testing.T) {
	a := newApp(t)
	member := a.member(t, "m@x.com")
	admin := a.admin(t)

	paths := []string{
		"/api/admin/total-members",
		"/api/admin/new-members-today",
		"/api/admin/latest-members",
		"/api/admin/members-week",
		"/api/admin/members",
	}
	for _, p := range paths {
		resp := a.do(t, httptest.NewRequest("GET", p, nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, p)

		resp = a.do(t, withSID(httptest.NewRequest("GET", p, nil), member))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, p)
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, "forbidden", body["message"])

		resp = a.do(t, withSID(httptest.NewRequest("GET", p, nil), admin))
		assert.Equal(t, http.StatusOK, resp.StatusCode, p)
	}

	resp := a.do(t, withSID(httptest.NewRequest("DELETE", "/api/admin/delete-member/1", nil), member))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminPagesRedirect(t *testing.T) {
	a := newApp(t)
	member := a.member(t, "m@x.com")

	for _, p := range []string{"/admin/dashboard", "/admin/members"} {
		resp := a.do(t, httptest.NewRequest("GET", p, nil))
		assert.Equal(t, http.StatusFound, resp.StatusCode, p)
		assert.Equal(t, "/login", resp.Header.Get("Location"), p)

		resp = a.do(t, withSID(httptest.NewRequest("GET", p, nil), member))
		assert.Equal(t, http.StatusFound, resp.StatusCode, p)
		assert.Equal(t, "/", resp.Header.Get("Location"), p)
	}
}

func TestMembershipPageRequiresMember(t *testing.T) {
	a := newApp(t)

	resp := a.do(t, httptest.NewRequest("GET", "/membership", nil))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = a.do(t, withSID(httptest.NewRequest("GET", "/membership", nil), a.admin(t)))
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp = a.do(t, withSID(httptest.NewRequest("GET", "/membership", nil), a.member(t, "m@x.com")))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "no membership yet")
}

func TestUnknownSessionIsAnonymous(t *testing.T) {
	a := newApp(t)
	resp := a.do(t, withSID(httptest.NewRequest("GET", "/api/membership/me", nil), "not-a-session"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
