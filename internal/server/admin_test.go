package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Zachkp/portfolio/internal/metrics"
)

func login(t *testing.T, f *fixture, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := postForm("/admin/login", url.Values{"username": {username}, "password": {password}})
	req.Header.Del("HX-Request")
	return f.do(req)
}

func adminCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			return c
		}
	}
	t.Fatal("admin cookie not set")
	return nil
}

func TestAdmin_RequiresLogin(t *testing.T) {
	f := newFixture(t, testConfig())

	for _, path := range []string{"/admin/dashboard", "/admin/visitors", "/admin/api/stats", "/admin/export/stats"} {
		w := f.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, f.do(req).Code)
}

func TestAdmin_LoginFailure(t *testing.T) {
	f := newFixture(t, testConfig())

	w := login(t, f, "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestAdmin_LoginAndDashboard(t *testing.T) {
	f := newFixture(t, testConfig())
	ctx := context.Background()
	require.NoError(t, f.store.Record(ctx, "10.0.0.1", "ua", "/"))
	require.NoError(t, f.store.Record(ctx, "10.0.0.2", "ua", "/"))

	w := login(t, f, "admin", "s3cret")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	cookie := adminCookieFrom(t, w)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	w = f.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	doc := parse(t, w)
	assert.Equal(t, "2", doc.Find(`[data-stat="total"]`).Text())
	assert.Equal(t, "2", doc.Find(`[data-stat="unique"]`).Text())

	req = httptest.NewRequest(http.MethodGet, "/admin/visitors", nil)
	req.AddCookie(cookie)
	doc = parse(t, f.do(req))
	assert.Equal(t, 2, doc.Find("tr.visitor").Length())
	assert.NotContains(t, doc.Text(), "10.0.0.1")
}

func TestAdmin_StatsAndExport(t *testing.T) {
	f := newFixture(t, testConfig())
	require.NoError(t, f.store.Record(context.Background(), "10.0.0.1", "ua", "/"))
	cookie := adminCookieFrom(t, login(t, f, "admin", "s3cret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	req.AddCookie(cookie)
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var stats metrics.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalVisitors)

	req = httptest.NewRequest(http.MethodGet, "/admin/export/stats", nil)
	req.AddCookie(cookie)
	w = f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "admin-stats.json")
}

func TestAdmin_Cleanup(t *testing.T) {
	f := newFixture(t, testConfig())
	cookie := adminCookieFrom(t, login(t, f, "admin", "s3cret"))

	req := httptest.NewRequest(http.MethodPost, "/admin/privacy/cleanup", nil)
	req.AddCookie(cookie)
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed": 0}`, w.Body.String())
}

func TestAdmin_Logout(t *testing.T) {
	f := newFixture(t, testConfig())

	w := f.do(httptest.NewRequest(http.MethodGet, "/admin/logout", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	cookie := adminCookieFrom(t, w)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestAdmin_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.AdminPassword = ""
	cfg.AdminPasswordHash = string(hash)
	f := newFixture(t, cfg)

	assert.Equal(t, http.StatusUnauthorized, login(t, f, "admin", "s3cret").Code)
	assert.Equal(t, http.StatusFound, login(t, f, "admin", "hashed-secret").Code)
}

func TestAdmin_NotMountedWithoutPassword(t *testing.T) {
	cfg := testConfig()
	cfg.AdminPassword = ""
	f := newFixture(t, cfg)

	assert.Equal(t, http.StatusNotFound, f.do(httptest.NewRequest(http.MethodGet, "/admin/login", nil)).Code)
}

func TestRetentionText(t *testing.T) {
	day := 24 * time.Hour
	assert.Equal(t, "12 months", retentionText(360*day))
	assert.Equal(t, "1 month", retentionText(30*day))
	assert.Equal(t, "45 days", retentionText(45*day))
	assert.Equal(t, "1 day", retentionText(day))
}
