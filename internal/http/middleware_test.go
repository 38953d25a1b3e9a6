package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/http/handlers"
	"bistro/internal/ratelimit"
)

func TestFormPostWithoutCSRFIsRejected(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	c := a.browser(t)
	c.signIn("casey", false)

	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(url.Values{"dishId": {"4"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sid", Value: c.sid})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: c.csrf})

	var resp *http.Response
	entries := captureLogs(t, func() {
		var err error
		resp, err = a.app.Test(req, -1)
		require.NoError(t, err)
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.True(t, hasAction(entries, "csrf.fail"))

	_, body := c.get("/menu")
	assert.Contains(t, body, "Your cart is empty.")
}

func TestFormsCarryCSRFToken(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	c := a.browser(t)

	_, body := c.get("/profile")
	assert.Contains(t, body, `name="csrf" value="`+c.csrf+`"`)
}

func TestRateLimitWithRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := ratelimit.NewRedisStorage(client, "test:rate:")
	t.Cleanup(func() { _ = store.Close() })

	a := newTestApp(t, handlers.AppConfig{RateMax: 3, RateWindow: time.Minute, RateStorage: store})

	var last *http.Response
	entries := captureLogs(t, func() {
		for i := 0; i < 4; i++ {
			resp, err := a.app.Test(httptest.NewRequest(http.MethodGet, "/courses", nil), -1)
			require.NoError(t, err)
			last = resp
		}
	})
	assert.Equal(t, http.StatusTooManyRequests, last.StatusCode)
	assert.True(t, hasAction(entries, "rate.limit.hit"))
	assert.NotEmpty(t, mr.Keys(), "limiter counters should live in redis")

	resp, err := a.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, err = a.app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBodySizeLimit(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	big := strings.Repeat("a", 2<<20)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(`{"username":"`+big+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestCORSForAPI(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{CORSOrigins: "http://app.test"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "http://app.test", resp.Header.Get("Access-Control-Allow-Origin"))
}
