package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"bistro/internal/config"
	"bistro/internal/events"
	"bistro/internal/http/handlers"
	"bistro/internal/repos"
)

type recorder struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, e)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.got))
	for _, e := range r.got {
		out = append(out, e.Type)
	}
	return out
}

type testApp struct {
	app    *fiber.App
	db     *sqlx.DB
	events *recorder
}

// Full app over an in-memory store, wired the same way main does it.
func newTestApp(t *testing.T, ac handlers.AppConfig) *testApp {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", PublicBaseURL: "https://bistro.test"}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	rec := &recorder{}
	app := handlers.NewApp(handlers.NewDeps(db, cfg, rec), ac)
	return &testApp{app: app, db: db, events: rec}
}

// client is one browser: it keeps the sid and csrf_ cookies between calls.
type client struct {
	t    *testing.T
	app  *fiber.App
	sid  string
	csrf string
}

func (a *testApp) browser(t *testing.T) *client {
	t.Helper()
	c := &client{t: t, app: a.app}
	resp, _ := c.get("/courses")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("warm-up GET /courses: %d", resp.StatusCode)
	}
	if c.sid == "" || c.csrf == "" {
		t.Fatalf("sid or csrf cookie missing after first visit (sid=%q csrf=%q)", c.sid, c.csrf)
	}
	return c
}

func (c *client) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()
	if c.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: c.sid})
	}
	if c.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: c.csrf})
	}
	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	for _, ck := range resp.Cookies() {
		switch ck.Name {
		case "sid":
			c.sid = ck.Value
		case "csrf_":
			c.csrf = ck.Value
		}
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (c *client) get(path string) (*http.Response, string) {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits a form with the csrf field filled in.
func (c *client) post(path string, form url.Values) (*http.Response, string) {
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", c.csrf)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) signIn(username string, chef bool) {
	c.t.Helper()
	role := "user"
	if chef {
		role = "chef"
	}
	resp, body := c.post("/profile/session", url.Values{"username": {username}, "role": {role}})
	if resp.StatusCode != http.StatusFound {
		c.t.Fatalf("sign in %s: status %d body=%s", username, resp.StatusCode, body)
	}
}

// apiCall sends a JSON request with the session token header, if any, and
// decodes the JSON reply.
func apiCall(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(handlers.SessionHeader, token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("%s %s: non-JSON reply %q", method, path, raw)
		}
	}
	return resp, out
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}
