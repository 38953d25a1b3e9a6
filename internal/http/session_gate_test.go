package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/drafts"
	"bistro/internal/http/handlers"
	"bistro/internal/repos"
)

func TestProfileStartRejectsShortUsername(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	c := a.browser(t)

	resp, body := c.post("/profile/session", url.Values{"username": {"al"}, "role": {"user"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Username must be at least 3 characters")

	// Still a guest.
	resp, body = c.get("/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Start Session")
	assert.Contains(t, body, "Continue as Guest")
}

func TestSessionNavigation(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})

	cases := []struct {
		name     string
		chef     bool
		wantNext string
	}{
		{"diner", false, "/menu"},
		{"chef", true, "/private-menu"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := a.browser(t)
			role := "user"
			if tc.chef {
				role = "chef"
			}
			resp, _ := c.post("/profile/session", url.Values{"username": {"casey"}, "role": {role}})
			require.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, tc.wantNext, resp.Header.Get("Location"))

			resp, _ = c.get("/profile/continue")
			assert.Equal(t, tc.wantNext, resp.Header.Get("Location"))

			resp, body := c.get("/profile")
			assert.Contains(t, body, "casey")
			if tc.chef {
				assert.Contains(t, body, "Go to Chef Dashboard")
			} else {
				assert.Contains(t, body, "Browse Menu")
			}

			resp, _ = c.post("/profile/end", nil)
			require.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, "/courses", resp.Header.Get("Location"))

			_, body = c.get("/profile")
			assert.Contains(t, body, "Start Session")
		})
	}
}

func TestGuestGoesToCourses(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	c := a.browser(t)
	c.signIn("casey", false)

	resp, _ := c.post("/profile/guest", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/courses", resp.Header.Get("Location"))

	resp, _ = c.get("/profile/continue")
	assert.Equal(t, "/courses", resp.Header.Get("Location"))
}

func TestPrivateMenuDeniedAndLogged(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	c := a.browser(t)

	var resp *http.Response
	var body string
	entries := captureLogs(t, func() {
		resp, body = c.get("/private-menu")
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "Access Denied")
	assert.Contains(t, body, "only available for chefs")
	assert.Contains(t, body, `href="/courses"`)
	assert.True(t, hasAction(entries, "access.denied.chef"), "expected access.denied.chef log")

	// Mutations behind the gate are refused too.
	resp, _ = c.post("/private-menu/drafts", url.Values{"title": {"x"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// A diner never sees drafts, even when some are stored under their session.
func TestDinerWithStoredDraftsStillDenied(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	c := a.browser(t)
	c.signIn("dana", false)

	require.NoError(t, repos.NewDraftRepo(a.db).Save(a.db, c.sid, drafts.Samples(uuid.NewString)))

	resp, body := c.get("/private-menu")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "Access Denied")
	assert.NotContains(t, body, "Braised Lamb Shank")
}

func TestChefSeesSampleDrafts(t *testing.T) {
	a := newTestApp(t, handlers.AppConfig{})
	c := a.browser(t)
	c.signIn("gordon", true)

	resp, body := c.get("/private-menu")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, title := range []string{"Braised Lamb Shank", "Smoked Salmon Platter", "Chocolate Éclairs"} {
		assert.Contains(t, body, title)
	}
	assert.Contains(t, body, "3 drafts across 3 categories")
	// Newest first.
	assert.Less(t, strings.Index(body, "Braised Lamb Shank"), strings.Index(body, "Chocolate Éclairs"))

	// Ending the session closes the gate again.
	c.post("/profile/end", nil)
	resp, _ = c.get("/private-menu")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
