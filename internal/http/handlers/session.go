package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "bistro/internal/log"
	"bistro/internal/services"
	"bistro/internal/session"
	"bistro/internal/validate"
)

const (
	sessionCookie = "sid"
	SessionHeader = "X-Session-Token"
	localSession  = "session"
)

// ensureSID returns the caller's session id: the API header first, then the
// cookie, else a fresh one that is handed back in both.
func ensureSID(c *fiber.Ctx) string {
	if sid, ok := validate.ID(c.Get(SessionHeader)); ok {
		return sid
	}
	if sid, ok := validate.ID(c.Cookies(sessionCookie)); ok {
		return sid
	}
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // enable true behind TLS
	})
	c.Set(SessionHeader, sid)
	return sid
}

// WithSession attaches the caller's session to every request.
func WithSession(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Current(ensureSID(c))
		if err != nil {
			return err
		}
		setSession(c, sess)
		return c.Next()
	}
}

func setSession(c *fiber.Ctx, sess session.Session) {
	c.Locals(localSession, sess)
	if sess.User != nil {
		c.Locals(applog.LocalUserID, sess.User.ID)
	} else {
		c.Locals(applog.LocalUserID, "")
	}
}

func currentSession(c *fiber.Ctx) session.Session {
	s, _ := c.Locals(localSession).(session.Session)
	return s
}
