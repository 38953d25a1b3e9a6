package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "bistro/internal/log"
	"bistro/internal/nav"
	"bistro/internal/services"
	"bistro/internal/session"
	"bistro/internal/validate"
)

type ProfileHandler struct {
	Sessions *services.SessionService
}

func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	return render(c, "profile", fiber.Map{
		"Form":   validate.SessionInput{},
		"Errors": map[string]string{},
	})
}

// Start signs the session in and sends chefs to the private menu and
// everyone else to the full menu.
func (h *ProfileHandler) Start(c *fiber.Ctx) error {
	sid := currentSession(c).ID
	in := validate.SessionInput{
		Username: c.FormValue("username"),
		Chef:     c.FormValue("role") == "chef",
	}
	sess, err := h.Sessions.Start(sid, in)
	var fails validate.Failures
	if errors.As(err, &fails) {
		applog.Security(c, "session.start.fail", map[string]any{"fields": fails.Map()})
		return render(c.Status(fiber.StatusUnprocessableEntity), "profile", fiber.Map{
			"Form":   in,
			"Errors": fails.Map(),
			"Open":   true,
		})
	}
	if err != nil {
		return err
	}
	setSession(c, sess)
	applog.Audit(c, "session.start", map[string]any{"username": sess.Username(), "chef": sess.IsChef()})
	return c.Redirect(nav.Path(session.Destination(sess, session.Started)))
}

func (h *ProfileHandler) Guest(c *fiber.Ctx) error {
	sid := currentSession(c).ID
	if err := h.Sessions.Guest(sid); err != nil {
		return err
	}
	setSession(c, session.Session{ID: sid})
	applog.Audit(c, "session.guest", nil)
	return c.Redirect(nav.Path(session.Destination(session.Session{ID: sid}, session.Guest)))
}

func (h *ProfileHandler) End(c *fiber.Ctx) error {
	sid := currentSession(c).ID
	if err := h.Sessions.End(sid); err != nil {
		return err
	}
	setSession(c, session.Session{ID: sid})
	applog.Audit(c, "session.end", nil)
	return c.Redirect(nav.Path(session.Destination(session.Session{ID: sid}, session.Ended)))
}

// Continue is the "Go to Chef Dashboard" / "Browse Menu" button.
func (h *ProfileHandler) Continue(c *fiber.Ctx) error {
	return c.Redirect(nav.Path(session.Destination(currentSession(c), session.Continued)))
}
