package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bistro/internal/log"
	"bistro/internal/nav"
)

// RequireChef shows the access-denied screen to anyone without a chef
// session. The only way out it offers is back to the course browser.
func RequireChef() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := currentSession(c)
		if !sess.CanAuthorDrafts() {
			applog.Security(c, "access.denied.chef", map[string]any{"sid": sess.ID, "signed_in": sess.Active()})
			return render(c.Status(fiber.StatusForbidden), "access_denied", fiber.Map{
				"BackURL": nav.Path(nav.Courses),
			})
		}
		return c.Next()
	}
}

// signInRequired is the prompt shown when a guest tries something that
// needs a user.
func signInRequired(c *fiber.Ctx, action string) error {
	applog.Security(c, "access.denied.guest", map[string]any{"action": action})
	return render(c.Status(fiber.StatusUnauthorized), "signin_required", fiber.Map{
		"ProfileURL": nav.Path(nav.Profile),
	})
}
