package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"bistro/internal/domain"
	applog "bistro/internal/log"
	"bistro/internal/nav"
	"bistro/internal/services"
	"bistro/internal/validate"
)

type CourseHandler struct {
	Catalog *services.CatalogService
}

func (h *CourseHandler) Home(c *fiber.Ctx) error {
	return render(c, "welcome", fiber.Map{
		"CoursesURL":     nav.Path(nav.Courses),
		"MenuURL":        nav.Path(nav.UserMenu),
		"PrivateMenuURL": nav.Path(nav.PrivateMenu),
		"ProfileURL":     nav.Path(nav.Profile),
	})
}

type courseCard struct {
	domain.CategorySummary
	URL string
}

// Courses is the category browser: one card per label with its average
// price, optionally narrowed by ?q=.
func (h *CourseHandler) Courses(c *fiber.Ctx) error {
	rawQ := c.Query(nav.ParamQuery)
	q := ""
	errMsg := ""
	if strings.TrimSpace(rawQ) != "" {
		var ok bool
		if q, ok = validate.Q(rawQ); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			c.Status(fiber.StatusBadRequest)
			q, errMsg = "", "Enter a valid keyword (letters/numbers only)"
		}
	}

	sums, err := h.Catalog.Summaries(q)
	if err != nil {
		applog.Error(c, "courses.load", err, nil)
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not load the menu. Please retry."})
	}
	cards := make([]courseCard, 0, len(sums))
	for _, s := range sums {
		cards = append(cards, courseCard{
			CategorySummary: s,
			URL:             nav.Route(nav.UserMenu, nav.With(nav.ParamFilterBy, string(s.Category))),
		})
	}
	return render(c, "courses", fiber.Map{"Q": q, "Err": errMsg, "Cards": cards, "Count": len(cards)})
}
