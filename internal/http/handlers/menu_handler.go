package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"bistro/internal/domain"
	applog "bistro/internal/log"
	"bistro/internal/nav"
	"bistro/internal/services"
	"bistro/internal/validate"
)

type MenuHandler struct {
	Catalog *services.CatalogService
	Cart    *services.CartService
}

// menuState is what the carousel hands to itself across requests: the
// category filter, the course and the current slide.
type menuState struct {
	FilterBy string
	CourseID string
	Index    string
}

func menuStateFrom(get func(key string, def ...string) string) menuState {
	return menuState{
		FilterBy: get(nav.ParamFilterBy),
		CourseID: get(nav.ParamCourseID),
		Index:    get(nav.ParamIndex),
	}
}

func (s menuState) values() url.Values {
	return nav.With(nav.ParamFilterBy, s.FilterBy, nav.ParamCourseID, s.CourseID, nav.ParamIndex, s.Index)
}

func (s menuState) URL() string { return nav.Route(nav.UserMenu, s.values()) }

func (s menuState) at(i int) menuState {
	s.Index = strconv.Itoa(i)
	return s
}

type chip struct {
	Label  string
	URL    string
	Active bool
}

func (h *MenuHandler) Menu(c *fiber.Ctx) error {
	st := menuStateFrom(c.Query)

	var filter domain.Category
	if st.FilterBy != "" {
		cat, ok := domain.ParseCategory(st.FilterBy)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "filterBy", "value": st.FilterBy})
			st.FilterBy = ""
		}
		filter = cat
	}
	dishes, err := h.Catalog.Dishes(filter)
	if err != nil {
		applog.Error(c, "menu.load", err, nil)
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not load the menu. Please retry."})
	}
	courses, err := h.Catalog.Courses()
	if err != nil {
		applog.Error(c, "menu.load", err, nil)
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not load the menu. Please retry."})
	}

	courseTitle := ""
	if id, ok := validate.DishID(st.CourseID); ok {
		kept := []domain.Dish{}
		for _, d := range dishes {
			if d.CourseID == id {
				kept = append(kept, d)
			}
		}
		dishes = kept
		for _, co := range courses {
			if co.ID == id {
				courseTitle = co.Title
			}
		}
	} else {
		st.CourseID = ""
	}

	idx, _ := strconv.Atoi(st.Index)
	if idx < 0 || idx >= len(dishes) {
		idx = 0
	}
	st = st.at(idx)

	data := fiber.Map{
		"State":       st,
		"Total":       len(dishes),
		"Position":    idx + 1,
		"CourseTitle": courseTitle,
		"Filters":     h.filterChips(st),
		"Courses":     courseChips(st, courses),
	}
	if len(dishes) > 0 {
		data["Dish"] = dishes[idx]
		if idx > 0 {
			data["PrevURL"] = st.at(idx - 1).URL()
		}
		if idx < len(dishes)-1 {
			data["NextURL"] = st.at(idx + 1).URL()
		}
	}

	cv, err := h.Cart.View(currentSession(c).ID)
	if err != nil {
		applog.Error(c, "cart.load", err, nil)
		return render(c.Status(fiber.StatusInternalServerError), "notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	data["Lines"] = cv.Lines()
	data["Subtotal"] = cv.Subtotal()
	data["ItemCount"] = cv.ItemCount()
	return render(c, "menu", data)
}

func (h *MenuHandler) filterChips(st menuState) []chip {
	all := st
	all.FilterBy, all.Index = "", ""
	out := []chip{{Label: "All", URL: all.URL(), Active: st.FilterBy == ""}}
	for _, cat := range domain.Categories() {
		next := st
		next.FilterBy, next.Index = string(cat), ""
		out = append(out, chip{Label: string(cat), URL: next.URL(), Active: st.FilterBy == string(cat)})
	}
	return out
}

func courseChips(st menuState, courses []domain.Course) []chip {
	all := st
	all.CourseID, all.Index = "", ""
	out := []chip{{Label: "All courses", URL: all.URL(), Active: st.CourseID == ""}}
	for _, co := range courses {
		next := st
		next.CourseID, next.Index = strconv.Itoa(co.ID), ""
		out = append(out, chip{Label: co.Title, URL: next.URL(), Active: st.CourseID == next.CourseID})
	}
	return out
}
