package handlers

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"bistro/internal/domain"
	applog "bistro/internal/log"
	"bistro/internal/nav"
	"bistro/internal/prompt"
	"bistro/internal/services"
	"bistro/internal/validate"
)

// DraftHandler serves the private menu. Every route sits behind RequireChef.
type DraftHandler struct {
	Drafts *services.DraftService
}

var draftNotices = map[string]string{
	"created": "New draft created successfully!",
	"updated": "Draft updated successfully!",
	"deleted": "Draft deleted successfully!",
}

func boardURL(notice string) string {
	if notice == "" {
		return nav.Path(nav.PrivateMenu)
	}
	return nav.Path(nav.PrivateMenu) + "?notice=" + url.QueryEscape(notice)
}

func draftInput(c *fiber.Ctx) validate.DraftInput {
	return validate.DraftInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Category:    c.FormValue("category"),
		Ingredients: c.FormValue("ingredients"),
		PrepTime:    c.FormValue("preparationTime"),
	}
}

func inputOf(d domain.Draft) validate.DraftInput {
	return validate.DraftInput{
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price.StringFixed(2),
		Category:    string(d.Category),
		Ingredients: d.Ingredients,
		PrepTime:    fmt.Sprint(d.PrepMinutes),
	}
}

// board renders the private menu. editing is the draft being edited, if any;
// form and errs refill the form after a rejected submit.
func (h *DraftHandler) board(c *fiber.Ctx, editing *domain.Draft, form validate.DraftInput, errs validate.Failures) error {
	items, stats, err := h.Drafts.List(currentSession(c))
	if err != nil {
		return err
	}
	action := "/private-menu/drafts"
	if editing != nil {
		action += "/" + editing.ID
	}
	edits := make(map[string]string, len(items))
	for _, d := range items {
		edits[d.ID] = nav.Route(nav.PrivateMenu, nav.With(nav.ParamDishToEdit, d.ID))
	}
	return render(c, "private_menu", fiber.Map{
		"Drafts":     items,
		"EditURLs":   edits,
		"Stats":      stats,
		"Editing":    editing,
		"Form":       form,
		"FormAction": action,
		"Errors":     errs.Map(),
		"Categories": domain.Categories(),
		"Notice":     draftNotices[c.Query("notice")],
		"BackURL":    nav.Path(nav.Courses),
	})
}

// Board lists the drafts. ?dishToEdit= opens that draft in the form.
func (h *DraftHandler) Board(c *fiber.Ctx) error {
	if raw := c.Query(nav.ParamDishToEdit); raw != "" {
		if id, ok := validate.ID(raw); ok {
			d, err := h.Drafts.Get(currentSession(c), id)
			if err == nil {
				return h.board(c, &d, inputOf(d), nil)
			}
			if !errors.Is(err, services.ErrDraftNotFound) {
				return err
			}
		}
	}
	return h.board(c, nil, validate.DraftInput{}, nil)
}

func (h *DraftHandler) Create(c *fiber.Ctx) error {
	in := draftInput(c)
	d, err := h.Drafts.Create(currentSession(c), in)
	var fails validate.Failures
	if errors.As(err, &fails) {
		applog.Info(c, "draft.create.invalid", map[string]any{"fields": fails.Map()})
		c.Status(fiber.StatusUnprocessableEntity)
		return h.board(c, nil, in, fails)
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "draft.create", map[string]any{"draft_id": d.ID, "category": d.Category})
	return c.Redirect(boardURL("created"))
}

func (h *DraftHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Redirect(boardURL(""))
	}
	sess := currentSession(c)
	in := draftInput(c)
	d, err := h.Drafts.Update(sess, id, in)
	var fails validate.Failures
	switch {
	case errors.As(err, &fails):
		current, gerr := h.Drafts.Get(sess, id)
		if gerr != nil {
			return c.Redirect(boardURL(""))
		}
		c.Status(fiber.StatusUnprocessableEntity)
		return h.board(c, &current, in, fails)
	case errors.Is(err, services.ErrDraftNotFound):
		return c.Redirect(boardURL(""))
	case err != nil:
		return err
	}
	applog.Audit(c, "draft.update", map[string]any{"draft_id": d.ID})
	return c.Redirect(boardURL("updated"))
}

func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Redirect(boardURL(""))
	}
	switch prompt.Parse(c.FormValue("confirm")) {
	case prompt.Pending:
		return confirm(c, prompt.DeleteDraft(), "/private-menu/drafts/"+id+"/delete", nil, boardURL(""))
	case prompt.Cancelled:
		return c.Redirect(boardURL(""))
	}
	found, err := h.Drafts.Delete(currentSession(c), id)
	if err != nil {
		return err
	}
	applog.Audit(c, "draft.delete", map[string]any{"draft_id": id, "found": found})
	if !found {
		return c.Redirect(boardURL(""))
	}
	return c.Redirect(boardURL("deleted"))
}

func (h *DraftHandler) Publish(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Redirect(boardURL(""))
	}
	sess := currentSession(c)
	switch prompt.Parse(c.FormValue("confirm")) {
	case prompt.Pending:
		d, err := h.Drafts.Get(sess, id)
		if errors.Is(err, services.ErrDraftNotFound) {
			return c.Redirect(boardURL(""))
		}
		if err != nil {
			return err
		}
		return confirm(c, prompt.PublishDraft(d.Title, string(d.Category)), "/private-menu/drafts/"+id+"/publish", nil, boardURL(""))
	case prompt.Cancelled:
		return c.Redirect(boardURL(""))
	}
	d, found, err := h.Drafts.Publish(sess, id)
	if err != nil {
		return err
	}
	if !found {
		return c.Redirect(boardURL(""))
	}
	applog.Audit(c, "draft.publish", map[string]any{"draft_id": d.ID, "category": d.Category})
	return render(c, "published", fiber.Map{
		"Message":  fmt.Sprintf("%q has been published to the %s menu.", d.Title, d.Category),
		"MenuURL":  nav.Path(nav.Courses),
		"BoardURL": boardURL(""),
	})
}
