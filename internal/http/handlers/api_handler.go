package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bistro/internal/cart"
	"bistro/internal/domain"
	applog "bistro/internal/log"
	"bistro/internal/nav"
	"bistro/internal/prompt"
	"bistro/internal/services"
	"bistro/internal/session"
	"bistro/internal/validate"
)

// APIHandler is the JSON surface for native clients. The session travels in
// the X-Session-Token header.
type APIHandler struct {
	Catalog  *services.CatalogService
	Cart     *services.CartService
	Sessions *services.SessionService
	Receipts *services.ReceiptService
}

type cartJSON struct {
	Lines     []cart.Line `json:"lines"`
	Subtotal  string      `json:"subtotal"`
	ItemCount int         `json:"itemCount"`
}

func cartBody(c *cart.Cart) cartJSON {
	return cartJSON{Lines: c.Lines(), Subtotal: c.SubtotalText(), ItemCount: c.ItemCount()}
}

func apiError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func (h *APIHandler) Categories(c *fiber.Ctx) error {
	q := ""
	if raw := c.Query(nav.ParamQuery); strings.TrimSpace(raw) != "" {
		var ok bool
		if q, ok = validate.Q(raw); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q"})
			return apiError(c, fiber.StatusBadRequest, "invalid query")
		}
	}
	sums, err := h.Catalog.Summaries(q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": sums})
}

func (h *APIHandler) Courses(c *fiber.Ctx) error {
	courses, err := h.Catalog.Courses()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func (h *APIHandler) Dishes(c *fiber.Ctx) error {
	var filter domain.Category
	if raw := c.Query(nav.ParamFilterBy); raw != "" {
		cat, ok := domain.ParseCategory(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "filterBy", "value": raw})
			return apiError(c, fiber.StatusBadRequest, "unknown category")
		}
		filter = cat
	}
	dishes, err := h.Catalog.Dishes(filter)
	if err != nil {
		return err
	}
	avg, err := h.Catalog.AveragePrice(filter)
	if err != nil {
		return err
	}
	body := fiber.Map{"dishes": dishes, "count": len(dishes)}
	if filter != "" {
		body["averagePrice"] = avg.StringFixed(2)
	}
	return c.JSON(body)
}

func (h *APIHandler) StartSession(c *fiber.Ctx) error {
	var in validate.SessionInput
	if err := c.BodyParser(&in); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid body")
	}
	sid := currentSession(c).ID
	sess, err := h.Sessions.Start(sid, in)
	var fails validate.Failures
	if errors.As(err, &fails) {
		applog.Security(c, "session.start.fail", map[string]any{"fields": fails.Map()})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fails.Map()})
	}
	if err != nil {
		return err
	}
	setSession(c, sess)
	applog.Audit(c, "session.start", map[string]any{"username": sess.Username(), "chef": sess.IsChef()})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":       sid,
		"user":        sess.User,
		"isChef":      sess.IsChef(),
		"destination": session.Destination(sess, session.Started),
	})
}

func (h *APIHandler) EndSession(c *fiber.Ctx) error {
	sid := currentSession(c).ID
	if err := h.Sessions.End(sid); err != nil {
		return err
	}
	applog.Audit(c, "session.end", nil)
	return c.JSON(fiber.Map{"destination": session.Destination(session.Session{}, session.Ended)})
}

func (h *APIHandler) Guest(c *fiber.Ctx) error {
	sid := currentSession(c).ID
	if err := h.Sessions.Guest(sid); err != nil {
		return err
	}
	applog.Audit(c, "session.guest", nil)
	return c.JSON(fiber.Map{"destination": session.Destination(session.Session{}, session.Guest)})
}

func (h *APIHandler) ShowCart(c *fiber.Ctx) error {
	cv, err := h.Cart.View(currentSession(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(cartBody(cv))
}

func (h *APIHandler) AddItem(c *fiber.Ctx) error {
	var body struct {
		DishID int `json:"dishId"`
	}
	if err := c.BodyParser(&body); err != nil || body.DishID <= 0 {
		applog.Security(c, "validation.fail", map[string]any{"field": "dishId"})
		return apiError(c, fiber.StatusBadRequest, "dishId is required")
	}
	sess := currentSession(c)
	line, err := h.Cart.Add(sess, body.DishID)
	switch {
	case errors.Is(err, session.ErrSignInRequired):
		applog.Security(c, "access.denied.guest", map[string]any{"action": "cart.add"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   err.Error(),
			"profile": nav.Path(nav.Profile),
		})
	case errors.Is(err, services.ErrDishNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case err != nil:
		return err
	}
	applog.Audit(c, "cart.add", map[string]any{"dish_id": body.DishID, "qty": line.Quantity})
	return h.ShowCart(c)
}

func (h *APIHandler) UpdateItem(c *fiber.Ctx) error {
	dishID, ok := validate.DishID(c.Params("dishId"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid dishId")
	}
	var body struct {
		Delta *int `json:"delta"`
	}
	if err := c.BodyParser(&body); err != nil || body.Delta == nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "delta"})
		return apiError(c, fiber.StatusBadRequest, "delta must be an integer")
	}
	qty, found, err := h.Cart.UpdateQuantity(currentSession(c).ID, dishID, *body.Delta)
	if err != nil {
		return err
	}
	cv, err := h.Cart.View(currentSession(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"found": found, "quantity": qty, "cart": cartBody(cv)})
}

func (h *APIHandler) RemoveItem(c *fiber.Ctx) error {
	dishID, ok := validate.DishID(c.Params("dishId"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid dishId")
	}
	found, err := h.Cart.Remove(currentSession(c).ID, dishID)
	if err != nil {
		return err
	}
	cv, err := h.Cart.View(currentSession(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"found": found, "cart": cartBody(cv)})
}

// ClearCart needs ?confirm=true; without an answer it returns the prompt.
func (h *APIHandler) ClearCart(c *fiber.Ctx) error {
	sid := currentSession(c).ID
	switch prompt.Parse(c.Query("confirm")) {
	case prompt.Pending:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"confirm": prompt.ClearCart()})
	case prompt.Affirmed:
		if err := h.Cart.Clear(sid); err != nil {
			return err
		}
		applog.Audit(c, "cart.clear", nil)
	}
	return h.ShowCart(c)
}

func (h *APIHandler) Checkout(c *fiber.Ctx) error {
	rc, err := h.Cart.Checkout(currentSession(c).ID)
	if err != nil {
		return err
	}
	applog.Audit(c, "cart.checkout", map[string]any{"receipt_id": rc.ID, "subtotal": rc.Subtotal.StringFixed(2)})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"receipt":  rc,
		"subtotal": rc.Subtotal.StringFixed(2),
		"url":      h.Receipts.URL(rc.ID),
	})
}
