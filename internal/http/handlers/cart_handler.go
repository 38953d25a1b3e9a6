package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "bistro/internal/log"
	"bistro/internal/prompt"
	"bistro/internal/services"
	"bistro/internal/session"
	"bistro/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// Add puts one of the posted dish in the cart and returns to the carousel.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	st := menuStateFrom(c.FormValue)
	dishID, ok := validate.DishID(c.FormValue("dishId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "dishId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing dishId")
	}
	line, err := h.Cart.Add(currentSession(c), dishID)
	switch {
	case errors.Is(err, session.ErrSignInRequired):
		return signInRequired(c, "cart.add")
	case errors.Is(err, services.ErrDishNotFound):
		return notFound(c, "This dish is no longer available")
	case err != nil:
		return err
	}
	applog.Audit(c, "cart.add", map[string]any{"dish_id": dishID, "qty": line.Quantity})
	return c.Redirect(st.URL())
}

// Update applies a signed delta; the line disappears once it reaches zero.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	st := menuStateFrom(c.FormValue)
	dishID, ok := validate.DishID(c.FormValue("dishId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "dishId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing dishId")
	}
	delta, ok := validate.Delta(c.FormValue("delta"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "delta"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid delta")
	}
	qty, found, err := h.Cart.UpdateQuantity(currentSession(c).ID, dishID, delta)
	if err != nil {
		return err
	}
	applog.Info(c, "cart.update", map[string]any{"dish_id": dishID, "delta": delta, "qty": qty, "found": found})
	return c.Redirect(st.URL())
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	st := menuStateFrom(c.FormValue)
	dishID, ok := validate.DishID(c.FormValue("dishId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "dishId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing dishId")
	}
	found, err := h.Cart.Remove(currentSession(c).ID, dishID)
	if err != nil {
		return err
	}
	applog.Info(c, "cart.remove", map[string]any{"dish_id": dishID, "found": found})
	return c.Redirect(st.URL())
}

// Clear asks first; only an explicit yes empties the cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	st := menuStateFrom(c.FormValue)
	switch prompt.Parse(c.FormValue("confirm")) {
	case prompt.Pending:
		return confirm(c, prompt.ClearCart(), "/cart/clear", st.values(), st.URL())
	case prompt.Cancelled:
		return c.Redirect(st.URL())
	}
	if err := h.Cart.Clear(currentSession(c).ID); err != nil {
		return err
	}
	applog.Audit(c, "cart.clear", nil)
	return c.Redirect(st.URL())
}

func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	rc, err := h.Cart.Checkout(currentSession(c).ID)
	if err != nil {
		return err
	}
	applog.Audit(c, "cart.checkout", map[string]any{
		"receipt_id": rc.ID,
		"subtotal":   rc.Subtotal.StringFixed(2),
		"item_count": rc.ItemCount,
	})
	return c.Redirect("/receipt/" + rc.ID)
}
