package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "bistro/internal/log"
	"bistro/internal/nav"
	"bistro/internal/services"
	"bistro/internal/validate"
)

type ReceiptHandler struct {
	Receipts *services.ReceiptService
}

func (h *ReceiptHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Receipt not found")
	}
	sid := currentSession(c).ID
	rc, err := h.Receipts.Get(sid, id)
	if errors.Is(err, services.ErrReceiptNotFound) {
		applog.Security(c, "access.denied.receipt", map[string]any{"receipt_id": id})
		return notFound(c, "Receipt not found")
	}
	if err != nil {
		return err
	}
	recent, err := h.Receipts.Recent(sid)
	if err != nil {
		return err
	}
	return render(c, "receipt", fiber.Map{
		"Receipt": rc,
		"Recent":  recent,
		"QRURL":   "/receipt/" + rc.ID + "/qrcode",
		"MenuURL": nav.Path(nav.UserMenu),
	})
}

func (h *ReceiptHandler) QRCode(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	png, err := h.Receipts.QR(currentSession(c).ID, id)
	if errors.Is(err, services.ErrReceiptNotFound) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
	c.Type("png")
	return c.Send(png)
}
