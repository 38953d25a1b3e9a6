package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "bistro/internal/log"
	"bistro/web"
)

// AppConfig holds the knobs that differ between the binary and tests.
type AppConfig struct {
	// RateMax requests per RateWindow per client; zero disables the limiter.
	RateMax    int
	RateWindow time.Duration
	// RateStorage shares limiter counters between instances; nil keeps them
	// in process.
	RateStorage fiber.Storage
	CORSOrigins string
	AccessLog   bool
}

func isAPI(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/api/") }

// NewApp builds the Fiber app with the middleware chain and every route.
func NewApp(d *Deps, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(applog.LocalStartedAt, time.Now())
		return c.Next()
	})
	if cfg.AccessLog {
		app.Use(logger.New())
	}
	app.Use(helmet.New())
	if cfg.CORSOrigins != "" {
		app.Use("/api", cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowHeaders:  "Content-Type, " + SessionHeader,
			ExposeHeaders: SessionHeader,
		}))
	}
	if cfg.RateMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateMax,
			Expiration: cfg.RateWindow,
			Storage:    cfg.RateStorage,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/healthz"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.limit.hit", nil)
				if isAPI(c) {
					return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
				}
				return render(c.Status(fiber.StatusTooManyRequests), "notfound", fiber.Map{"Message": "Too many requests. Please slow down."})
			},
		}))
	}
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf",
		// API clients carry the session in a header, not a cookie.
		Next: isAPI,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"path": c.Path()})
			return render(c.Status(fiber.StatusForbidden), "notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	Register(app, d)
	return app
}

// Register mounts the screens, the JSON API and the 404 fallback.
func Register(app *fiber.App, d *Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	app.Use(WithSession(d.Sessions))

	app.Get("/", d.CourseHandler.Home)
	app.Get("/courses", d.CourseHandler.Courses)
	app.Get("/menu", d.MenuHandler.Menu)

	app.Post("/cart", d.CartHandler.Add)
	app.Post("/cart/update", d.CartHandler.Update)
	app.Post("/cart/remove", d.CartHandler.Remove)
	app.Post("/cart/clear", d.CartHandler.Clear)
	app.Post("/checkout", d.CartHandler.Checkout)
	app.Get("/receipt/:id", d.ReceiptHandler.View)
	app.Get("/receipt/:id/qrcode", d.ReceiptHandler.QRCode)

	chef := app.Group("/private-menu", RequireChef())
	chef.Get("/", d.DraftHandler.Board)
	chef.Post("/drafts", d.DraftHandler.Create)
	chef.Post("/drafts/:id", d.DraftHandler.Update)
	chef.Post("/drafts/:id/delete", d.DraftHandler.Delete)
	chef.Post("/drafts/:id/publish", d.DraftHandler.Publish)

	app.Get("/profile", d.ProfileHandler.Show)
	app.Post("/profile/session", d.ProfileHandler.Start)
	app.Post("/profile/guest", d.ProfileHandler.Guest)
	app.Post("/profile/end", d.ProfileHandler.End)
	app.Get("/profile/continue", d.ProfileHandler.Continue)

	api := app.Group("/api/v1")
	api.Get("/categories", d.APIHandler.Categories)
	api.Get("/courses", d.APIHandler.Courses)
	api.Get("/dishes", d.APIHandler.Dishes)
	api.Post("/session", d.APIHandler.StartSession)
	api.Delete("/session", d.APIHandler.EndSession)
	api.Post("/session/guest", d.APIHandler.Guest)
	api.Get("/cart", d.APIHandler.ShowCart)
	api.Post("/cart/items", d.APIHandler.AddItem)
	api.Patch("/cart/items/:dishId", d.APIHandler.UpdateItem)
	api.Delete("/cart/items/:dishId", d.APIHandler.RemoveItem)
	api.Delete("/cart", d.APIHandler.ClearCart)
	api.Post("/cart/checkout", d.APIHandler.Checkout)

	app.Use(func(c *fiber.Ctx) error {
		if isAPI(c) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return notFound(c, "Page not found")
	})
}
