package handlers

import (
	"net/url"
	"sort"

	"github.com/gofiber/fiber/v2"

	"bistro/internal/prompt"
)

type hiddenField struct{ Name, Value string }

// confirm renders the prompt. Both buttons post back to action with the
// original fields plus confirm=yes or confirm=no.
func confirm(c *fiber.Ctx, p prompt.Prompt, action string, carry url.Values, backURL string) error {
	keys := make([]string, 0, len(carry))
	for k := range carry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]hiddenField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, hiddenField{Name: k, Value: carry.Get(k)})
	}
	return render(c, "confirm", fiber.Map{
		"Prompt":  p,
		"Action":  action,
		"Fields":  fields,
		"BackURL": backURL,
	})
}
