// Package prompt models the confirmation step between intent and effect.
package prompt

import (
	"fmt"
	"strings"
)

type Prompt struct {
	Title   string
	Message string
	Affirm  string
	Cancel  string
}

// Choice is the answer to a Prompt. Anything but an explicit yes is a no.
type Choice int

const (
	Pending Choice = iota
	Cancelled
	Affirmed
)

// Parse reads a form or query value. Empty means the prompt has not been
// answered yet.
func Parse(v string) Choice {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return Pending
	case "yes", "true", "1":
		return Affirmed
	default:
		return Cancelled
	}
}

func DeleteDraft() Prompt {
	return Prompt{
		Title:   "Delete Draft",
		Message: "Are you sure you want to delete this draft?",
		Affirm:  "Delete",
		Cancel:  "Cancel",
	}
}

func PublishDraft(title, category string) Prompt {
	return Prompt{
		Title:   "Publish Dish",
		Message: fmt.Sprintf("Ready to publish %q to the %s menu?", title, category),
		Affirm:  "Publish",
		Cancel:  "Cancel",
	}
}

func ClearCart() Prompt {
	return Prompt{
		Title:   "Clear Cart",
		Message: "Remove every item from your cart?",
		Affirm:  "Clear",
		Cancel:  "Cancel",
	}
}
