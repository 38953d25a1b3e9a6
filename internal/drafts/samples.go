package drafts

import (
	"time"

	"github.com/shopspring/decimal"

	"bistro/internal/domain"
)

// Samples are the drafts a new chef session starts with, newest first.
// Ids are fresh per call so two sessions never share one.
func Samples(newID func() string) []domain.Draft {
	day := func(s string) time.Time {
		t, _ := time.Parse(time.DateOnly, s)
		return t
	}
	mk := func(title, desc, price string, c domain.Category, ingredients string, mins int, created string) domain.Draft {
		ts := day(created)
		return domain.Draft{
			ID:          newID(),
			Title:       title,
			Description: desc,
			Price:       decimal.RequireFromString(price),
			Category:    c,
			Ingredients: ingredients,
			PrepMinutes: mins,
			Status:      domain.DraftStatus,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
	}
	return []domain.Draft{
		mk("Braised Lamb Shank",
			"Tender lamb slow-cooked in red wine and herbs",
			"34.99", domain.HotPlates,
			"Lamb shank, red wine, fresh rosemary, garlic, carrots, potatoes",
			180, "2024-01-15"),
		mk("Smoked Salmon Platter",
			"House-smoked salmon with capers, red onion and crème fraîche",
			"22.99", domain.ColdPlates,
			"Smoked salmon, capers, red onion, crème fraîche, lemon, dill, rye bread",
			15, "2024-01-10"),
		mk("Chocolate Éclairs",
			"Choux pastry filled with vanilla cream and chocolate glaze",
			"7.99", domain.BakedGoods,
			"Choux pastry, vanilla pastry cream, dark chocolate, cream, powdered sugar",
			120, "2024-01-05"),
	}
}
