// Package catalog holds the static menu: typed seed records, load-time
// validation and the pure read-side helpers (filtering, average price).
package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"bistro/internal/domain"
)

var descriptions = map[domain.Category]string{
	domain.HotPlates:  "Hearty dishes served straight from the pass",
	domain.ColdPlates: "Chilled starters, raw bar and desserts",
	domain.BakedGoods: "Oven-fired breads, pizzas and pastries",
	domain.Beverages:  "Drinks and refreshments",
}

func Description(c domain.Category) string { return descriptions[c] }

// Validate rejects a seed that breaks the catalog invariants.
func Validate(courses []domain.Course) error {
	seen := map[int]bool{}
	for _, co := range courses {
		if strings.TrimSpace(co.Title) == "" {
			return fmt.Errorf("course %d: empty title", co.ID)
		}
		for _, d := range co.Dishes {
			if seen[d.ID] {
				return fmt.Errorf("dish %d: duplicate id", d.ID)
			}
			seen[d.ID] = true
			if strings.TrimSpace(d.Title) == "" {
				return fmt.Errorf("dish %d: empty title", d.ID)
			}
			if d.Price.IsNegative() {
				return fmt.Errorf("dish %d: negative price %s", d.ID, d.Price)
			}
			if _, ok := domain.ParseCategory(string(d.Category)); !ok {
				return fmt.Errorf("dish %d: unknown category %q", d.ID, d.Category)
			}
		}
	}
	return nil
}

// Dishes flattens courses in carousel order.
func Dishes(courses []domain.Course) []domain.Dish {
	var out []domain.Dish
	for _, co := range courses {
		out = append(out, co.Dishes...)
	}
	return out
}

// FilterByCategory keeps the dishes filed under c, preserving order.
func FilterByCategory(dishes []domain.Dish, c domain.Category) []domain.Dish {
	out := []domain.Dish{}
	for _, d := range dishes {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// AveragePrice is the mean price of the dishes filed under c; zero when none are.
func AveragePrice(dishes []domain.Dish, c domain.Category) decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for _, d := range dishes {
		if d.Category == c {
			sum = sum.Add(d.Price)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// Summaries builds the course browser cards, optionally narrowed by a
// case-insensitive query over label and description.
func Summaries(dishes []domain.Dish, q string) []domain.CategorySummary {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []domain.CategorySummary{}
	for _, c := range domain.Categories() {
		desc := Description(c)
		if q != "" && !strings.Contains(strings.ToLower(string(c)), q) && !strings.Contains(strings.ToLower(desc), q) {
			continue
		}
		out = append(out, domain.CategorySummary{
			Category:     c,
			Slug:         c.Slug(),
			Description:  desc,
			DishCount:    len(FilterByCategory(dishes, c)),
			AveragePrice: AveragePrice(dishes, c),
		})
	}
	return out
}
