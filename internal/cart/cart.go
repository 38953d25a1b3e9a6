// Package cart is the in-memory shopping cart reducer.
//
// A line exists only while its quantity is at least one; dropping to zero or
// below removes it. Lines keep the order in which dishes were first added and
// carry the price, category and image the dish had at that moment.
package cart

import (
	"math"

	"github.com/shopspring/decimal"

	"bistro/internal/domain"
)

type Line struct {
	DishID   int             `json:"dishId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Category domain.Category `json:"category"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// Total is price × quantity for the line.
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	lines []Line
}

// New rebuilds a cart from stored lines, dropping any with a non-positive
// quantity and folding duplicates into the first occurrence.
func New(lines ...Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := c.index(l.DishID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

func (c *Cart) index(dishID int) int {
	for i, l := range c.lines {
		if l.DishID == dishID {
			return i
		}
	}
	return -1
}

// Add puts one more of d in the cart and returns the resulting line.
func (c *Cart) Add(d domain.Dish) Line {
	if i := c.index(d.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.lines[i]
	}
	l := Line{
		DishID:   d.ID,
		Title:    d.Title,
		Price:    d.Price,
		Category: d.Category,
		Image:    d.Image,
		Quantity: 1,
	}
	c.lines = append(c.lines, l)
	return l
}

// UpdateQuantity applies delta to the line for dishID. It reports the new
// quantity (zero when the line was removed) and whether the line existed.
func (c *Cart) UpdateQuantity(dishID, delta int) (int, bool) {
	i := c.index(dishID)
	if i < 0 {
		return 0, false
	}
	q := c.lines[i].Quantity + delta
	if delta > 0 && q < c.lines[i].Quantity {
		q = math.MaxInt // saturate instead of wrapping negative
	}
	if q <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return 0, true
	}
	c.lines[i].Quantity = q
	return q, true
}

// Remove drops the line for dishID; false when there was none.
func (c *Cart) Remove(dishID int) bool {
	i := c.index(dishID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

func (c *Cart) Clear() { c.lines = nil }

// Lines returns a copy in display order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// SubtotalText is the subtotal rounded to cents for display.
func (c *Cart) SubtotalText() string { return c.Subtotal().StringFixed(2) }

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Receipt is what Checkout reports before emptying the cart.
type Receipt struct {
	Subtotal  decimal.Decimal
	ItemCount int
	Lines     []Line
}

func (r Receipt) SubtotalText() string { return r.Subtotal.StringFixed(2) }

// Checkout reports the current totals and empties the cart. It never fails.
func (c *Cart) Checkout() Receipt {
	r := Receipt{Subtotal: c.Subtotal(), ItemCount: c.ItemCount(), Lines: c.Lines()}
	c.Clear()
	return r
}
