package cart_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/cart"
	"bistro/internal/domain"
)

func dish(id int, p string) domain.Dish {
	return domain.Dish{ID: id, Title: "dish", Price: decimal.RequireFromString(p), Category: domain.HotPlates}
}

func TestAddSameDishTwiceMergesLine(t *testing.T) {
	c := cart.New()
	c.Add(dish(1, "10.00"))
	l := c.Add(dish(1, "10.00"))

	assert.Equal(t, 2, l.Quantity)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.ItemCount())
	assert.Equal(t, "20.00", c.SubtotalText())
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := cart.New()
	c.Add(dish(3, "1"))
	c.Add(dish(1, "1"))
	c.Add(dish(3, "1"))
	c.Add(dish(2, "1"))

	var ids []int
	for _, l := range c.Lines() {
		ids = append(ids, l.DishID)
	}
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestUpdateQuantity(t *testing.T) {
	c := cart.New()
	c.Add(dish(1, "2.50"))

	q, ok := c.UpdateQuantity(1, 4)
	assert.True(t, ok)
	assert.Equal(t, 5, q)

	q, ok = c.UpdateQuantity(1, -5)
	assert.True(t, ok)
	assert.Equal(t, 0, q)
	assert.Zero(t, c.Len(), "line at zero must be removed, not stored")

	_, ok = c.UpdateQuantity(99, 1)
	assert.False(t, ok)
}

func TestUpdateQuantityOvershootRemoves(t *testing.T) {
	c := cart.New()
	c.Add(dish(1, "1"))
	c.Add(dish(2, "1"))

	_, ok := c.UpdateQuantity(1, -7)
	require.True(t, ok)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Lines()[0].DishID)
}

func TestUpdateQuantityZeroDeltaKeepsLine(t *testing.T) {
	c := cart.New()
	c.Add(dish(1, "3"))
	c.Add(dish(1, "3"))

	q, ok := c.UpdateQuantity(1, 0)
	assert.True(t, ok)
	assert.Equal(t, 2, q)

	q, ok = c.UpdateQuantity(7, 0)
	assert.False(t, ok)
	assert.Zero(t, q)
}

func TestUpdateQuantityHugeDeltaSaturates(t *testing.T) {
	c := cart.New()
	c.Add(dish(1, "3"))

	q, ok := c.UpdateQuantity(1, math.MaxInt)
	require.True(t, ok)
	assert.Equal(t, math.MaxInt, q)
	assert.Equal(t, 1, c.Len())
}

func TestRemoveAndClear(t *testing.T) {
	c := cart.New()
	c.Add(dish(1, "3"))
	c.Add(dish(2, "4"))

	assert.True(t, c.Remove(1))
	assert.False(t, c.Remove(1))
	assert.Equal(t, "4.00", c.SubtotalText())

	c.Clear()
	assert.True(t, c.Subtotal().IsZero())
	assert.Zero(t, c.ItemCount())
}

func TestPriceIsSnapshotAtAdd(t *testing.T) {
	c := cart.New()
	d := dish(1, "5.00")
	c.Add(d)

	d.Price = decimal.RequireFromString("50.00")
	c.Add(d)

	assert.Equal(t, "10.00", c.SubtotalText())
}

func TestNewDropsNonPositiveLines(t *testing.T) {
	c := cart.New(
		cart.Line{DishID: 1, Price: decimal.NewFromInt(1), Quantity: 0},
		cart.Line{DishID: 2, Price: decimal.NewFromInt(1), Quantity: -3},
		cart.Line{DishID: 3, Price: decimal.NewFromInt(1), Quantity: 2},
	)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Lines()[0].DishID)
}

// Random add/update sequences never leave a non-positive line and the
// derived totals always match the lines.
func TestRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	prices := []string{"0.99", "18.99", "22.99", "7.50", "0"}

	for run := 0; run < 200; run++ {
		c := cart.New()
		for step := 0; step < 40; step++ {
			id := rng.Intn(len(prices))
			if rng.Intn(2) == 0 {
				c.Add(dish(id, prices[id]))
			} else {
				c.UpdateQuantity(id, rng.Intn(7)-3)
			}

			count := 0
			sum := decimal.Zero
			for _, l := range c.Lines() {
				require.Positive(t, l.Quantity)
				count += l.Quantity
				sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
			}
			require.Equal(t, count, c.ItemCount())
			require.True(t, sum.Equal(c.Subtotal()))
			require.False(t, c.Subtotal().IsNegative())
		}
	}
}

func TestCheckoutScenario(t *testing.T) {
	c := cart.New()
	c.Add(dish(5, "22.99"))
	assert.Equal(t, "22.99", c.SubtotalText())

	c.UpdateQuantity(5, 1)
	q, _ := c.UpdateQuantity(5, 1)
	assert.Equal(t, 3, q)
	assert.Equal(t, "68.97", c.SubtotalText())

	r := c.Checkout()
	assert.Equal(t, "68.97", r.SubtotalText())
	assert.Equal(t, 3, r.ItemCount)
	require.Len(t, r.Lines, 1)
	assert.Zero(t, c.Len())
	assert.Equal(t, "0.00", c.SubtotalText())
}

func TestCheckoutEmptyCart(t *testing.T) {
	r := cart.New().Checkout()
	assert.True(t, r.Subtotal.IsZero())
	assert.Empty(t, r.Lines)
}
