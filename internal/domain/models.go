package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the fixed label a dish or draft is filed under.
type Category string

const (
	HotPlates  Category = "Hot plates"
	ColdPlates Category = "Cold plates"
	BakedGoods Category = "Baked goods"
	Beverages  Category = "Beverages"
)

var categories = []Category{HotPlates, ColdPlates, BakedGoods, Beverages}

// Categories returns the enumerated labels in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Slug is the URL form of the label ("Hot plates" -> "hot-plates").
func (c Category) Slug() string {
	b := []byte(c)
	for i, r := range b {
		switch {
		case r == ' ':
			b[i] = '-'
		case 'A' <= r && r <= 'Z':
			b[i] = r + ('a' - 'A')
		}
	}
	return string(b)
}

type Dish struct {
	ID          int             `json:"id" db:"id"`
	CourseID    int             `json:"courseId" db:"course_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    Category        `json:"category" db:"category"`
	PrepTime    string          `json:"preparationTime" db:"prep_time"`
	Calories    int             `json:"calories" db:"calories"`
	Difficulty  string          `json:"difficulty" db:"difficulty"`
	Ingredients []string        `json:"ingredients" db:"-"`
	ChefTip     string          `json:"chefTips" db:"chef_tip"`
	Image       string          `json:"image" db:"image"`
}

// Course groups dishes for the carousel (e.g. "Italian Cuisine").
type Course struct {
	ID     int    `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Dishes []Dish `json:"dishes" db:"-"`
}

// CategorySummary is one card on the course browser.
type CategorySummary struct {
	Category     Category        `json:"category"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	DishCount    int             `json:"dishCount"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
}

const DraftStatus = "draft"

// DraftFields is a validated draft submission.
type DraftFields struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Category    Category
	Ingredients string
	PrepMinutes int
}

type Draft struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Ingredients string          `json:"ingredients"`
	PrepMinutes int             `json:"preparationTime"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ReceiptLine struct {
	DishID   int             `json:"dishId"`
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type Receipt struct {
	ID        string          `json:"id"`
	SessionID string          `json:"-"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"itemCount"`
	CreatedAt time.Time       `json:"createdAt"`
	Lines     []ReceiptLine   `json:"lines"`
}
