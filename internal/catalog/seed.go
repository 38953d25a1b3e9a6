package catalog

import (
	"github.com/shopspring/decimal"

	"bistro/internal/domain"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Seed is the mock menu loaded at startup.
func Seed() []domain.Course {
	return []domain.Course{
		{
			ID:    1,
			Title: "Italian Cuisine",
			Dishes: []domain.Dish{
				{
					ID:          1,
					CourseID:    1,
					Title:       "Spaghetti Carbonara",
					Description: "Classic Roman pasta dish with eggs, cheese, pancetta, and black pepper",
					Price:       price("18.99"),
					Category:    domain.HotPlates,
					PrepTime:    "25 mins",
					Calories:    650,
					Difficulty:  "Medium",
					Ingredients: []string{"Spaghetti", "Eggs", "Pecorino Romano cheese", "Pancetta", "Black pepper", "Salt"},
					ChefTip:     "Use fresh eggs and grate the cheese finely for best results",
					Image:       "carbonara.jpg",
				},
				{
					ID:          2,
					CourseID:    1,
					Title:       "Margherita Pizza",
					Description: "Neapolitan pizza with San Marzano tomatoes, fresh mozzarella, basil, and olive oil",
					Price:       price("16.99"),
					Category:    domain.BakedGoods,
					PrepTime:    "15 mins",
					Calories:    850,
					Difficulty:  "Easy",
					Ingredients: []string{"Pizza dough", "San Marzano tomatoes", "Fresh mozzarella", "Fresh basil", "Extra virgin olive oil", "Salt"},
					ChefTip:     "Cook in a very hot oven for authentic Neapolitan crust",
					Image:       "pizza.jpg",
				},
				{
					ID:          3,
					CourseID:    1,
					Title:       "Tiramisu",
					Description: "Classic Italian dessert with coffee-soaked ladyfingers and mascarpone cream",
					Price:       price("8.99"),
					Category:    domain.ColdPlates,
					PrepTime:    "30 mins + chilling",
					Calories:    420,
					Difficulty:  "Medium",
					Ingredients: []string{"Ladyfingers", "Espresso coffee", "Mascarpone cheese", "Eggs", "Sugar", "Cocoa powder"},
					ChefTip:     "Chill for at least 4 hours for best flavor development",
					Image:       "tiramisu.jpg",
				},
			},
		},
		{
			ID:    2,
			Title: "Japanese Cuisine",
			Dishes: []domain.Dish{
				{
					ID:          4,
					CourseID:    2,
					Title:       "Salmon Sashimi",
					Description: "Fresh Atlantic salmon sliced thin and served with soy sauce and wasabi",
					Price:       price("22.99"),
					Category:    domain.ColdPlates,
					PrepTime:    "10 mins",
					Calories:    280,
					Difficulty:  "Expert",
					Ingredients: []string{"Fresh salmon fillet", "Soy sauce", "Wasabi", "Pickled ginger", "Shiso leaves"},
					ChefTip:     "Use the sharpest knife possible for clean cuts",
					Image:       "sashimi.jpg",
				},
				{
					ID:          5,
					CourseID:    2,
					Title:       "Chicken Teriyaki",
					Description: "Grilled chicken glazed with sweet teriyaki sauce, served with steamed rice",
					Price:       price("19.99"),
					Category:    domain.HotPlates,
					PrepTime:    "20 mins",
					Calories:    520,
					Difficulty:  "Easy",
					Ingredients: []string{"Chicken thighs", "Soy sauce", "Mirin", "Sake", "Sugar", "Ginger", "Garlic"},
					ChefTip:     "Marinate the chicken for at least 30 minutes for deeper flavor",
					Image:       "teriyaki.jpg",
				},
			},
		},
	}
}
