package repos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"bistro/internal/domain"
)

type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

type dishRow struct {
	domain.Dish
	IngredientsJSON string `db:"ingredients_json"`
}

func (r dishRow) dish() (domain.Dish, error) {
	d := r.Dish
	d.Ingredients = []string{}
	if r.IngredientsJSON != "" {
		if err := json.Unmarshal([]byte(r.IngredientsJSON), &d.Ingredients); err != nil {
			return domain.Dish{}, err
		}
	}
	return d, nil
}

const dishCols = `id, course_id, title, description, price, category, prep_time,
    calories, difficulty, ingredients_json, chef_tip, image`

// Dishes lists the whole menu in carousel order (course, then position).
func (r *CatalogRepo) Dishes() ([]domain.Dish, error) {
	var rows []dishRow
	if err := r.db.Select(&rows, `
	  SELECT `+dishCols+`
	  FROM dishes
	  ORDER BY course_id, position
	`); err != nil {
		return nil, err
	}
	out := make([]domain.Dish, 0, len(rows))
	for _, row := range rows {
		d, err := row.dish()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *CatalogRepo) Dish(id int) (domain.Dish, error) {
	var row dishRow
	if err := r.db.Get(&row, `SELECT `+dishCols+` FROM dishes WHERE id = ?`, id); err != nil {
		return domain.Dish{}, err
	}
	return row.dish()
}

// Courses returns every course with its dishes attached.
func (r *CatalogRepo) Courses() ([]domain.Course, error) {
	var out []domain.Course
	if err := r.db.Select(&out, `SELECT id, title FROM courses ORDER BY id`); err != nil {
		return nil, err
	}
	dishes, err := r.Dishes()
	if err != nil {
		return nil, err
	}
	byCourse := map[int][]domain.Dish{}
	for _, d := range dishes {
		byCourse[d.CourseID] = append(byCourse[d.CourseID], d)
	}
	for i := range out {
		out[i].Dishes = byCourse[out[i].ID]
		if out[i].Dishes == nil {
			out[i].Dishes = []domain.Dish{}
		}
	}
	return out, nil
}
