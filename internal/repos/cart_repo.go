package repos

import (
	"github.com/jmoiron/sqlx"

	"bistro/internal/cart"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) DB() *sqlx.DB { return r.db }

// Load rebuilds the session's cart in display order.
func (r *CartRepo) Load(q Querier, sessionID string) (*cart.Cart, error) {
	var lines []cart.Line
	if err := sqlx.Select(q, &lines, `
	  SELECT dish_id AS dishid, title, price, category, image, qty AS quantity
	  FROM cart_lines
	  WHERE session_id = ?
	  ORDER BY position
	`, sessionID); err != nil {
		return nil, err
	}
	return cart.New(lines...), nil
}

// Save replaces the stored lines with c's. The session row must exist.
func (r *CartRepo) Save(q Querier, sessionID string, c *cart.Cart) error {
	if _, err := q.Exec(`DELETE FROM cart_lines WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	for i, l := range c.Lines() {
		if _, err := q.Exec(`
			INSERT INTO cart_lines(session_id,dish_id,position,title,price,category,image,qty)
			VALUES(?,?,?,?,?,?,?,?)
		`, sessionID, l.DishID, i, l.Title, l.Price.String(), string(l.Category), l.Image, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}
