package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"bistro/internal/domain"
)

type DraftRepo struct{ db *sqlx.DB }

func NewDraftRepo(db *sqlx.DB) *DraftRepo { return &DraftRepo{db: db} }

type draftRow struct {
	ID          string          `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Category    string          `db:"category"`
	Ingredients string          `db:"ingredients"`
	PrepMinutes int             `db:"prep_minutes"`
	Status      string          `db:"status"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

func (r draftRow) draft() (domain.Draft, error) {
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return domain.Draft{}, err
	}
	updated, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return domain.Draft{}, err
	}
	return domain.Draft{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    domain.Category(r.Category),
		Ingredients: r.Ingredients,
		PrepMinutes: r.PrepMinutes,
		Status:      r.Status,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

// List returns the session's drafts newest first.
func (r *DraftRepo) List(q Querier, sessionID string) ([]domain.Draft, error) {
	var rows []draftRow
	if err := sqlx.Select(q, &rows, `
	  SELECT id, title, description, price, category, ingredients, prep_minutes,
	         status, created_at, updated_at
	  FROM drafts
	  WHERE session_id = ?
	  ORDER BY seq DESC
	`, sessionID); err != nil {
		return nil, err
	}
	out := make([]domain.Draft, 0, len(rows))
	for _, row := range rows {
		d, err := row.draft()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Save replaces the session's drafts with items, which are newest first.
func (r *DraftRepo) Save(q Querier, sessionID string, items []domain.Draft) error {
	if _, err := q.Exec(`DELETE FROM drafts WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	for i, d := range items {
		if _, err := q.Exec(`
			INSERT INTO drafts(id,session_id,seq,title,description,price,category,
			                   ingredients,prep_minutes,status,created_at,updated_at)
			VALUES(?,?,?,?,?,?,?,?,?,?,?,?)
		`, d.ID, sessionID, len(items)-i, d.Title, d.Description, d.Price.String(),
			string(d.Category), d.Ingredients, d.PrepMinutes, d.Status,
			d.CreatedAt.UTC().Format(time.RFC3339Nano), d.UpdatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return err
		}
	}
	return nil
}
