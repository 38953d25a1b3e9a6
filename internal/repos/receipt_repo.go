package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"bistro/internal/domain"
)

type ReceiptRepo struct{ db *sqlx.DB }

func NewReceiptRepo(db *sqlx.DB) *ReceiptRepo { return &ReceiptRepo{db: db} }

type receiptRow struct {
	ID        string          `db:"id"`
	SessionID string          `db:"session_id"`
	Subtotal  decimal.Decimal `db:"subtotal"`
	ItemCount int             `db:"item_count"`
	CreatedAt string          `db:"created_at"`
}

// Create inserts the receipt header and its lines.
func (r *ReceiptRepo) Create(q Querier, rc domain.Receipt) error {
	_, err := q.Exec(`
	  INSERT INTO receipts(id, session_id, subtotal, item_count, created_at)
	  VALUES(?, ?, ?, ?, ?)
	`, rc.ID, rc.SessionID, rc.Subtotal.String(), rc.ItemCount, rc.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}
	for i, l := range rc.Lines {
		if _, err := q.Exec(`
		  INSERT INTO receipt_lines(receipt_id, position, dish_id, title, qty, price)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, rc.ID, i, l.DishID, l.Title, l.Quantity, l.Price.String()); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the receipt with its lines; sql.ErrNoRows when unknown.
func (r *ReceiptRepo) Get(id string) (domain.Receipt, error) {
	var row receiptRow
	if err := r.db.Get(&row, `
		SELECT id, session_id, subtotal, item_count, created_at
		FROM receipts
		WHERE id = ?
	`, id); err != nil {
		return domain.Receipt{}, err
	}
	created, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return domain.Receipt{}, err
	}

	lines := []domain.ReceiptLine{}
	if err := r.db.Select(&lines, `
		SELECT dish_id AS dishid, title, qty AS quantity, price
		FROM receipt_lines
		WHERE receipt_id = ?
		ORDER BY position
	`, id); err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{
		ID:        row.ID,
		SessionID: row.SessionID,
		Subtotal:  row.Subtotal,
		ItemCount: row.ItemCount,
		CreatedAt: created,
		Lines:     lines,
	}, nil
}

// ListBySession returns the session's receipts, newest first, without lines.
func (r *ReceiptRepo) ListBySession(sessionID string, limit int) ([]domain.Receipt, error) {
	var rows []receiptRow
	if err := r.db.Select(&rows, `
		SELECT id, session_id, subtotal, item_count, created_at
		FROM receipts
		WHERE session_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, sessionID, limit); err != nil {
		return nil, err
	}
	out := make([]domain.Receipt, 0, len(rows))
	for _, row := range rows {
		created, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Receipt{
			ID: row.ID, SessionID: row.SessionID, Subtotal: row.Subtotal,
			ItemCount: row.ItemCount, CreatedAt: created,
		})
	}
	return out, nil
}
