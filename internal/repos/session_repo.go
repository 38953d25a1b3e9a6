package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"bistro/internal/domain"
)

type SessionRepo struct{ DB *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Touch makes sure a row exists for sid and bumps last_seen.
func (r *SessionRepo) Touch(q Querier, sid string) error {
	_, err := q.Exec(`INSERT INTO sessions(id,last_seen)
                      VALUES(?,CURRENT_TIMESTAMP)
                      ON CONFLICT(id) DO UPDATE SET last_seen=CURRENT_TIMESTAMP`, sid)
	return err
}

func (r *SessionRepo) CreateUser(q Querier, u domain.User) error {
	_, err := q.Exec(`INSERT INTO users(id,username,is_chef) VALUES(?,?,?)`, u.ID, u.Username, u.Chef)
	return err
}

func (r *SessionRepo) BindUser(q Querier, sid, userID string) error {
	_, err := q.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                      VALUES(?,?,CURRENT_TIMESTAMP)
                      ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

// User returns the signed-in user for sid, or nil for a guest or unknown sid.
func (r *SessionRepo) User(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id AS user_id, u.username, u.is_chef
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Reset turns sid back into a guest session and drops everything it owned.
func (r *SessionRepo) Reset(q Querier, sid string) error {
	if _, err := q.Exec(`DELETE FROM cart_lines WHERE session_id=?`, sid); err != nil {
		return err
	}
	if _, err := q.Exec(`DELETE FROM drafts WHERE session_id=?`, sid); err != nil {
		return err
	}
	_, err := q.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
