package repos

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"bistro/internal/catalog"
	"bistro/internal/domain"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx, so every repo call can
// run inside a caller's transaction.
type Querier interface {
	sqlx.Queryer
	sqlx.Execer
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: an in-memory database lives and dies with its
	// connection, and writes are serialized through it.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedCatalog(db, catalog.Seed()); err != nil {
		return nil, err
	}
	return db, nil
}

// InTx runs fn in a transaction, committing only when fn succeeds.
func InTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog
CREATE TABLE IF NOT EXISTS courses(
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dishes(
  id INTEGER PRIMARY KEY,
  course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE RESTRICT,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL,
  category TEXT NOT NULL CHECK (category IN ('Hot plates','Cold plates','Baked goods','Beverages')),
  prep_time TEXT NOT NULL DEFAULT '',
  calories INTEGER NOT NULL DEFAULT 0,
  difficulty TEXT NOT NULL DEFAULT '',
  ingredients_json TEXT NOT NULL DEFAULT '[]',
  chef_tip TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_dishes_category ON dishes(category);
CREATE INDEX IF NOT EXISTS idx_dishes_course   ON dishes(course_id, position);

-- Users & Sessions. The chef flag lives on the user, so a session can't
-- carry one without a user.
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  is_chef INTEGER NOT NULL DEFAULT 0 CHECK (is_chef IN (0,1)),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Cart lines, with the dish snapshot taken at add time
CREATE TABLE IF NOT EXISTS cart_lines(
  session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  dish_id INTEGER NOT NULL REFERENCES dishes(id) ON DELETE RESTRICT,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  price TEXT NOT NULL,
  category TEXT NOT NULL,
  image TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL CHECK (qty >= 1),
  PRIMARY KEY (session_id, dish_id)
);

-- Chef drafts
CREATE TABLE IF NOT EXISTS drafts(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  seq INTEGER NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  price TEXT NOT NULL,
  category TEXT NOT NULL CHECK (category IN ('Hot plates','Cold plates','Baked goods','Beverages')),
  ingredients TEXT NOT NULL,
  prep_minutes INTEGER NOT NULL CHECK (prep_minutes > 0),
  status TEXT NOT NULL DEFAULT 'draft' CHECK (status = 'draft'),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_drafts_session ON drafts(session_id, seq);

-- Receipts
CREATE TABLE IF NOT EXISTS receipts(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  subtotal TEXT NOT NULL,
  item_count INTEGER NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_receipts_session ON receipts(session_id);

CREATE TABLE IF NOT EXISTS receipt_lines(
  receipt_id TEXT NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  dish_id INTEGER NOT NULL,
  title TEXT NOT NULL,
  qty INTEGER NOT NULL,
  price TEXT NOT NULL,
  PRIMARY KEY (receipt_id, dish_id)
);
`
	_, err := db.Exec(schema)
	return err
}

// seedCatalog loads the menu once; later opens of the same database are no-ops.
func seedCatalog(db *sqlx.DB, courses []domain.Course) error {
	if err := catalog.Validate(courses); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM courses`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting menu courses/dishes")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, co := range courses {
		if _, err := tx.Exec(`INSERT INTO courses(id,title) VALUES(?,?)`, co.ID, co.Title); err != nil {
			return err
		}
		for i, d := range co.Dishes {
			ing, err := json.Marshal(d.Ingredients)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(`
				INSERT INTO dishes(id,course_id,position,title,description,price,category,
				                   prep_time,calories,difficulty,ingredients_json,chef_tip,image)
				VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
				d.ID, co.ID, i, d.Title, d.Description, d.Price.String(), string(d.Category),
				d.PrepTime, d.Calories, d.Difficulty, string(ing), d.ChefTip, d.Image); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
