package services

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"bistro/internal/domain"
	"bistro/internal/drafts"
	"bistro/internal/events"
	"bistro/internal/repos"
	"bistro/internal/session"
	"bistro/internal/validate"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftService is the chef's board. Every method checks the session first
// and returns session.ErrChefOnly for anyone else.
type DraftService struct {
	DB     *sqlx.DB
	Drafts *repos.DraftRepo
	Events events.Publisher
	Now    func() time.Time
}

func NewDraftService(db *sqlx.DB, drafts *repos.DraftRepo, pub events.Publisher) *DraftService {
	return &DraftService{DB: db, Drafts: drafts, Events: pub, Now: time.Now}
}

func (s *DraftService) board(items []domain.Draft) *drafts.Board {
	return drafts.New(items, drafts.WithClock(s.Now))
}

func (s *DraftService) mutate(sid string, fn func(b *drafts.Board) error) error {
	return repos.InTx(s.DB, func(tx *sqlx.Tx) error {
		items, err := s.Drafts.List(tx, sid)
		if err != nil {
			return err
		}
		b := s.board(items)
		if err := fn(b); err != nil {
			return err
		}
		return s.Drafts.Save(tx, sid, b.Items())
	})
}

// List returns the board newest first along with its header stats.
func (s *DraftService) List(sess session.Session) ([]domain.Draft, drafts.Stats, error) {
	if err := sess.RequireChef(); err != nil {
		return nil, drafts.Stats{}, err
	}
	items, err := s.Drafts.List(s.DB, sess.ID)
	if err != nil {
		return nil, drafts.Stats{}, err
	}
	b := s.board(items)
	return b.Items(), b.Stats(), nil
}

func (s *DraftService) Get(sess session.Session, id string) (domain.Draft, error) {
	items, _, err := s.List(sess)
	if err != nil {
		return domain.Draft{}, err
	}
	if d, ok := s.board(items).Get(id); ok {
		return d, nil
	}
	return domain.Draft{}, ErrDraftNotFound
}

// Create validates the form and puts the new draft at the top of the board.
// A validate.Failures error means nothing was stored.
func (s *DraftService) Create(sess session.Session, in validate.DraftInput) (domain.Draft, error) {
	if err := sess.RequireChef(); err != nil {
		return domain.Draft{}, err
	}
	f, fails := validate.Draft(in)
	if len(fails) > 0 {
		return domain.Draft{}, fails
	}
	var d domain.Draft
	err := s.mutate(sess.ID, func(b *drafts.Board) error {
		d = b.Create(f)
		return nil
	})
	return d, err
}

func (s *DraftService) Update(sess session.Session, id string, in validate.DraftInput) (domain.Draft, error) {
	if err := sess.RequireChef(); err != nil {
		return domain.Draft{}, err
	}
	f, fails := validate.Draft(in)
	if len(fails) > 0 {
		return domain.Draft{}, fails
	}
	var d domain.Draft
	err := s.mutate(sess.ID, func(b *drafts.Board) error {
		var ok bool
		if d, ok = b.Update(id, f); !ok {
			return ErrDraftNotFound
		}
		return nil
	})
	return d, err
}

// Delete removes the draft; found is false when it was already gone.
func (s *DraftService) Delete(sess session.Session, id string) (found bool, err error) {
	if err := sess.RequireChef(); err != nil {
		return false, err
	}
	err = s.mutate(sess.ID, func(b *drafts.Board) error {
		found = b.Delete(id)
		return nil
	})
	return found, err
}

// Publish takes the draft off the board and announces it. The live menu is
// not changed.
func (s *DraftService) Publish(sess session.Session, id string) (d domain.Draft, found bool, err error) {
	if err := sess.RequireChef(); err != nil {
		return domain.Draft{}, false, err
	}
	err = s.mutate(sess.ID, func(b *drafts.Board) error {
		d, found = b.Publish(id)
		return nil
	})
	if err != nil || !found {
		return d, found, err
	}
	events.Emit(s.Events, events.Event{
		Type: events.DraftPublished,
		Key:  d.ID,
		At:   s.Now().UTC(),
		Payload: map[string]any{
			"title":    d.Title,
			"category": d.Category,
			"price":    d.Price.StringFixed(2),
			"chef":     sess.Username(),
		},
	})
	return d, true, nil
}
