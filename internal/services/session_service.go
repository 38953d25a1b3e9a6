package services

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bistro/internal/domain"
	"bistro/internal/drafts"
	"bistro/internal/repos"
	"bistro/internal/session"
	"bistro/internal/validate"
)

type SessionService struct {
	DB       *sqlx.DB
	Sessions *repos.SessionRepo
	Drafts   *repos.DraftRepo
}

func NewSessionService(db *sqlx.DB, sessions *repos.SessionRepo, drafts *repos.DraftRepo) *SessionService {
	return &SessionService{DB: db, Sessions: sessions, Drafts: drafts}
}

// Current loads the session for sid; unknown sids are guests.
func (s *SessionService) Current(sid string) (session.Session, error) {
	u, err := s.Sessions.User(sid)
	if err != nil {
		return session.Session{ID: sid}, err
	}
	return session.Session{ID: sid, User: u}, nil
}

// Start signs sid in as a new user. A validate.Failures error means the form
// was rejected and nothing changed. Whatever the session held before is
// dropped; chefs start with the sample drafts.
func (s *SessionService) Start(sid string, in validate.SessionInput) (session.Session, error) {
	in, fails := validate.Session(in)
	if len(fails) > 0 {
		return session.Session{ID: sid}, fails
	}
	u := domain.User{ID: uuid.NewString(), Username: in.Username, Chef: in.Chef}

	err := repos.InTx(s.DB, func(tx *sqlx.Tx) error {
		if err := s.Sessions.Touch(tx, sid); err != nil {
			return err
		}
		if err := s.Sessions.Reset(tx, sid); err != nil {
			return err
		}
		if err := s.Sessions.CreateUser(tx, u); err != nil {
			return err
		}
		if err := s.Sessions.BindUser(tx, sid, u.ID); err != nil {
			return err
		}
		if u.Chef {
			return s.Drafts.Save(tx, sid, drafts.Samples(uuid.NewString))
		}
		return nil
	})
	if err != nil {
		return session.Session{ID: sid}, err
	}
	return session.Session{ID: sid, User: &u}, nil
}

// End clears the user, and with it the chef flag, in one step.
func (s *SessionService) End(sid string) error { return s.reset(sid) }

// Guest leaves sid with no user; it differs from End only in where the
// caller navigates next.
func (s *SessionService) Guest(sid string) error { return s.reset(sid) }

func (s *SessionService) reset(sid string) error {
	return repos.InTx(s.DB, func(tx *sqlx.Tx) error {
		if err := s.Sessions.Touch(tx, sid); err != nil {
			return err
		}
		return s.Sessions.Reset(tx, sid)
	})
}
