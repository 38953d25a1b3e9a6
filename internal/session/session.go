// Package session is the role gate: who is browsing and what they may do.
package session

import (
	"errors"

	"bistro/internal/domain"
	"bistro/internal/nav"
)

var (
	// ErrSignInRequired is returned when an action needs a signed-in user.
	ErrSignInRequired = errors.New("sign-in required")
	// ErrChefOnly is returned when a non-chef reaches for the draft board.
	ErrChefOnly = errors.New("chef session required")
)

// Session is the state handed to every screen. A nil User is a guest.
// Chef status is read off the user, so it cannot outlive it.
type Session struct {
	ID   string
	User *domain.User
}

func (s Session) Active() bool { return s.User != nil }

func (s Session) IsChef() bool { return s.User != nil && s.User.Chef }

// CanAuthorDrafts gates the private menu and every draft action.
func (s Session) CanAuthorDrafts() bool { return s.IsChef() }

func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// RequireUser reports ErrSignInRequired for guests.
func (s Session) RequireUser() error {
	if !s.Active() {
		return ErrSignInRequired
	}
	return nil
}

// RequireChef reports ErrChefOnly unless s may author drafts.
func (s Session) RequireChef() error {
	if !s.CanAuthorDrafts() {
		return ErrChefOnly
	}
	return nil
}

// Event is what just happened on the profile screen.
type Event int

const (
	Started Event = iota
	Guest
	Ended
	Continued
)

// Destination is where the profile screen sends s after ev.
func Destination(s Session, ev Event) nav.Screen {
	switch ev {
	case Started, Continued:
		switch {
		case s.IsChef():
			return nav.PrivateMenu
		case s.Active():
			return nav.UserMenu
		}
	}
	return nav.Courses
}
