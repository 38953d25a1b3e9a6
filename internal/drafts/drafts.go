// Package drafts is the chef's board of unpublished dishes.
//
// The board is ordered most recent first. Create prepends, Update replaces in
// place, and Delete and Publish both take the draft off the board. Nothing
// here asks for confirmation; callers do that before Delete or Publish.
package drafts

import (
	"time"

	"github.com/google/uuid"

	"bistro/internal/domain"
)

type Board struct {
	items []domain.Draft
	now   func() time.Time
	newID func() string
}

// Option tweaks a Board, mostly for tests.
type Option func(*Board)

func WithClock(now func() time.Time) Option { return func(b *Board) { b.now = now } }

func WithIDs(next func() string) Option { return func(b *Board) { b.newID = next } }

// New builds a board over stored drafts, which must already be newest first.
func New(items []domain.Draft, opts ...Option) *Board {
	b := &Board{
		items: append([]domain.Draft(nil), items...),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Board) index(id string) int {
	for i, d := range b.items {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// Create stamps a fresh draft and puts it at the top of the board.
func (b *Board) Create(f domain.DraftFields) domain.Draft {
	ts := b.now().UTC()
	d := domain.Draft{
		ID:        b.newID(),
		Status:    domain.DraftStatus,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	apply(&d, f)
	b.items = append([]domain.Draft{d}, b.items...)
	return d
}

// Update rewrites the draft's fields, keeping its id, createdAt and position.
func (b *Board) Update(id string, f domain.DraftFields) (domain.Draft, bool) {
	i := b.index(id)
	if i < 0 {
		return domain.Draft{}, false
	}
	d := b.items[i]
	apply(&d, f)
	d.UpdatedAt = b.now().UTC()
	b.items[i] = d
	return d, true
}

func (b *Board) Delete(id string) bool {
	_, ok := b.take(id)
	return ok
}

// Publish takes the draft off the board and hands it back so the caller can
// announce it.
func (b *Board) Publish(id string) (domain.Draft, bool) {
	return b.take(id)
}

func (b *Board) take(id string) (domain.Draft, bool) {
	i := b.index(id)
	if i < 0 {
		return domain.Draft{}, false
	}
	d := b.items[i]
	b.items = append(b.items[:i], b.items[i+1:]...)
	return d, true
}

func (b *Board) Get(id string) (domain.Draft, bool) {
	if i := b.index(id); i >= 0 {
		return b.items[i], true
	}
	return domain.Draft{}, false
}

// Items returns a copy, newest first.
func (b *Board) Items() []domain.Draft {
	out := make([]domain.Draft, len(b.items))
	copy(out, b.items)
	return out
}

type Stats struct {
	Total           int `json:"totalDrafts"`
	CategoriesInUse int `json:"categories"`
}

func (b *Board) Stats() Stats {
	used := map[domain.Category]bool{}
	for _, d := range b.items {
		used[d.Category] = true
	}
	return Stats{Total: len(b.items), CategoriesInUse: len(used)}
}

func apply(d *domain.Draft, f domain.DraftFields) {
	d.Title = f.Title
	d.Description = f.Description
	d.Price = f.Price
	d.Category = f.Category
	d.Ingredients = f.Ingredients
	d.PrepMinutes = f.PrepMinutes
}
