package drafts_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/domain"
	"bistro/internal/drafts"
)

type fixture struct {
	now time.Time
	seq int
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) id() string {
	f.seq++
	return fmt.Sprintf("d%d", f.seq)
}

func (f *fixture) board(items ...domain.Draft) *drafts.Board {
	return drafts.New(items, drafts.WithClock(f.clock), drafts.WithIDs(f.id))
}

func fields(title string) domain.DraftFields {
	return domain.DraftFields{
		Title:       title,
		Description: "desc",
		Price:       decimal.RequireFromString("12.50"),
		Category:    domain.HotPlates,
		Ingredients: "salt",
		PrepMinutes: 10,
	}
}

func TestCreatePrependsAndStamps(t *testing.T) {
	f := &fixture{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	b := f.board()

	first := b.Create(fields("One"))
	second := b.Create(fields("Two"))

	assert.Equal(t, domain.DraftStatus, first.Status)
	assert.Equal(t, f.now, first.CreatedAt)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.NotEqual(t, first.ID, second.ID)

	items := b.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Two", items[0].Title)
	assert.Equal(t, "One", items[1].Title)
}

func TestUpdateKeepsIdentityAndPosition(t *testing.T) {
	f := &fixture{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	b := f.board()
	a := b.Create(fields("A"))
	b.Create(fields("B"))
	b.Create(fields("C"))

	f.now = f.now.Add(time.Hour)
	got, ok := b.Update(a.ID, fields("A2"))
	require.True(t, ok)

	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.CreatedAt, got.CreatedAt)
	assert.Equal(t, f.now, got.UpdatedAt)
	assert.Equal(t, "A2", b.Items()[2].Title)

	_, ok = b.Update("missing", fields("x"))
	assert.False(t, ok)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	f := &fixture{now: time.Now()}
	b := f.board()
	d := b.Create(fields("A"))

	assert.True(t, b.Delete(d.ID))
	assert.False(t, b.Delete(d.ID))
	assert.Empty(t, b.Items())
}

func TestPublishRemovesFromBoard(t *testing.T) {
	f := &fixture{}
	b := f.board(drafts.Samples(f.id)...)
	require.Equal(t, 3, b.Stats().Total)

	target := b.Items()[1]
	got, ok := b.Publish(target.ID)
	require.True(t, ok)
	assert.Equal(t, "Smoked Salmon Platter", got.Title)

	assert.Equal(t, 2, b.Stats().Total)
	_, ok = b.Get(target.ID)
	assert.False(t, ok)
}

func TestSamplesAndStats(t *testing.T) {
	f := &fixture{}
	s := drafts.Samples(f.id)
	require.Len(t, s, 3)
	assert.True(t, s[0].CreatedAt.After(s[1].CreatedAt))
	assert.Equal(t, 180, s[0].PrepMinutes)

	again := drafts.Samples(f.id)
	assert.NotEqual(t, s[0].ID, again[0].ID)

	b := f.board(s...)
	assert.Equal(t, drafts.Stats{Total: 3, CategoriesInUse: 3}, b.Stats())

	b.Create(fields("Another hot one"))
	assert.Equal(t, drafts.Stats{Total: 4, CategoriesInUse: 3}, b.Stats())
}

func TestItemsIsACopy(t *testing.T) {
	f := &fixture{}
	b := f.board()
	b.Create(fields("A"))

	items := b.Items()
	items[0].Title = "mutated"
	assert.Equal(t, "A", b.Items()[0].Title)
}
