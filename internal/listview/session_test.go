package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededSession(t *testing.T, n, pageSize int) *Session[item] {
	t.Helper()
	s := NewSession[item](pageSize, nil)
	s.Replace(makeItems(n))
	return s
}

func TestSessionReplaceResetsPage(t *testing.T) {
	s := newSeededSession(t, 56, 10)
	require.True(t, s.GoToPage(6))

	s.Replace(makeItems(20))
	assert.Equal(t, 1, s.CurrentPage().Number)
	assert.Equal(t, 20, s.Len())
}

func TestSessionSetFilterResetsPage(t *testing.T) {
	s := newSeededSession(t, 56, 10)
	require.True(t, s.GoToPage(4))

	s.SetFilter(func(i item) bool { return i.group == "odd" })

	page := s.CurrentPage()
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 28, page.TotalItems)
}

func TestSessionGoToPageOutOfRangeIsIgnored(t *testing.T) {
	s := newSeededSession(t, 56, 10)
	require.True(t, s.GoToPage(6))

	// 56 records at size 10 make 6 pages; 7 and 0 are out of range.
	assert.False(t, s.GoToPage(7))
	assert.False(t, s.GoToPage(0))
	assert.False(t, s.GoToPage(-3))
	assert.Equal(t, 6, s.CurrentPage().Number)
}

func TestSessionFindReturnsSnapshot(t *testing.T) {
	s := newSeededSession(t, 5, 10)

	got, ok := s.Find("ID003")
	require.True(t, ok)
	assert.Equal(t, "record 3", got.label)

	// Mutating the snapshot must not touch the source of truth.
	got.label = "scribbled"
	again, ok := s.Find("ID003")
	require.True(t, ok)
	assert.Equal(t, "record 3", again.label)

	_, ok = s.Find("NOPE")
	assert.False(t, ok)
}

func TestSessionUpdateRefiltersAndResets(t *testing.T) {
	s := newSeededSession(t, 20, 10)
	s.SetFilter(func(i item) bool { return i.group == "odd" })
	require.Equal(t, 10, s.CurrentPage().TotalItems)

	// Moving a record out of the active criteria shrinks the view.
	ok := s.Update("ID001", func(i *item) { i.group = "even" })
	require.True(t, ok)
	assert.Equal(t, 9, s.CurrentPage().TotalItems)

	assert.False(t, s.Update("NOPE", func(i *item) { i.group = "even" }))
}

func TestSessionUpdateManySkipsMissingAndKeepsView(t *testing.T) {
	s := newSeededSession(t, 20, 10)
	s.SetFilter(func(i item) bool { return i.group == "odd" })

	applied := s.UpdateMany([]string{"ID001", "NOPE", "ID003"}, func(i *item) {
		i.group = "even"
	})
	assert.Equal(t, 2, applied)

	// Bulk actions do not re-derive the filtered view.
	assert.Equal(t, 10, s.CurrentPage().TotalItems)

	// The full collection saw the mutation.
	got, ok := s.Find("ID001")
	require.True(t, ok)
	assert.Equal(t, "even", got.group)
}

func TestSessionUpdateManyRefreshesVisibleValues(t *testing.T) {
	s := newSeededSession(t, 20, 10)
	s.SetFilter(func(i item) bool { return i.group == "odd" })

	applied := s.UpdateMany([]string{"ID001", "ID003"}, func(i *item) {
		i.label = "flagged"
	})
	require.Equal(t, 2, applied)

	// Membership stays stale, but the page renders the new values.
	byID := map[string]item{}
	for _, it := range s.CurrentPage().Items {
		byID[it.id] = it
	}
	assert.Equal(t, "flagged", byID["ID001"].label)
	assert.Equal(t, "flagged", byID["ID003"].label)
	assert.Equal(t, "record 5", byID["ID005"].label)
}

func TestSessionInsertFrontAndRemove(t *testing.T) {
	s := newSeededSession(t, 3, 10)

	s.InsertFront(item{id: "NEW", label: "newest", group: "odd"})
	page := s.CurrentPage()
	require.Equal(t, 4, page.TotalItems)
	assert.Equal(t, "NEW", page.Items[0].id)

	require.True(t, s.Remove("NEW"))
	assert.Equal(t, 3, s.CurrentPage().TotalItems)
	assert.False(t, s.Remove("NEW"))
}
