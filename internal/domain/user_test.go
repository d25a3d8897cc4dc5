package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_Defaults(t *testing.T) {
	u := NewUser("user-1", "Ada", "ada@example.com", "hashed")

	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, DefaultProfileImage, u.ProfileImage)
	assert.NotNil(t, u.ReadBooks)
	assert.NotNil(t, u.ToReadBooks)
	assert.Empty(t, u.ReadBooks)
	assert.Empty(t, u.ToReadBooks)
	assert.Equal(t, 0, u.Stats.TotalBooksRead)
	assert.Equal(t, 0, u.Stats.TotalPagesRead)
	assert.NotNil(t, u.Stats.FavoriteGenres)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestAddToReadList_RejectsDuplicate(t *testing.T) {
	u := NewUser("user-1", "Ada", "ada@example.com", "hashed")

	require.True(t, u.AddToReadList(BookEntry{ID: "b1", Title: "Dune"}))
	assert.False(t, u.AddToReadList(BookEntry{ID: "b1", Title: "Dune"}))

	assert.Len(t, u.ToReadBooks, 1)
}

func TestAddToReadList_DoesNotTouchReadOrStats(t *testing.T) {
	u := NewUser("user-1", "Ada", "ada@example.com", "hashed")

	u.AddToReadList(BookEntry{ID: "b1", PageCount: 500, Tags: []string{"Sci-Fi"}})

	assert.Empty(t, u.ReadBooks)
	assert.Equal(t, 0, u.Stats.TotalBooksRead)
	assert.Equal(t, 0, u.Stats.TotalPagesRead)
	assert.Empty(t, u.Stats.FavoriteGenres)
}

func TestAddToReadBooks_PromotesFromToRead(t *testing.T) {
	u := NewUser("user-1", "Ada", "ada@example.com", "hashed")

	require.True(t, u.AddToReadList(BookEntry{ID: "b1", Title: "Dune"}))
	require.True(t, u.AddToReadBooks(BookEntry{ID: "b1", Title: "Dune", PageCount: 412}))

	// At most one copy survives, on the read list.
	assert.False(t, u.ToReadBooks.Contains("b1"))
	assert.Len(t, u.ReadBooks, 1)
	assert.Equal(t, 1, u.Stats.TotalBooksRead)
	assert.Equal(t, 412, u.Stats.TotalPagesRead)
}

func TestAddToReadBooks_RejectsDuplicate(t *testing.T) {
	u := NewUser("user-1", "Ada", "ada@example.com", "hashed")

	require.True(t, u.AddToReadBooks(BookEntry{ID: "b1", PageCount: 100}))
	assert.False(t, u.AddToReadBooks(BookEntry{ID: "b1", PageCount: 100}))

	// The rejected call must not double-count.
	assert.Len(t, u.ReadBooks, 1)
	assert.Equal(t, 1, u.Stats.TotalBooksRead)
	assert.Equal(t, 100, u.Stats.TotalPagesRead)
}

func TestRemoveFromToReadList_AbsentIsNoOp(t *testing.T) {
	u := NewUser("user-1", "Ada", "ada@example.com", "hashed")
	u.AddToReadList(BookEntry{ID: "b1"})

	assert.False(t, u.RemoveFromToReadList("unknown"))
	assert.Len(t, u.ToReadBooks, 1)
	assert.Empty(t, u.ReadBooks)
}

func TestRemoveFromReadBooks_RoundTripsStats(t *testing.T) {
	u := NewUser("user-1", "Ada", "ada@example.com", "hashed")

	u.AddToReadBooks(BookEntry{ID: "b1", PageCount: 300, Tags: []string{"Fantasy", "Adventure"}})

	require.Equal(t, 1, u.Stats.TotalBooksRead)
	require.Equal(t, 300, u.Stats.TotalPagesRead)

	require.True(t, u.RemoveFromReadBooks("b1"))

	assert.Empty(t, u.ReadBooks)
	assert.Equal(t, 0, u.Stats.TotalBooksRead)
	assert.Equal(t, 0, u.Stats.TotalPagesRead)
	// Genres are monotonic: removal never unwinds them.
	assert.Equal(t, []string{"Fantasy", "Adventure"}, u.Stats.FavoriteGenres)
}

func TestRemoveFromReadBooks_AbsentLeavesStatsAlone(t *testing.T) {
	u := NewUser("user-1", "Ada", "ada@example.com", "hashed")
	u.AddToReadBooks(BookEntry{ID: "b1", PageCount: 200})
	u.RemoveFromReadBooks("b1")

	// Repeated removals of an already-absent ID stay no-ops.
	assert.False(t, u.RemoveFromReadBooks("b1"))
	assert.False(t, u.RemoveFromReadBooks("b1"))
	assert.Equal(t, 0, u.Stats.TotalBooksRead)
	assert.Equal(t, 0, u.Stats.TotalPagesRead)
}

func TestUser_MarkReadScenario(t *testing.T) {
	u := NewUser("user-1", "Ada", "ada@example.com", "hashed")

	book := BookEntry{ID: "b1", PageCount: 300, Tags: []string{"Fantasy", "Adventure"}}
	require.True(t, u.AddToReadBooks(book))

	assert.Len(t, u.ReadBooks, 1)
	assert.Empty(t, u.ToReadBooks)
	assert.Equal(t, 1, u.Stats.TotalBooksRead)
	assert.Equal(t, 300, u.Stats.TotalPagesRead)
	assert.Equal(t, []string{"Fantasy", "Adventure"}, u.Stats.FavoriteGenres)

	require.True(t, u.RemoveFromReadBooks("b1"))

	assert.Empty(t, u.ReadBooks)
	assert.Equal(t, 0, u.Stats.TotalBooksRead)
	assert.Equal(t, 0, u.Stats.TotalPagesRead)
	assert.Equal(t, []string{"Fantasy", "Adventure"}, u.Stats.FavoriteGenres)
}
