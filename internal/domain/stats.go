package domain

// MaxFavoriteGenres caps the favorite-genre accumulator on ReadingStats.
const MaxFavoriteGenres = 5

// ReadingStats holds derived counters attached to a User. They are maintained
// incrementally as books move in and out of the read list, never recomputed
// from scratch.
//
// AverageRating, ReadingTime and the streak fields are carried on the document
// but are not derived from list mutations; display layers may populate them.
type ReadingStats struct {
	TotalBooksRead int      `json:"total_books_read"`
	TotalPagesRead int      `json:"total_pages_read"`
	AverageRating  float64  `json:"average_rating"`
	ReadingTime    int      `json:"reading_time"`
	FavoriteGenres []string `json:"favorite_genres"`
	CurrentStreak  int      `json:"current_streak"`
	LongestStreak  int      `json:"longest_streak"`
}

// NewReadingStats returns zeroed stats with an empty genre accumulator.
// Used at user creation so documents never rely on field defaulting.
func NewReadingStats() ReadingStats {
	return ReadingStats{
		FavoriteGenres: []string{},
	}
}

// OnBookMarkedRead applies the stat effects of a book entering the read list:
// the book count increments, the page total grows by the book's page count
// when one is known, and the book's tags are merged into the favorite genres.
func (s *ReadingStats) OnBookMarkedRead(book BookEntry) {
	s.TotalBooksRead++

	if book.PageCount > 0 {
		s.TotalPagesRead += book.PageCount
	}

	s.mergeGenres(book.Tags)
}

// OnBookRemovedFromRead reverses the count and page effects of a book leaving
// the read list. Both counters floor at zero. Favorite genres are monotonic
// and are deliberately not unwound here.
func (s *ReadingStats) OnBookRemovedFromRead(removed BookEntry) {
	s.TotalBooksRead = max(0, s.TotalBooksRead-1)

	if removed.PageCount > 0 {
		s.TotalPagesRead = max(0, s.TotalPagesRead-removed.PageCount)
	}
}

// mergeGenres folds tags into FavoriteGenres, preserving existing order,
// skipping duplicates, and truncating to MaxFavoriteGenres.
func (s *ReadingStats) mergeGenres(tags []string) {
	if len(tags) == 0 {
		return
	}

	for _, tag := range tags {
		if tag == "" || s.hasGenre(tag) {
			continue
		}
		s.FavoriteGenres = append(s.FavoriteGenres, tag)
	}

	if len(s.FavoriteGenres) > MaxFavoriteGenres {
		s.FavoriteGenres = s.FavoriteGenres[:MaxFavoriteGenres]
	}
}

func (s *ReadingStats) hasGenre(tag string) bool {
	for _, g := range s.FavoriteGenres {
		if g == tag {
			return true
		}
	}
	return false
}
