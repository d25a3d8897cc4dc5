package domain

import "time"

// BookEntry is a denormalized snapshot of a book's metadata, captured at the
// moment the book is added to one of a user's lists. The snapshot is stored
// inside the user document, so later changes at the metadata source never
// rewrite what the user shelved.
type BookEntry struct {
	// ID is the external identifier from the book metadata source
	// (a Google Books volume ID).
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Authors       []string  `json:"authors,omitempty"`
	Description   string    `json:"description,omitempty"`
	PublishedDate string    `json:"published_date,omitempty"`
	PageCount     int       `json:"page_count,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	Language      string    `json:"language,omitempty"`
	PreviewLink   string    `json:"preview_link,omitempty"`
	AverageRating float64   `json:"average_rating,omitempty"`
	RatingsCount  int       `json:"ratings_count,omitempty"`
	DateAdded     time.Time `json:"date_added"`
}

// BookList is an ordered collection of BookEntries owned by a user.
// Entries keep insertion order and external IDs are unique within a list.
type BookList []BookEntry

// Contains reports whether an entry with the given external ID is in the list.
func (l BookList) Contains(bookID string) bool {
	return l.indexOf(bookID) >= 0
}

// Add appends the entry to the list.
// Returns false without modifying the list if the ID is already present.
func (l *BookList) Add(entry BookEntry) bool {
	if l.Contains(entry.ID) {
		return false
	}
	*l = append(*l, entry)
	return true
}

// Remove deletes the entry with the given ID, preserving the order of the
// remaining entries. Returns the removed entry and true, or a zero entry and
// false if the ID was not present.
func (l *BookList) Remove(bookID string) (BookEntry, bool) {
	i := l.indexOf(bookID)
	if i < 0 {
		return BookEntry{}, false
	}
	removed := (*l)[i]
	*l = append((*l)[:i], (*l)[i+1:]...)
	return removed, true
}

func (l BookList) indexOf(bookID string) int {
	for i := range l {
		if l[i].ID == bookID {
			return i
		}
	}
	return -1
}
