package domain

import "time"

// DefaultProfileImage is assigned to new accounts until the user uploads
// their own.
const DefaultProfileImage = "/assets/profileimage.png"

// User is the root aggregate for an account. The two book lists and the
// reading stats are embedded in the user document and persist as one atomic
// write, mirroring how a single request mutates them together.
type User struct {
	Record
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	ProfileImage string `json:"profile_image"`

	LastLoginAt time.Time `json:"last_login_at,omitzero"`

	ReadBooks   BookList     `json:"books_read"`
	ToReadBooks BookList     `json:"books_to_read"`
	Stats       ReadingStats `json:"reading_stats"`
}

// NewUser constructs a user with explicit empty lists and zeroed stats so the
// stored document never depends on unmarshal defaults.
func NewUser(id, name, email, passwordHash string) *User {
	u := &User{
		Record:       Record{ID: id},
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		ProfileImage: DefaultProfileImage,
		ReadBooks:    BookList{},
		ToReadBooks:  BookList{},
		Stats:        NewReadingStats(),
	}
	u.InitTimestamps()
	return u
}

// AddToReadList puts a book on the to-read list.
// Returns false if the book is already there; the read list and stats are
// never touched.
func (u *User) AddToReadList(book BookEntry) bool {
	return u.ToReadBooks.Add(book)
}

// AddToReadBooks marks a book as read. A copy of the same book sitting on the
// to-read list is silently dropped first, so a book lives on at most one list.
// On success the reading stats absorb the new book.
// Returns false if the book is already on the read list.
func (u *User) AddToReadBooks(book BookEntry) bool {
	if u.ReadBooks.Contains(book.ID) {
		return false
	}

	u.ToReadBooks.Remove(book.ID)

	u.ReadBooks.Add(book)
	u.Stats.OnBookMarkedRead(book)
	return true
}

// RemoveFromToReadList drops a book from the to-read list.
// Removing an absent book is a no-op, not an error.
func (u *User) RemoveFromToReadList(bookID string) bool {
	_, removed := u.ToReadBooks.Remove(bookID)
	return removed
}

// RemoveFromReadBooks drops a book from the read list and rolls its counts
// out of the reading stats. Removing an absent book leaves both the list and
// the stats unchanged.
func (u *User) RemoveFromReadBooks(bookID string) bool {
	entry, removed := u.ReadBooks.Remove(bookID)
	if !removed {
		return false
	}
	u.Stats.OnBookRemovedFromRead(entry)
	return true
}
