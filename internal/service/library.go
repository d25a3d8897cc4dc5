package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	domainerrors "github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// LibraryService manages a user's personal book lists and reading statistics.
type LibraryService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(store *store.Store, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:  store,
		logger: logger,
	}
}

// UserBooks is the aggregate view of a user's lists and statistics.
type UserBooks struct {
	ReadBooks   domain.BookList     `json:"books_read"`
	ToReadBooks domain.BookList     `json:"books_to_read"`
	Stats       domain.ReadingStats `json:"reading_stats"`
}

// AddToReadList adds a book to the user's to-read list.
// Returns a duplicate entry error if the book is already on the list.
func (s *LibraryService) AddToReadList(ctx context.Context, userID string, book domain.BookEntry) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	book.DateAdded = time.Now()
	if !user.AddToReadList(book) {
		return nil, domainerrors.DuplicateEntry("book is already in your to-read list")
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Book added to to-read list",
			"user_id", userID,
			"book_id", book.ID,
		)
	}

	return user, nil
}

// AddToReadBooks marks a book as read. If the book sits on the to-read
// list it is promoted from there, and reading statistics are updated.
// Returns a duplicate entry error if the book was already marked read.
func (s *LibraryService) AddToReadBooks(ctx context.Context, userID string, book domain.BookEntry) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	book.DateAdded = time.Now()
	if !user.AddToReadBooks(book) {
		return nil, domainerrors.DuplicateEntry("book is already in your read list")
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Book marked as read",
			"user_id", userID,
			"book_id", book.ID,
			"total_read", user.Stats.TotalBooksRead,
		)
	}

	return user, nil
}

// RemoveFromToReadList removes a book from the to-read list.
// Removing a book that isn't on the list is a no-op.
func (s *LibraryService) RemoveFromToReadList(ctx context.Context, userID, bookID string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.RemoveFromToReadList(bookID) {
		return user, nil
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	return user, nil
}

// RemoveFromReadBooks removes a book from the read list, rolling its
// contribution back out of the counters. Favorite genres are kept.
// Removing a book that isn't on the list is a no-op.
func (s *LibraryService) RemoveFromReadBooks(ctx context.Context, userID, bookID string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.RemoveFromReadBooks(bookID) {
		return user, nil
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	return user, nil
}

// ListUserBooks returns both lists and the user's reading statistics.
func (s *LibraryService) ListUserBooks(ctx context.Context, userID string) (*UserBooks, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserBooks{
		ReadBooks:   user.ReadBooks,
		ToReadBooks: user.ToReadBooks,
		Stats:       user.Stats,
	}, nil
}

func (s *LibraryService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
