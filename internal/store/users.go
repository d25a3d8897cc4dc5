package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
)

// CreateUser creates a new user account.
// Returns ErrEmailExists if the email is already registered (case-insensitive)
// and ErrUserExists on an ID collision.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	// Check the email index first so callers get the right sentinel; the
	// entity reports both ID and index conflicts as ErrAlreadyExists.
	if _, err := s.Users.GetByIndex(ctx, "email", user.Email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check email exists: %w", err)
	}

	if err := s.Users.Create(ctx, user.ID, user); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address. Lookup is case-insensitive.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "email", email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	return user, nil
}

// UpdateUser updates an existing user.
// Returns ErrEmailExists if the user's new email is taken by another account.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	user.Touch()

	if err := s.Users.Update(ctx, user.ID, user); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return ErrUserNotFound
		case errors.Is(err, ErrAlreadyExists):
			return ErrEmailExists
		default:
			return fmt.Errorf("update user: %w", err)
		}
	}

	return nil
}

// ListUsers returns all user accounts.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	for user, err := range s.Users.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}
