package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
)

// setupTestStore creates a temporary store for testing
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "shelfmark-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func newTestUser(id, email string) *domain.User {
	return domain.NewUser(id, "Test User", email, "argon2-hash")
}

func TestCreateUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := newTestUser("user-test123", "reader@example.com")

	err := store.CreateUser(ctx, user)
	require.NoError(t, err)

	retrieved, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Empty(t, retrieved.ReadBooks)
	assert.Empty(t, retrieved.ToReadBooks)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, newTestUser("user-one", "reader@example.com")))

	err := store.CreateUser(ctx, newTestUser("user-two", "reader@example.com"))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateUser_DuplicateEmailCaseInsensitive(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, newTestUser("user-one", "reader@example.com")))

	err := store.CreateUser(ctx, newTestUser("user-two", "Reader@Example.COM"))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateUser_DuplicateID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, newTestUser("user-test123", "one@example.com")))

	err := store.CreateUser(ctx, newTestUser("user-test123", "two@example.com"))
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestGetUser_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetUser(context.Background(), "user-missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := newTestUser("user-test123", "reader@example.com")
	require.NoError(t, store.CreateUser(ctx, user))

	retrieved, err := store.GetUserByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)

	// Lookup is case-insensitive and whitespace-tolerant
	retrieved, err = store.GetUserByEmail(ctx, "  Reader@EXAMPLE.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := newTestUser("user-test123", "reader@example.com")
	require.NoError(t, store.CreateUser(ctx, user))

	user.Name = "Renamed Reader"
	user.AddToReadList(domain.BookEntry{ID: "vol-1", Title: "Dune"})
	require.NoError(t, store.UpdateUser(ctx, user))

	retrieved, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Reader", retrieved.Name)
	require.Len(t, retrieved.ToReadBooks, 1)
	assert.Equal(t, "vol-1", retrieved.ToReadBooks[0].ID)
	assert.False(t, retrieved.UpdatedAt.IsZero())
}

func TestUpdateUser_EmailChange(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := newTestUser("user-test123", "old@example.com")
	require.NoError(t, store.CreateUser(ctx, user))

	user.Email = "new@example.com"
	require.NoError(t, store.UpdateUser(ctx, user))

	// New email resolves, old one doesn't
	retrieved, err := store.GetUserByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)

	_, err = store.GetUserByEmail(ctx, "old@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateUser(ctx, newTestUser("user-one", "one@example.com")))

	other := newTestUser("user-two", "two@example.com")
	require.NoError(t, store.CreateUser(ctx, other))

	other.Email = "one@example.com"
	err := store.UpdateUser(ctx, other)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUpdateUser_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.UpdateUser(context.Background(), newTestUser("user-ghost", "ghost@example.com"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateUser(ctx, newTestUser("user-one", "one@example.com")))
	require.NoError(t, store.CreateUser(ctx, newTestUser("user-two", "two@example.com")))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
