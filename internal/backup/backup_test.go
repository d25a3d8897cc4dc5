package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

func setupBackupTest(t *testing.T, keep int) (*Service, *store.Store, string) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "shelfmark-backup-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	st, err := store.New(filepath.Join(tmpDir, "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	backupDir := filepath.Join(tmpDir, "backups")
	return NewService(st, backupDir, keep, nil), st, backupDir
}

func seedUser(t *testing.T, st *store.Store, id, email string) {
	t.Helper()

	user := domain.NewUser(id, "Backup User", email, "hash")
	require.NoError(t, st.CreateUser(context.Background(), user))
}

func TestCreate_WritesSnapshot(t *testing.T) {
	svc, st, backupDir := setupBackupTest(t, 0)
	seedUser(t, st, "user-1", "one@example.com")

	result, err := svc.Create(context.Background())
	require.NoError(t, err)

	assert.Positive(t, result.Size)
	assert.FileExists(t, result.Path)
	assert.Equal(t, backupDir, filepath.Dir(result.Path))
}

func TestList_NewestFirst(t *testing.T) {
	svc, st, _ := setupBackupTest(t, 0)
	seedUser(t, st, "user-1", "one@example.com")

	first, err := svc.Create(context.Background())
	require.NoError(t, err)
	second, err := svc.Create(context.Background())
	require.NoError(t, err)

	backups, err := svc.List()
	require.NoError(t, err)
	require.Len(t, backups, 2)

	paths := []string{backups[0].Path, backups[1].Path}
	assert.Contains(t, paths, first.Path)
	assert.Contains(t, paths, second.Path)
	assert.False(t, backups[0].CreatedAt.Before(backups[1].CreatedAt))
}

func TestCreate_SameSecondKeepsBothSnapshots(t *testing.T) {
	svc, st, _ := setupBackupTest(t, 0)
	seedUser(t, st, "user-1", "one@example.com")

	// Back-to-back backups land within the same timestamp second; each
	// must still get its own file.
	first, err := svc.Create(context.Background())
	require.NoError(t, err)
	second, err := svc.Create(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.FileExists(t, first.Path)
	assert.FileExists(t, second.Path)
}

func TestList_EmptyDirIsNotAnError(t *testing.T) {
	svc, _, _ := setupBackupTest(t, 0)

	backups, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestRestore_RoundTrip(t *testing.T) {
	svc, st, backupDir := setupBackupTest(t, 0)
	seedUser(t, st, "user-1", "one@example.com")

	result, err := svc.Create(context.Background())
	require.NoError(t, err)

	// Restore into a fresh store.
	tmpDir, err := os.MkdirTemp("", "shelfmark-restore-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	fresh, err := store.New(filepath.Join(tmpDir, "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fresh.Close() })

	freshSvc := NewService(fresh, backupDir, 0, nil)
	require.NoError(t, freshSvc.Restore(context.Background(), filepath.Base(result.Path)))

	user, err := fresh.GetUserByEmail(context.Background(), "one@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestRestore_UnknownBackup(t *testing.T) {
	svc, _, _ := setupBackupTest(t, 0)

	err := svc.Restore(context.Background(), "backup-nope.shelfmark.bak")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestRestore_RejectsPathEscape(t *testing.T) {
	svc, _, _ := setupBackupTest(t, 0)

	err := svc.Restore(context.Background(), "../../etc/passwd")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestPrune_KeepsRetentionCount(t *testing.T) {
	svc, st, _ := setupBackupTest(t, 2)
	seedUser(t, st, "user-1", "one@example.com")

	for range 3 {
		_, err := svc.Create(context.Background())
		require.NoError(t, err)
	}

	backups, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}
