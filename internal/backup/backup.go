// Package backup creates and manages snapshots of the Badger store.
//
// Snapshots use Badger's native backup stream written to timestamped
// files, so a restore needs nothing beyond this server binary.
package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// ErrBackupNotFound is returned when a named backup file does not exist.
var ErrBackupNotFound = errors.New("backup not found")

const backupExt = ".shelfmark.bak"

// Service manages backup creation, listing and pruning.
type Service struct {
	store     *store.Store
	backupDir string
	keep      int
	logger    *slog.Logger
}

// NewService creates a backup service. keep is the number of most recent
// backups retained after pruning; zero or negative disables pruning.
func NewService(st *store.Store, backupDir string, keep int, logger *slog.Logger) *Service {
	return &Service{
		store:     st,
		backupDir: backupDir,
		keep:      keep,
		logger:    logger,
	}
}

// Result describes a completed backup.
type Result struct {
	Path     string        `json:"path"`
	Size     int64         `json:"size"`
	Duration time.Duration `json:"duration"`
}

// Info describes a backup file on disk.
type Info struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Create writes a full snapshot to a timestamped file in the backup
// directory and prunes old backups past the retention count.
func (s *Service) Create(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	start := time.Now()

	f, path, err := s.newBackupFile(start)
	if err != nil {
		return nil, fmt.Errorf("create backup file: %w", err)
	}

	if _, err := s.store.Backup(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write backup: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close backup file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat backup file: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Backup complete",
			"path", path,
			"size", stat.Size(),
			"duration", time.Since(start),
		)
	}

	if err := s.prune(); err != nil && s.logger != nil {
		s.logger.Warn("Backup pruning failed", "error", err)
	}

	return &Result{
		Path:     path,
		Size:     stat.Size(),
		Duration: time.Since(start),
	}, nil
}

// newBackupFile opens a fresh snapshot file for writing. Timestamps have
// second precision, so when a backup from the same second already exists
// a counter suffix keeps the new file from clobbering it.
func (s *Service) newBackupFile(now time.Time) (*os.File, string, error) {
	timestamp := now.Format("2006-01-02-150405")

	for n := 0; ; n++ {
		name := "backup-" + timestamp
		if n > 0 {
			name = fmt.Sprintf("%s-%d", name, n)
		}

		path := filepath.Join(s.backupDir, name+backupExt)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return f, path, nil
	}
}

// List returns the backups on disk, newest first.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupExt) {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, Info{
			Name:      entry.Name(),
			Path:      filepath.Join(s.backupDir, entry.Name()),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore loads the named backup into the store. The caller is
// responsible for quiescing writes first.
func (s *Service) Restore(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Names come from List; reject anything trying to escape the dir.
	if name != filepath.Base(name) {
		return ErrBackupNotFound
	}

	path := filepath.Join(s.backupDir, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	if err := s.store.Restore(f); err != nil {
		return fmt.Errorf("load backup: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Backup restored", "path", path)
	}

	return nil
}

// prune removes backups past the retention count, oldest first.
func (s *Service) prune() error {
	if s.keep <= 0 {
		return nil
	}

	backups, err := s.List()
	if err != nil {
		return err
	}

	for _, old := range backups[min(s.keep, len(backups)):] {
		if err := os.Remove(old.Path); err != nil {
			return fmt.Errorf("remove old backup %s: %w", old.Name, err)
		}
		if s.logger != nil {
			s.logger.Info("Pruned old backup", "name", old.Name)
		}
	}

	return nil
}
