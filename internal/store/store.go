// Package store persists the category corpus as a JSON file with
// atomic writes and timestamped backups.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pickwise/internal/common"
	"pickwise/internal/model"
	"pickwise/internal/service"
)

// JSONStore is the file-backed CategoryStore. It is the single writer
// of the backing file; external dashboards read the same file and rely
// on the temp-write+rename discipline to never observe a partial store.
type JSONStore struct {
	path      string
	backupDir string
}

var _ service.CategoryStore = (*JSONStore)(nil)

// NewJSONStore creates a store rooted at path. Backups go to backupDir,
// which defaults to a "backups" directory next to the store file.
func NewJSONStore(path, backupDir string) (*JSONStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: store path is empty", common.ErrInvalidConfig)
	}
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(path), "backups")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.MkdirAll(backupDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &JSONStore{path: path, backupDir: backupDir}, nil
}

// Path returns the backing file location.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the full corpus. A missing backing file is a first run and
// yields an empty corpus; invalid JSON or duplicate IDs yield
// common.ErrCorruptStore.
func (s *JSONStore) Load(ctx context.Context) ([]model.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("store file does not exist, starting empty", "path", s.path)
		return []model.Category{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	var categories []model.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCorruptStore, s.path, err)
	}

	seen := make(map[string]struct{}, len(categories))
	for i := range categories {
		id := categories[i].CategoryID
		if id == "" {
			return nil, fmt.Errorf("%w: category %d has empty id", common.ErrCorruptStore, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %q", common.ErrCorruptStore, id)
		}
		seen[id] = struct{}{}
	}

	slog.Debug("loaded store", "path", s.path, "categories", len(categories))
	return categories, nil
}

// Save atomically replaces the backing file. The previous contents are
// copied to a timestamped backup first, then the new corpus is written
// to a temp file and renamed into place, so a crash mid-save never
// leaves a truncated store.
func (s *JSONStore) Save(ctx context.Context, categories []model.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(s.path); err == nil {
		if _, err := s.backup(); err != nil {
			return fmt.Errorf("%w: backup before save: %v", common.ErrPersistence, err)
		}
	}

	if err := s.writeDirect(categories); err != nil {
		return err
	}

	slog.Debug("saved store", "path", s.path, "categories", len(categories))
	return nil
}

// ClearAll resets every category to pending with an empty matrix. The
// prior store is backed up first; the backup path is returned for the
// operator's audit trail.
func (s *JSONStore) ClearAll(ctx context.Context) (string, error) {
	categories, err := s.Load(ctx)
	if err != nil {
		return "", err
	}

	backupPath := ""
	if _, err := os.Stat(s.path); err == nil {
		backupPath, err = s.backup()
		if err != nil {
			return "", fmt.Errorf("%w: backup before clear: %v", common.ErrPersistence, err)
		}
	}

	for i := range categories {
		categories[i].ClearEvaluation()
	}

	// Save would back up again; write directly since we just did.
	if err := s.writeDirect(categories); err != nil {
		return backupPath, err
	}

	slog.Info("cleared all category evaluations",
		"categories", len(categories),
		"backup", backupPath)
	return backupPath, nil
}

// FindByID returns the category with the given ID.
func (s *JSONStore) FindByID(ctx context.Context, id string) (*model.Category, error) {
	categories, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].CategoryID == id {
			cat := categories[i]
			return &cat, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", id, common.ErrNotFound)
}

// backup copies the current backing file to the backup directory. The
// filename embeds a wall-clock timestamp plus a short random suffix so
// two backups within the same second cannot collide.
func (s *JSONStore) backup() (string, error) {
	name := fmt.Sprintf("categories-%s-%s.json",
		time.Now().Format("20060102-150405"),
		uuid.NewString()[:8])
	dst := filepath.Join(s.backupDir, name)

	src, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("open store for backup: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			slog.Error("failed to close store file after backup", "error", closeErr)
		}
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy to backup: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close backup: %w", err)
	}

	slog.Debug("wrote store backup", "path", dst)
	return dst, nil
}

func (s *JSONStore) writeDirect(categories []model.Category) error {
	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", common.ErrPersistence, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".categories-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", common.ErrPersistence, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp file: %v", common.ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: sync temp file: %v", common.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %v", common.ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename into place: %v", common.ErrPersistence, err)
	}
	return nil
}
