package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LatestBackup returns the path of the most recent backup, or an empty
// string when none exist. Backup names sort lexically by timestamp.
func (s *JSONStore) LatestBackup() (string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to list backups: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "categories-") && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}

	sort.Strings(names)
	return filepath.Join(s.backupDir, names[len(names)-1]), nil
}

// BackupCount returns how many backups are on disk.
func (s *JSONStore) BackupCount() (int, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to list backups: %w", err)
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), "categories-") {
			count++
		}
	}
	return count, nil
}
