package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pickwise/internal/model"
)

// WriteProgressFile atomically replaces the telemetry file consumed by
// external dashboards. Temp-write+rename keeps readers from ever seeing
// a partially written batch.
func WriteProgressFile(path string, snap model.ProgressSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create progress directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".progress-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp progress file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close progress file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace progress file: %w", err)
	}
	return nil
}

// ReadProgressFile loads a previously written telemetry snapshot.
func ReadProgressFile(path string) (model.ProgressSnapshot, error) {
	var snap model.ProgressSnapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("failed to read progress file: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to parse progress file %s: %w", path, err)
	}
	return snap, nil
}
