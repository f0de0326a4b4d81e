package main

import (
	"fmt"

	"github.com/spf13/viper"

	"pickwise/internal/fabrication"
	"pickwise/internal/store"
)

// defaultStorePath is used when neither flag, env, nor config file
// names a store location.
const defaultStorePath = "data/categories.json"

func openStore() (*store.JSONStore, error) {
	path := viper.GetString("store.path")
	if path == "" {
		path = defaultStorePath
	}
	backupDir := viper.GetString("store.backup_dir")

	s, err := store.NewJSONStore(path, backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

// newDetector builds the fabrication detector, preferring a configured
// pattern table file over the built-in rules.
func newDetector() (*fabrication.Detector, error) {
	if path := viper.GetString("patterns.file"); path != "" {
		table, err := fabrication.LoadTable(path)
		if err != nil {
			return nil, err
		}
		return fabrication.NewDetector(table)
	}
	return fabrication.NewDefaultDetector()
}
