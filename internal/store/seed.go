package store

import (
	"fmt"
	"hash/fnv"
	"os"

	"gopkg.in/yaml.v3"

	"pickwise/internal/model"
)

// SeedGroup is one level1/level2 node of a corpus seed file with its
// leaf items.
type SeedGroup struct {
	Level1 string   `yaml:"level1" json:"level1"`
	Level2 string   `yaml:"level2" json:"level2"`
	Items  []string `yaml:"items" json:"items"`
}

// SeedFile is a category corpus definition. YAML and JSON both parse.
type SeedFile struct {
	Version    string      `yaml:"version" json:"version"`
	Categories []SeedGroup `yaml:"categories" json:"categories"`
}

// LoadSeedFile reads a corpus seed file.
func LoadSeedFile(path string) (SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return SeedFile{}, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if len(seed.Categories) == 0 {
		return SeedFile{}, fmt.Errorf("seed file %s contains no categories", path)
	}
	return seed, nil
}

// MergeSeed adds the seed's categories to an existing corpus, skipping
// classification paths already present. IDs derive from the path, so
// seeding is idempotent.
func MergeSeed(existing []model.Category, seed SeedFile) ([]model.Category, int) {
	known := make(map[string]struct{}, len(existing))
	for i := range existing {
		known[existing[i].CategoryPath()] = struct{}{}
	}

	added := 0
	for _, group := range seed.Categories {
		for _, item := range group.Items {
			cat := model.Category{
				Level1:           group.Level1,
				Level2:           group.Level2,
				Item:             item,
				EvaluationStatus: model.StatusPending,
				NeedsRealData:    true,
			}
			path := cat.CategoryPath()
			if _, dup := known[path]; dup {
				continue
			}
			cat.CategoryID = categoryID(path)
			known[path] = struct{}{}
			existing = append(existing, cat)
			added++
		}
	}
	return existing, added
}

// categoryID derives a stable ID from the classification path.
func categoryID(path string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(path))
	return fmt.Sprintf("cat-%012x", h.Sum64()&0xffffffffffff)
}
