// Package fabrication flags placeholder product data and implausible
// brand/category pairings in generated matrices.
package fabrication

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Pattern is one placeholder-name rule from the pattern table.
type Pattern struct {
	Name  string `yaml:"name"`
	Regex string `yaml:"regex"`
}

// BrandRule denylists a brand for category paths containing any of the
// given keywords. A brand absent from the denylist is always plausible.
type BrandRule struct {
	Brand    string   `yaml:"brand"`
	Keywords []string `yaml:"keywords"`
}

// Table is the versioned, data-driven rule set. It can be extended via
// a YAML file without touching detector or scheduler code.
type Table struct {
	Version  string      `yaml:"version"`
	Patterns []Pattern   `yaml:"patterns"`
	Denylist []BrandRule `yaml:"denylist"`
}

type compiledPattern struct {
	regex *regexp.Regexp
	Pattern
}

// Detector matches product and brand strings against a compiled rule
// table. Safe for concurrent readers.
type Detector struct {
	patterns []compiledPattern
	denylist []BrandRule
	version  string
	mu       sync.RWMutex
}

// NewDetector compiles the given table.
func NewDetector(table Table) (*Detector, error) {
	compiled, err := compile(table.Patterns)
	if err != nil {
		return nil, err
	}
	return &Detector{
		patterns: compiled,
		denylist: table.Denylist,
		version:  table.Version,
	}, nil
}

// NewDefaultDetector compiles the built-in rule table.
func NewDefaultDetector() (*Detector, error) {
	return NewDetector(DefaultTable())
}

// LoadTable reads a rule table from a YAML file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read pattern table: %w", err)
	}
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return Table{}, fmt.Errorf("failed to parse pattern table %s: %w", path, err)
	}
	if len(table.Patterns) == 0 {
		return Table{}, fmt.Errorf("pattern table %s contains no patterns", path)
	}
	return table, nil
}

// Version returns the loaded table's version string.
func (d *Detector) Version() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// IsFabricated reports whether either the product or the brand name
// matches a known placeholder template.
func (d *Detector) IsFabricated(productName, brandName string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, p := range d.patterns {
		if p.regex.MatchString(productName) || p.regex.MatchString(brandName) {
			return true
		}
	}
	return false
}

// IsBrandCategoryMismatch reports whether the brand is denylisted for
// the given category path. Only explicit denylist hits return true;
// unlisted brands are always treated as plausible. False negatives are
// acceptable here, false positives are not.
func (d *Detector) IsBrandCategoryMismatch(brand, categoryPath string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	brandLower := strings.ToLower(strings.TrimSpace(brand))
	for _, rule := range d.denylist {
		if strings.ToLower(rule.Brand) != brandLower {
			continue
		}
		for _, keyword := range rule.Keywords {
			if strings.Contains(categoryPath, keyword) {
				return true
			}
		}
	}
	return false
}

// UpdateTable swaps in a new rule table, recompiling its patterns.
func (d *Detector) UpdateTable(table Table) error {
	compiled, err := compile(table.Patterns)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.patterns = compiled
	d.denylist = table.Denylist
	d.version = table.Version
	d.mu.Unlock()
	return nil
}

func compile(patterns []Pattern) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		regex, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %s: %w", p.Name, err)
		}
		compiled = append(compiled, compiledPattern{Pattern: p, regex: regex})
	}
	return compiled, nil
}
