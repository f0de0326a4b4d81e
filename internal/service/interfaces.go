// Package service defines the interfaces wiring the pipeline's components together.
package service

import (
	"context"
	"time"

	"pickwise/internal/model"
)

// CategoryStore is the contract for the persisted category corpus.
// There is a single writer (the scheduler); all other consumers are
// read-only and rely on the store's atomic-write guarantee.
type CategoryStore interface {
	// Load reads the full corpus. A missing backing file yields an empty
	// corpus; an unreadable one yields common.ErrCorruptStore.
	Load(ctx context.Context) ([]model.Category, error)

	// Save atomically replaces the backing file, writing a timestamped
	// backup of the previous contents first.
	Save(ctx context.Context, categories []model.Category) error

	// ClearAll resets every category to pending with an empty matrix,
	// backing up the prior store first. Returns the backup path.
	ClearAll(ctx context.Context) (string, error)

	// FindByID returns the category with the given ID, or
	// common.ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Category, error)
}

// FactRequest carries the context the external fact source needs to
// produce one matrix cell.
type FactRequest struct {
	Category  model.Category
	Interval  model.PriceInterval
	Dimension model.EvaluationDimension
}

// FactResult is the fact source's answer for one cell, plus the metered
// cost of the call.
type FactResult struct {
	Product model.ProductRecord
	Cost    float64
}

// FactSource generates product facts for single matrix cells.
// Implementations own their per-call timeout; transient failures are
// reported as common.RetryableError.
type FactSource interface {
	GenerateFact(ctx context.Context, req FactRequest) (FactResult, error)
}

// IntervalPlanner selects the price bands for a category's
// classification path. Deterministic for identical input.
type IntervalPlanner interface {
	SelectIntervals(level1, level2 string) []model.PriceInterval
}

// DimensionPlanner selects the evaluation dimensions for a category's
// classification path. Deterministic for identical input.
type DimensionPlanner interface {
	SelectDimensions(level1, level2 string) []model.EvaluationDimension
}

// RetryOptions configures retry behavior for operations against the
// fact source.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
