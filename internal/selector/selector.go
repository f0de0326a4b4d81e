// Package selector resolves one matrix cell at a time against the
// injected external fact source, enforcing domain invariants on what
// comes back.
package selector

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"pickwise/internal/model"
	"pickwise/internal/service"
)

// minRationaleLen is the minimum rune length for a selection rationale.
// Anything shorter is treated as a failed generation, not trimmed data.
const minRationaleLen = 10

// ValidationError reports a generated product fact that violates a
// domain invariant. It is never retryable: the fact source answered,
// the answer is just unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid product fact: %s: %s", e.Field, e.Reason)
}

// Selector drives the fact source for single cells and meters the
// cumulative call cost for the scheduler.
type Selector struct {
	source    service.FactSource
	totalCost float64
	calls     int
	mu        sync.Mutex
}

// New creates a selector over the given fact source.
func New(source service.FactSource) *Selector {
	return &Selector{source: source}
}

// Select resolves one (category, interval, dimension) cell. The
// returned record has its price validated against the interval bounds;
// an out-of-range price is a ValidationError, never silently clamped.
// Transient source failures surface as common.RetryableError from the
// source itself.
func (s *Selector) Select(ctx context.Context, category model.Category, interval model.PriceInterval, dimension model.EvaluationDimension) (model.ProductRecord, error) {
	result, err := s.source.GenerateFact(ctx, service.FactRequest{
		Category:  category,
		Interval:  interval,
		Dimension: dimension,
	})

	s.mu.Lock()
	s.calls++
	s.totalCost += result.Cost
	s.mu.Unlock()

	if err != nil {
		return model.ProductRecord{}, fmt.Errorf("fact source failed for %s/%s/%s: %w",
			category.Item, interval.Name, dimension.Name, err)
	}

	record := result.Product
	record.Dimension = dimension.Name

	if record.Price < interval.Min || record.Price > interval.Max {
		return model.ProductRecord{}, &ValidationError{
			Field: "price",
			Reason: fmt.Sprintf("%.2f outside interval %s [%.2f, %.2f]",
				record.Price, interval.Name, interval.Min, interval.Max),
		}
	}
	if record.Rating < model.RatingMin || record.Rating > model.RatingMax {
		return model.ProductRecord{}, &ValidationError{
			Field:  "rating",
			Reason: fmt.Sprintf("%.1f outside [%.1f, %.1f]", record.Rating, model.RatingMin, model.RatingMax),
		}
	}
	if utf8.RuneCountInString(record.Rationale) < minRationaleLen {
		return model.ProductRecord{}, &ValidationError{
			Field:  "rationale",
			Reason: fmt.Sprintf("too short (%d runes, need %d)", utf8.RuneCountInString(record.Rationale), minRationaleLen),
		}
	}
	if record.Name == "" || record.Brand == "" {
		return model.ProductRecord{}, &ValidationError{
			Field:  "name",
			Reason: "product or brand name is empty",
		}
	}

	return record, nil
}

// TotalCost returns the cumulative metered cost of all calls so far.
func (s *Selector) TotalCost() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCost
}

// Calls returns the number of fact-source invocations so far.
func (s *Selector) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
