// Package plan selects price intervals and evaluation dimensions for a
// category from static rule tables keyed on its top-level classification.
package plan

import "pickwise/internal/model"

// Planner implements both the interval and dimension planners over the
// built-in rule tables. Selection is a pure lookup: identical input
// always yields identical ordered output, so re-planning an already
// classified category is a no-op change.
type Planner struct {
	intervals  map[string][]model.PriceInterval
	dimensions map[string][]model.EvaluationDimension
}

// NewPlanner creates a planner over the default rule tables.
func NewPlanner() *Planner {
	return &Planner{
		intervals:  defaultIntervalTable(),
		dimensions: defaultDimensionTable(),
	}
}

// SelectIntervals returns the ordered price bands for a classification
// path. Unknown level1 values fall back to a generic three-band split.
func (p *Planner) SelectIntervals(level1, _ string) []model.PriceInterval {
	if bands, ok := p.intervals[level1]; ok {
		return cloneIntervals(bands)
	}
	return cloneIntervals(fallbackIntervals)
}

// SelectDimensions returns the ordered evaluation dimensions for a
// classification path. Unknown level1 values fall back to the generic
// value/quality/reputation trio.
func (p *Planner) SelectDimensions(level1, _ string) []model.EvaluationDimension {
	if dims, ok := p.dimensions[level1]; ok {
		return cloneDimensions(dims)
	}
	return cloneDimensions(fallbackDimensions)
}

// Callers get copies so a mutated category can never corrupt the table.
func cloneIntervals(in []model.PriceInterval) []model.PriceInterval {
	out := make([]model.PriceInterval, len(in))
	copy(out, in)
	return out
}

func cloneDimensions(in []model.EvaluationDimension) []model.EvaluationDimension {
	out := make([]model.EvaluationDimension, len(in))
	copy(out, in)
	return out
}
