// Package model defines the core domain records used throughout the pipeline.
package model

import "time"

// EvaluationStatus tracks where a category sits in the batch pipeline.
type EvaluationStatus string

// Evaluation status constants.
const (
	StatusPending    EvaluationStatus = "pending"
	StatusProcessing EvaluationStatus = "processing"
	StatusCompleted  EvaluationStatus = "completed"
	StatusFailed     EvaluationStatus = "failed"
)

// Category is one product classification evaluated by the pipeline.
// The store owns the canonical list; the scheduler mutates status and
// matrix fields and writes back through the store.
type Category struct {
	LastEvaluated        time.Time             `json:"lastEvaluated"`
	CategoryID           string                `json:"categoryId"`
	Level1               string                `json:"level1"`
	Level2               string                `json:"level2"`
	Item                 string                `json:"item"`
	EvaluationStatus     EvaluationStatus      `json:"evaluationStatus"`
	PriceIntervals       []PriceInterval       `json:"priceIntervals,omitempty"`
	EvaluationDimensions []EvaluationDimension `json:"evaluationDimensions,omitempty"`
	BestProducts         []IntervalProducts    `json:"bestProducts,omitempty"`
	SuccessRatio         float64               `json:"successRatio,omitempty"`
	NeedsRealData        bool                  `json:"needsRealData"`
}

// PriceInterval is a bounded price band assigned to a category.
// Immutable after assignment.
type PriceInterval struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

// EvaluationDimension is a named judging criterion (e.g. "best value").
// Immutable after assignment.
type EvaluationDimension struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// IntervalProducts groups the per-dimension picks for one price interval.
type IntervalProducts struct {
	Interval PriceInterval   `json:"interval"`
	Products []ProductRecord `json:"products"`
}

// CategoryPath returns the human classification path for display and
// brand-plausibility checks.
func (c *Category) CategoryPath() string {
	return c.Level1 + "/" + c.Level2 + "/" + c.Item
}

// ClearEvaluation resets the category to its corpus-load state: pending
// status, empty matrix, no planning assignments.
func (c *Category) ClearEvaluation() {
	c.EvaluationStatus = StatusPending
	c.PriceIntervals = nil
	c.EvaluationDimensions = nil
	c.BestProducts = nil
	c.SuccessRatio = 0
	c.NeedsRealData = true
	c.LastEvaluated = time.Time{}
}

// CellCount returns the number of filled matrix cells.
func (c *Category) CellCount() int {
	n := 0
	for _, ip := range c.BestProducts {
		n += len(ip.Products)
	}
	return n
}
