// Package engine implements the batch scheduler that drives category
// evaluation: select pending categories, fill their price × dimension
// matrices through the selector, persist each batch before the next.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"pickwise/internal/common"
	"pickwise/internal/model"
	"pickwise/internal/service"
)

// CellSelector resolves single matrix cells and meters call cost.
type CellSelector interface {
	Select(ctx context.Context, category model.Category, interval model.PriceInterval, dimension model.EvaluationDimension) (model.ProductRecord, error)
	TotalCost() float64
	Calls() int
}

// Config holds scheduler tuning options.
type Config struct {
	ProgressPath string
	BatchSize    int
	CallDelay    time.Duration
	BatchDelay   time.Duration
	Retry        service.RetryOptions
	ShowProgress bool
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		BatchSize:  10,
		CallDelay:  500 * time.Millisecond,
		BatchDelay: 2 * time.Second,
		Retry: service.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: time.Second,
		},
	}
}

// State carries a run's accumulated counters. It is passed into and
// returned from each batch step; the scheduler keeps no package-level
// mutable state.
type State struct {
	RunID               string
	CategoriesCompleted int
	CategoriesFailed    int
	CellsAttempted      int
	CellsSucceeded      int
	BatchesPersisted    int
	Normalized          int
	Interrupted         bool
}

// Summary is the user-facing result of a run.
type Summary struct {
	RunID               string
	CategoriesCompleted int
	CategoriesFailed    int
	CellsAttempted      int
	CellsSucceeded      int
	CellsFailed         int
	TotalCost           float64
	Elapsed             time.Duration
	Interrupted         bool
}

// Scheduler orchestrates batch evaluation over the category store.
// Single-threaded by design: one category at a time, one batch
// persisted before the next is selected.
type Scheduler struct {
	store     service.CategoryStore
	selector  CellSelector
	intervals service.IntervalPlanner
	dims      service.DimensionPlanner
	config    Config
}

// New creates a scheduler with the given dependencies.
func New(store service.CategoryStore, sel CellSelector, intervals service.IntervalPlanner, dims service.DimensionPlanner, config Config) *Scheduler {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	return &Scheduler{
		store:     store,
		selector:  sel,
		intervals: intervals,
		dims:      dims,
		config:    config,
	}
}

// Run executes the batch loop until no pending categories remain or
// the context is canceled. A cancellation is a clean exit; only store
// corruption or a persistence failure is an error.
func (s *Scheduler) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	state := State{RunID: uuid.NewString()}

	slog.Info("Starting evaluation run",
		"run_id", state.RunID,
		"batch_size", s.config.BatchSize)

	categories, err := s.store.Load(ctx)
	if err != nil {
		return s.summarize(state, start), err
	}
	if len(categories) == 0 {
		return s.summarize(state, start), common.ErrEmptyCorpus
	}

	// A crash can leave categories stuck in processing. They were never
	// persisted as attempted, so they go back in the queue.
	state = s.normalizeLeftovers(ctx, categories, state)
	if state.Normalized > 0 {
		if err := s.store.Save(ctx, categories); err != nil {
			return s.summarize(state, start), err
		}
	}

	bar := s.newProgressBar(categories)

	for {
		batch := selectBatch(categories, s.config.BatchSize)
		if len(batch) == 0 {
			break
		}

		state, err = s.processBatch(ctx, categories, batch, state, bar)
		if err != nil && !errors.Is(err, context.Canceled) {
			return s.summarize(state, start), err
		}

		// Persist the batch even when interrupted mid-category so
		// completed categories in it are not re-billed; a category cut
		// off mid-matrix stays processing and is normalized next run.
		if saveErr := s.store.Save(context.WithoutCancel(ctx), categories); saveErr != nil {
			return s.summarize(state, start), saveErr
		}
		state.BatchesPersisted++
		s.writeProgress(categories, state)

		if err != nil {
			state.Interrupted = true
			slog.Info("Run interrupted, progress persisted", "run_id", state.RunID)
			return s.summarize(state, start), nil
		}

		if waitErr := sleepCtx(ctx, s.config.BatchDelay); waitErr != nil {
			state.Interrupted = true
			return s.summarize(state, start), nil
		}
	}

	s.writeProgress(categories, state)
	summary := s.summarize(state, start)
	slog.Info("Evaluation run complete",
		"run_id", state.RunID,
		"completed", summary.CategoriesCompleted,
		"failed", summary.CategoriesFailed,
		"cells_succeeded", summary.CellsSucceeded,
		"cells_failed", summary.CellsFailed,
		"cost", summary.TotalCost)
	return summary, nil
}

// normalizeLeftovers resets categories stuck in processing back to
// pending, exactly once per run, before the first batch is selected.
func (s *Scheduler) normalizeLeftovers(_ context.Context, categories []model.Category, state State) State {
	for i := range categories {
		if categories[i].EvaluationStatus == model.StatusProcessing {
			categories[i].EvaluationStatus = model.StatusPending
			state.Normalized++
		}
	}
	if state.Normalized > 0 {
		slog.Warn("Normalized categories left processing by a previous run",
			"count", state.Normalized)
	}
	return state
}

// selectBatch returns indexes of up to batchSize pending categories in
// stable original order, so processing order is auditable across runs.
func selectBatch(categories []model.Category, batchSize int) []int {
	batch := make([]int, 0, batchSize)
	for i := range categories {
		if categories[i].EvaluationStatus == model.StatusPending {
			batch = append(batch, i)
			if len(batch) == batchSize {
				break
			}
		}
	}
	return batch
}

// processBatch drives every category in the batch through the full
// matrix. Returns context.Canceled when interrupted between cells.
func (s *Scheduler) processBatch(ctx context.Context, categories []model.Category, batch []int, state State, bar *progressbar.ProgressBar) (State, error) {
	for _, idx := range batch {
		cat := &categories[idx]
		catStart := time.Now()

		cat.EvaluationStatus = model.StatusProcessing
		cat.PriceIntervals = s.intervals.SelectIntervals(cat.Level1, cat.Level2)
		cat.EvaluationDimensions = s.dims.SelectDimensions(cat.Level1, cat.Level2)
		cat.BestProducts = nil

		attempted, succeeded, err := s.fillMatrix(ctx, cat)
		state.CellsAttempted += attempted
		state.CellsSucceeded += succeeded
		if err != nil {
			// Interrupted mid-matrix; leave the category processing so
			// the next run's normalization pass requeues it.
			return state, err
		}

		total := len(cat.PriceIntervals) * len(cat.EvaluationDimensions)
		state = finishCategory(cat, total, succeeded, state)

		slog.Info("Category evaluated",
			"category", cat.Item,
			"status", cat.EvaluationStatus,
			"cells_attempted", attempted,
			"cells_succeeded", succeeded,
			"elapsed", time.Since(catStart).Round(time.Millisecond),
			"cumulative_cost", s.selector.TotalCost())

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return state, nil
}

// fillMatrix resolves every (interval, dimension) pair sequentially,
// honoring cancellation between cells and pacing calls with the
// configured delay.
func (s *Scheduler) fillMatrix(ctx context.Context, cat *model.Category) (attempted, succeeded int, err error) {
	for _, interval := range cat.PriceIntervals {
		picks := model.IntervalProducts{Interval: interval}
		for _, dim := range cat.EvaluationDimensions {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return attempted, succeeded, ctxErr
			}

			attempted++
			record, cellErr := s.resolveCell(ctx, *cat, interval, dim)
			if cellErr != nil {
				if errors.Is(cellErr, context.Canceled) || errors.Is(cellErr, context.DeadlineExceeded) {
					return attempted, succeeded, context.Canceled
				}
				slog.Warn("Cell failed",
					"category", cat.Item,
					"interval", interval.Name,
					"dimension", dim.Name,
					"error", cellErr)
			} else {
				picks.Products = append(picks.Products, record)
				succeeded++
			}

			if waitErr := sleepCtx(ctx, s.config.CallDelay); waitErr != nil {
				if len(picks.Products) > 0 {
					cat.BestProducts = append(cat.BestProducts, picks)
				}
				return attempted, succeeded, waitErr
			}
		}
		if len(picks.Products) > 0 {
			cat.BestProducts = append(cat.BestProducts, picks)
		}
	}
	return attempted, succeeded, nil
}

// resolveCell runs one cell with a single bounded retry for retryable
// fact-source failures. Validation failures are final on first sight.
func (s *Scheduler) resolveCell(ctx context.Context, cat model.Category, interval model.PriceInterval, dim model.EvaluationDimension) (model.ProductRecord, error) {
	var record model.ProductRecord
	err := common.WithRetry(ctx, func() error {
		var selErr error
		record, selErr = s.selector.Select(ctx, cat, interval, dim)
		return selErr
	}, s.config.Retry)
	return record, err
}

// finishCategory applies the partial-success policy: completed when at
// least one cell succeeded, failed only on a total wipeout. The success
// ratio is recorded either way.
func finishCategory(cat *model.Category, total, succeeded int, state State) State {
	now := time.Now()
	if succeeded == 0 {
		cat.EvaluationStatus = model.StatusFailed
		cat.SuccessRatio = 0
		cat.NeedsRealData = true
		state.CategoriesFailed++
		return state
	}

	cat.EvaluationStatus = model.StatusCompleted
	cat.SuccessRatio = float64(succeeded) / float64(total)
	cat.NeedsRealData = succeeded < total
	if succeeded == total {
		cat.LastEvaluated = now
	}
	state.CategoriesCompleted++
	return state
}

func (s *Scheduler) summarize(state State, start time.Time) Summary {
	return Summary{
		RunID:               state.RunID,
		CategoriesCompleted: state.CategoriesCompleted,
		CategoriesFailed:    state.CategoriesFailed,
		CellsAttempted:      state.CellsAttempted,
		CellsSucceeded:      state.CellsSucceeded,
		CellsFailed:         state.CellsAttempted - state.CellsSucceeded,
		TotalCost:           s.selector.TotalCost(),
		Elapsed:             time.Since(start).Round(time.Millisecond),
		Interrupted:         state.Interrupted,
	}
}

func (s *Scheduler) newProgressBar(categories []model.Category) *progressbar.ProgressBar {
	if !s.config.ShowProgress {
		return nil
	}
	pending := 0
	for i := range categories {
		if categories[i].EvaluationStatus == model.StatusPending {
			pending++
		}
	}
	return progressbar.NewOptions(pending,
		progressbar.OptionSetDescription("evaluating categories"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// writeProgress publishes the telemetry file after a fully persisted
// batch. Failures are logged, not fatal: telemetry is advisory.
func (s *Scheduler) writeProgress(categories []model.Category, state State) {
	if s.config.ProgressPath == "" {
		return
	}
	snap := model.Snapshot(categories)
	snap.RunID = state.RunID
	snap.BatchesPersisted = state.BatchesPersisted
	snap.CumulativeCost = s.selector.TotalCost()
	if err := WriteProgressFile(s.config.ProgressPath, snap); err != nil {
		slog.Warn("Failed to write progress file", "path", s.config.ProgressPath, "error", err)
	}
}
