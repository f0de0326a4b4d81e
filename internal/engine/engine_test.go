package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickwise/internal/common"
	"pickwise/internal/fabrication"
	"pickwise/internal/model"
	"pickwise/internal/plan"
	"pickwise/internal/selector"
	"pickwise/internal/service"
	"pickwise/internal/store"
)

func testConfig() Config {
	return Config{
		BatchSize:  3,
		CallDelay:  0,
		BatchDelay: 0,
		Retry:      DefaultConfig().Retry,
	}
}

func newTestStore(t *testing.T, categories []model.Category) *store.JSONStore {
	t.Helper()
	s, err := store.NewJSONStore(filepath.Join(t.TempDir(), "categories.json"), "")
	require.NoError(t, err)
	if categories != nil {
		require.NoError(t, s.Save(context.Background(), categories))
	}
	return s
}

func pendingCategory(id, level1, level2, item string) model.Category {
	return model.Category{
		CategoryID:       id,
		Level1:           level1,
		Level2:           level2,
		Item:             item,
		EvaluationStatus: model.StatusPending,
		NeedsRealData:    true,
	}
}

func newScheduler(st *store.JSONStore, source *selector.MockFactSource, config Config) *Scheduler {
	planner := plan.NewPlanner()
	return New(st, selector.New(source), planner, planner, config)
}

func TestScheduler_RunCompletesAllCategories(t *testing.T) {
	categories := []model.Category{
		pendingCategory("c1", "个护健康", "剃须用品", "一次性剃须刀"),
		pendingCategory("c2", "数码电子", "电脑配件", "机械键盘"),
		pendingCategory("c3", "厨房用品", "锅具", "炒锅"),
		pendingCategory("c4", "食品饮料", "坚果", "混合坚果"),
	}
	st := newTestStore(t, categories)

	scheduler := newScheduler(st, &selector.MockFactSource{}, testConfig())
	summary, err := scheduler.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.CategoriesCompleted)
	assert.Equal(t, 0, summary.CategoriesFailed)
	assert.Equal(t, 36, summary.CellsAttempted, "4 categories x 3 intervals x 3 dimensions")
	assert.Equal(t, 36, summary.CellsSucceeded)
	assert.Greater(t, summary.TotalCost, 0.0)

	final, err := st.Load(context.Background())
	require.NoError(t, err)
	for _, cat := range final {
		assert.Equal(t, model.StatusCompleted, cat.EvaluationStatus)
		assert.Equal(t, 1.0, cat.SuccessRatio)
		assert.False(t, cat.NeedsRealData)
		assert.False(t, cat.LastEvaluated.IsZero())
		assert.Equal(t, 9, cat.CellCount())
	}
}

func TestScheduler_ResumeNormalizesProcessing(t *testing.T) {
	categories := []model.Category{
		pendingCategory("c1", "个护健康", "剃须用品", "一次性剃须刀"),
		pendingCategory("c2", "厨房用品", "锅具", "炒锅"),
		pendingCategory("c3", "食品饮料", "坚果", "混合坚果"),
	}
	// Simulate a crash: two categories stuck in processing.
	categories[0].EvaluationStatus = model.StatusProcessing
	categories[2].EvaluationStatus = model.StatusProcessing
	st := newTestStore(t, categories)

	scheduler := newScheduler(st, &selector.MockFactSource{}, testConfig())
	summary, err := scheduler.Run(context.Background())
	require.NoError(t, err)

	// The stuck categories must not be treated as already attempted.
	assert.Equal(t, 3, summary.CategoriesCompleted)

	final, err := st.Load(context.Background())
	require.NoError(t, err)
	for _, cat := range final {
		assert.NotEqual(t, model.StatusPending, cat.EvaluationStatus)
		assert.NotEqual(t, model.StatusProcessing, cat.EvaluationStatus)
	}
}

func TestScheduler_RetryableFailureIsRetried(t *testing.T) {
	categories := []model.Category{
		pendingCategory("c1", "个护健康", "剃须用品", "一次性剃须刀"),
	}
	st := newTestStore(t, categories)

	// First call fails transiently; the bounded retry must absorb it.
	source := &selector.MockFactSource{FailFirstN: 1}
	config := testConfig()
	config.Retry.InitialDelay = time.Millisecond

	scheduler := newScheduler(st, source, config)
	summary, err := scheduler.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CategoriesCompleted)
	assert.Equal(t, 9, summary.CellsSucceeded)
	assert.Equal(t, 10, source.Calls(), "one retry on top of nine cells")
}

func TestScheduler_TotalFailureMarksCategoryFailed(t *testing.T) {
	categories := []model.Category{
		pendingCategory("c1", "个护健康", "剃须用品", "一次性剃须刀"),
		pendingCategory("c2", "厨房用品", "锅具", "炒锅"),
	}
	st := newTestStore(t, categories)

	source := &selector.MockFactSource{
		FailItems: map[string]error{
			"一次性剃须刀": &common.RetryableError{Err: errors.New("source rejects category"), Retryable: false},
		},
	}

	scheduler := newScheduler(st, source, testConfig())
	summary, err := scheduler.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CategoriesCompleted)
	assert.Equal(t, 1, summary.CategoriesFailed)

	final, err := st.Load(context.Background())
	require.NoError(t, err)
	for _, cat := range final {
		switch cat.Item {
		case "一次性剃须刀":
			assert.Equal(t, model.StatusFailed, cat.EvaluationStatus)
			assert.True(t, cat.NeedsRealData)
			assert.Zero(t, cat.SuccessRatio)
		case "炒锅":
			assert.Equal(t, model.StatusCompleted, cat.EvaluationStatus)
		}
	}
}

func TestScheduler_EmptyStore(t *testing.T) {
	st := newTestStore(t, nil)
	scheduler := newScheduler(st, &selector.MockFactSource{}, testConfig())

	_, err := scheduler.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyCorpus)
}

func TestScheduler_InterruptIsCleanExit(t *testing.T) {
	categories := []model.Category{
		pendingCategory("c1", "个护健康", "剃须用品", "一次性剃须刀"),
		pendingCategory("c2", "厨房用品", "锅具", "炒锅"),
	}
	st := newTestStore(t, categories)

	ctx, cancel := context.WithCancel(context.Background())
	cancelling := &cancellingSource{inner: &selector.MockFactSource{}, cancel: cancel, after: 4}

	planner := plan.NewPlanner()
	scheduler := New(st, selector.New(cancelling), planner, planner, testConfig())

	summary, err := scheduler.Run(ctx)
	require.NoError(t, err, "interrupt must not be an error")
	assert.True(t, summary.Interrupted)

	// Whatever was persisted is resumable: nothing lost, nothing stuck
	// beyond what normalization handles.
	final, loadErr := st.Load(context.Background())
	require.NoError(t, loadErr)
	assert.Len(t, final, 2)

	// A follow-up run finishes the job.
	scheduler2 := newScheduler(st, &selector.MockFactSource{}, testConfig())
	summary2, err := scheduler2.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, summary2.Interrupted)

	final, err = st.Load(context.Background())
	require.NoError(t, err)
	for _, cat := range final {
		assert.Equal(t, model.StatusCompleted, cat.EvaluationStatus)
	}
}

// cancellingSource cancels the run context after a fixed number of
// calls, simulating an interrupt landing mid-category.
type cancellingSource struct {
	inner  *selector.MockFactSource
	cancel context.CancelFunc
	after  int
	calls  int
}

func (c *cancellingSource) GenerateFact(ctx context.Context, req service.FactRequest) (service.FactResult, error) {
	c.calls++
	if c.calls == c.after {
		c.cancel()
	}
	return c.inner.GenerateFact(ctx, req)
}

func TestScheduler_ProgressFileReflectsPersistedBatches(t *testing.T) {
	categories := []model.Category{
		pendingCategory("c1", "个护健康", "剃须用品", "一次性剃须刀"),
		pendingCategory("c2", "厨房用品", "锅具", "炒锅"),
	}
	st := newTestStore(t, categories)

	config := testConfig()
	config.BatchSize = 1
	config.ProgressPath = filepath.Join(t.TempDir(), "progress.json")

	scheduler := newScheduler(st, &selector.MockFactSource{}, config)
	_, err := scheduler.Run(context.Background())
	require.NoError(t, err)

	snap, err := ReadProgressFile(config.ProgressPath)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, 2, snap.Completed)
	assert.Equal(t, 0, snap.Pending)
	assert.Equal(t, 18, snap.CellsFilled)
	assert.Equal(t, 2, snap.BatchesPersisted)
	assert.NotEmpty(t, snap.RunID)
	assert.Greater(t, snap.CumulativeCost, 0.0)
}

func TestScheduler_StableProcessingOrder(t *testing.T) {
	categories := []model.Category{
		pendingCategory("c1", "个护健康", "剃须用品", "一次性剃须刀"),
		pendingCategory("c2", "厨房用品", "锅具", "炒锅"),
		pendingCategory("c3", "食品饮料", "坚果", "混合坚果"),
	}
	categories[1].EvaluationStatus = model.StatusCompleted

	batch := selectBatch(categories, 10)
	assert.Equal(t, []int{0, 2}, batch, "pending categories in original order")

	batch = selectBatch(categories, 1)
	assert.Equal(t, []int{0}, batch, "bounded by batch size")
}

func TestScheduler_ShavingScenario(t *testing.T) {
	// A 3x3 category must end with exactly 9 records, every brand
	// plausible for its classification.
	categories := []model.Category{
		pendingCategory("c1", "个护健康", "剃须用品", "一次性剃须刀"),
	}
	st := newTestStore(t, categories)

	scheduler := newScheduler(st, &selector.MockFactSource{}, testConfig())
	_, err := scheduler.Run(context.Background())
	require.NoError(t, err)

	cat, err := st.FindByID(context.Background(), "c1")
	require.NoError(t, err)

	require.Len(t, cat.PriceIntervals, 3)
	require.Len(t, cat.EvaluationDimensions, 3)
	assert.Equal(t, 9, cat.CellCount())

	detector, err := fabrication.NewDefaultDetector()
	require.NoError(t, err)
	for _, ip := range cat.BestProducts {
		require.Len(t, ip.Products, 3)
		for _, product := range ip.Products {
			assert.False(t, detector.IsFabricated(product.Name, product.Brand))
			assert.False(t, detector.IsBrandCategoryMismatch(product.Brand, cat.CategoryPath()))
			assert.GreaterOrEqual(t, product.Price, ip.Interval.Min)
			assert.LessOrEqual(t, product.Price, ip.Interval.Max)
		}
	}
}

func TestFinishCategory_PartialSuccessPolicy(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		succeeded  int
		wantStatus model.EvaluationStatus
		wantRatio  float64
		wantNeeds  bool
	}{
		{name: "all cells", total: 9, succeeded: 9, wantStatus: model.StatusCompleted, wantRatio: 1, wantNeeds: false},
		{name: "partial", total: 9, succeeded: 5, wantStatus: model.StatusCompleted, wantRatio: 5.0 / 9.0, wantNeeds: true},
		{name: "single cell", total: 9, succeeded: 1, wantStatus: model.StatusCompleted, wantRatio: 1.0 / 9.0, wantNeeds: true},
		{name: "wipeout", total: 9, succeeded: 0, wantStatus: model.StatusFailed, wantRatio: 0, wantNeeds: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := pendingCategory("c1", "个护健康", "剃须用品", "一次性剃须刀")
			finishCategory(&cat, tt.total, tt.succeeded, State{})

			assert.Equal(t, tt.wantStatus, cat.EvaluationStatus)
			assert.InDelta(t, tt.wantRatio, cat.SuccessRatio, 1e-9)
			assert.Equal(t, tt.wantNeeds, cat.NeedsRealData)
			if tt.succeeded == tt.total {
				assert.False(t, cat.LastEvaluated.IsZero())
			} else {
				assert.True(t, cat.LastEvaluated.IsZero())
			}
		})
	}
}
