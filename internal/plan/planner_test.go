package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanner_Deterministic(t *testing.T) {
	p := NewPlanner()

	tests := []struct {
		name   string
		level1 string
		level2 string
	}{
		{name: "known level1", level1: "个护健康", level2: "剃须用品"},
		{name: "another known level1", level1: "数码电子", level2: "电脑配件"},
		{name: "unknown level1 uses fallback", level1: "新奇分类", level2: "whatever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := p.SelectIntervals(tt.level1, tt.level2)
			second := p.SelectIntervals(tt.level1, tt.level2)
			assert.Equal(t, first, second, "interval planning must be deterministic")

			firstDims := p.SelectDimensions(tt.level1, tt.level2)
			secondDims := p.SelectDimensions(tt.level1, tt.level2)
			assert.Equal(t, firstDims, secondDims, "dimension planning must be deterministic")
		})
	}
}

func TestPlanner_PersonalCareTable(t *testing.T) {
	p := NewPlanner()

	intervals := p.SelectIntervals("个护健康", "剃须用品")
	require.Len(t, intervals, 3)
	dims := p.SelectDimensions("个护健康", "剃须用品")
	require.Len(t, dims, 3)

	// Bands must be ordered and non-overlapping.
	for i := 1; i < len(intervals); i++ {
		assert.GreaterOrEqual(t, intervals[i].Min, intervals[i-1].Max)
	}
	for _, iv := range intervals {
		assert.Less(t, iv.Min, iv.Max)
		assert.NotEmpty(t, iv.Name)
	}
}

func TestPlanner_FallbackRule(t *testing.T) {
	p := NewPlanner()

	intervals := p.SelectIntervals("不存在的分类", "")
	require.Len(t, intervals, 3)
	assert.Equal(t, "经济型", intervals[0].Name)

	dims := p.SelectDimensions("不存在的分类", "")
	require.Len(t, dims, 3)
	assert.Equal(t, "性价比最高", dims[0].Name)
}

func TestPlanner_CallersCannotMutateTables(t *testing.T) {
	p := NewPlanner()

	intervals := p.SelectIntervals("个护健康", "剃须用品")
	intervals[0].Name = "mutated"

	fresh := p.SelectIntervals("个护健康", "剃须用品")
	assert.NotEqual(t, "mutated", fresh[0].Name)
}

func TestPlanner_AllTableEntriesWellFormed(t *testing.T) {
	for level1, intervals := range defaultIntervalTable() {
		require.NotEmptyf(t, intervals, "level1 %s has no intervals", level1)
		for i := 1; i < len(intervals); i++ {
			assert.GreaterOrEqualf(t, intervals[i].Min, intervals[i-1].Max,
				"level1 %s bands overlap", level1)
		}
	}
	for level1, dims := range defaultDimensionTable() {
		require.NotEmptyf(t, dims, "level1 %s has no dimensions", level1)
		seen := map[string]bool{}
		for _, d := range dims {
			assert.Falsef(t, seen[d.Name], "level1 %s repeats dimension %s", level1, d.Name)
			seen[d.Name] = true
		}
	}
}
