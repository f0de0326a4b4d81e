package selector

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"pickwise/internal/common"
	"pickwise/internal/service"
)

// MockFactSource is a deterministic stand-in for the external fact
// source. It derives every field from a hash of the request, so the
// same cell always yields the same product; no randomness anywhere.
type MockFactSource struct {
	// FailItems maps category items to an error returned for every cell
	// of that category. Used to exercise failure paths.
	FailItems map[string]error
	// FailFirstN makes the first N calls fail with a retryable error,
	// then succeed. Exercises the retry path.
	FailFirstN int
	// CostPerCall is the metered cost reported per invocation.
	CostPerCall float64

	calls int
	mu    sync.Mutex
}

// mockBrands keys plausible brand/product pools by top-level
// classification so generated picks pass brand-plausibility checks.
var mockBrands = map[string][]string{
	"个护健康": {"Gillette", "飞利浦", "欧乐B", "舒肤佳", "高露洁"},
	"数码电子": {"小米", "Anker", "索尼", "罗技", "三星"},
	"家用电器": {"美的", "格力", "海尔", "松下", "西门子"},
	"厨房用品": {"苏泊尔", "双立人", "爱仕达", "WMF", "炊大皇"},
	"美妆护肤": {"珂润", "理肤泉", "薇诺娜", "资生堂", "雅诗兰黛"},
	"母婴用品": {"好奇", "帮宝适", "贝亲", "爱他美", "babycare"},
	"运动户外": {"迪卡侬", "李宁", "凯乐石", "牧高笛", "萨洛蒙"},
	"食品饮料": {"三只松鼠", "伊利", "农夫山泉", "百草味", "良品铺子"},
}

var mockBrandsFallback = []string{"京造", "网易严选", "名创优品", "无印良品"}

// GenerateFact produces a deterministic product fact for the request.
func (m *MockFactSource) GenerateFact(_ context.Context, req service.FactRequest) (service.FactResult, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.mu.Unlock()

	cost := m.CostPerCall
	if cost == 0 {
		cost = 0.002
	}

	if call <= m.FailFirstN {
		return service.FactResult{Cost: cost}, &common.RetryableError{
			Err:       fmt.Errorf("simulated transient failure on call %d", call),
			Retryable: true,
		}
	}
	if err, ok := m.FailItems[req.Category.Item]; ok {
		return service.FactResult{Cost: cost}, err
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(req.Category.CategoryID))
	_, _ = h.Write([]byte(req.Interval.Name))
	_, _ = h.Write([]byte(req.Dimension.Name))
	seed := h.Sum64()

	brands := mockBrands[req.Category.Level1]
	if len(brands) == 0 {
		brands = mockBrandsFallback
	}
	brand := brands[seed%uint64(len(brands))]

	span := req.Interval.Max - req.Interval.Min
	price := req.Interval.Min + span*float64(seed%97)/96.0
	rating := 4.0 + float64(seed%11)/10.0

	result := service.FactResult{Cost: cost}
	result.Product.Name = fmt.Sprintf("%s %s%d", brand, req.Category.Item, seed%900+100)
	result.Product.Brand = brand
	result.Product.Price = price
	result.Product.Rating = rating
	result.Product.ReviewCount = int(seed%50000) + 500
	result.Product.Rationale = fmt.Sprintf("在%s价位段的%s对比中，该产品在「%s」维度表现最突出。",
		req.Interval.Name, req.Category.Item, req.Dimension.Name)
	result.Product.Source = "mock"
	return result, nil
}

// Calls returns the number of invocations recorded.
func (m *MockFactSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
