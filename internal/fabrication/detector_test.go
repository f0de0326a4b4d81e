package fabrication

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_IsFabricated(t *testing.T) {
	detector, err := NewDefaultDetector()
	require.NoError(t, err)

	tests := []struct {
		name    string
		product string
		brand   string
		want    bool
	}{
		{name: "placeholder brand and model", product: "知名品牌A", brand: "经济款B", want: true},
		{name: "placeholder brand only", product: "知名品牌A", brand: "Gillette", want: true},
		{name: "placeholder model only", product: "Gillette Mach3", brand: "高端款C", want: true},
		{name: "bare brand letter", product: "品牌B", brand: "品牌B", want: true},
		{name: "mou placeholder", product: "某品牌剃须刀", brand: "某品牌", want: true},
		{name: "xx placeholder", product: "XX牌", brand: "XX", want: true},
		{name: "real product", product: "Gillette Mach3", brand: "Gillette", want: false},
		{name: "real chinese brand", product: "飞利浦 S5000", brand: "飞利浦", want: false},
		{name: "brand containing letter suffix word", product: "索尼 WH-1000XM5", brand: "索尼", want: false},
		{name: "empty strings", product: "", brand: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.IsFabricated(tt.product, tt.brand))
		})
	}
}

func TestDetector_IsBrandCategoryMismatch(t *testing.T) {
	detector, err := NewDefaultDetector()
	require.NoError(t, err)

	tests := []struct {
		name     string
		brand    string
		category string
		want     bool
	}{
		{name: "denylisted pairing", brand: "Apple", category: "个护健康/棉签/医用棉签", want: true},
		{name: "denylisted pairing case-insensitive brand", brand: "apple", category: "个护健康/棉签/医用棉签", want: true},
		{name: "denylisted brand plausible category", brand: "Apple", category: "数码电子/手机/智能手机", want: false},
		{name: "unlisted brand never flagged", brand: "SomeUnlistedBrand", category: "个护健康/棉签/医用棉签", want: false},
		{name: "chinese brand plausible category", brand: "茅台", category: "食品饮料/白酒/酱香型白酒", want: false},
		{name: "chinese brand denylisted hit", brand: "茅台", category: "母婴用品/纸尿裤/尿不湿", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.IsBrandCategoryMismatch(tt.brand, tt.category))
		})
	}
}

func TestLoadTable(t *testing.T) {
	content := `version: "test.1"
patterns:
  - name: test-pattern
    regex: "^测试款[A-Z]$"
denylist:
  - brand: TestBrand
    keywords: [测试]
`
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "test.1", table.Version)

	detector, err := NewDetector(table)
	require.NoError(t, err)
	assert.Equal(t, "test.1", detector.Version())
	assert.True(t, detector.IsFabricated("测试款A", "x"))
	assert.False(t, detector.IsFabricated("知名品牌A", "x"), "custom table replaces defaults")
	assert.True(t, detector.IsBrandCategoryMismatch("TestBrand", "家居/测试/物品"))
}

func TestLoadTable_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no patterns", content: `version: "1"`},
		{name: "bad yaml", content: "patterns: [}{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "patterns.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o640))
			_, err := LoadTable(path)
			require.Error(t, err)
		})
	}
}

func TestDetector_UpdateTable(t *testing.T) {
	detector, err := NewDefaultDetector()
	require.NoError(t, err)
	require.True(t, detector.IsFabricated("知名品牌A", ""))

	err = detector.UpdateTable(Table{
		Version:  "next",
		Patterns: []Pattern{{Name: "only", Regex: `^占位符$`}},
	})
	require.NoError(t, err)

	assert.Equal(t, "next", detector.Version())
	assert.True(t, detector.IsFabricated("占位符", ""))
	assert.False(t, detector.IsFabricated("知名品牌A", ""))
}

func TestDetector_BadPattern(t *testing.T) {
	_, err := NewDetector(Table{Patterns: []Pattern{{Name: "broken", Regex: "("}}})
	require.Error(t, err)
}
