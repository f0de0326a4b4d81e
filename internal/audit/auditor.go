// Package audit scans persisted matrices for fabricated data. Read-only
// over the store; safe to re-run after every repair pass.
package audit

import (
	"fmt"

	"pickwise/internal/fabrication"
	"pickwise/internal/model"
)

// maxExamples caps the report's example list so report size stays
// bounded regardless of corpus size.
const maxExamples = 10

// Example pinpoints one suspect matrix cell.
type Example struct {
	CategoryID string `json:"categoryId"`
	Category   string `json:"category"`
	Interval   string `json:"interval"`
	Dimension  string `json:"dimension"`
	Product    string `json:"product"`
	Brand      string `json:"brand"`
	Problem    string `json:"problem"`
}

// Report summarizes one audit pass.
type Report struct {
	PatternVersion  string    `json:"patternVersion"`
	Examples        []Example `json:"examples"`
	TotalCategories int       `json:"totalCategories"`
	TotalCells      int       `json:"totalCells"`
	FabricatedCells int       `json:"fabricatedCells"`
	MismatchedCells int       `json:"mismatchedCells"`
}

// Clean reports whether the audit found nothing suspect.
func (r Report) Clean() bool {
	return r.FabricatedCells == 0 && r.MismatchedCells == 0
}

// Auditor runs fabrication checks over a category corpus.
type Auditor struct {
	detector *fabrication.Detector
}

// New creates an auditor over the given detector.
func New(detector *fabrication.Detector) *Auditor {
	return &Auditor{detector: detector}
}

// Audit scans every persisted matrix cell. A pure function of the
// corpus: the same input always yields the same report.
func (a *Auditor) Audit(categories []model.Category) Report {
	report := Report{
		TotalCategories: len(categories),
		PatternVersion:  a.detector.Version(),
	}

	for i := range categories {
		cat := &categories[i]
		path := cat.CategoryPath()
		for _, ip := range cat.BestProducts {
			for _, product := range ip.Products {
				report.TotalCells++

				if a.detector.IsFabricated(product.Name, product.Brand) {
					report.FabricatedCells++
					report.addExample(cat, ip.Interval, product, "placeholder name")
					continue
				}
				if a.detector.IsBrandCategoryMismatch(product.Brand, path) {
					report.MismatchedCells++
					report.addExample(cat, ip.Interval, product,
						fmt.Sprintf("brand %q implausible for %s", product.Brand, path))
				}
			}
		}
	}
	return report
}

func (r *Report) addExample(cat *model.Category, interval model.PriceInterval, product model.ProductRecord, problem string) {
	if len(r.Examples) >= maxExamples {
		return
	}
	r.Examples = append(r.Examples, Example{
		CategoryID: cat.CategoryID,
		Category:   cat.CategoryPath(),
		Interval:   interval.Name,
		Dimension:  product.Dimension,
		Product:    product.Name,
		Brand:      product.Brand,
		Problem:    problem,
	})
}
