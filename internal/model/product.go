package model

// Rating bounds for a ProductRecord.
const (
	RatingMin = 0.0
	RatingMax = 5.0
)

// ProductRecord is one cell of the price-interval × dimension matrix.
// Invariants enforced at selection time: price within the parent
// interval's bounds, rating within [RatingMin, RatingMax], non-empty
// rationale for records backed by a real generation call.
type ProductRecord struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Dimension   string  `json:"dimension"`
	Rationale   string  `json:"rationale"`
	Source      string  `json:"source"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}
