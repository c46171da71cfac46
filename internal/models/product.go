package models

// Product is a catalog listing normalized from the heterogeneous upstream
// representation. Price is always ≥ 0 after normalization; the orchestrator
// drops products whose price normalized to 0.
type Product struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Image    string  `json:"image"`
	URL      string  `json:"url"`
}

// RankedProduct is a Product with its AI-assigned rank (1 = best) and the
// per-item rationale text.
type RankedProduct struct {
	Product
	Rank      int    `json:"rank"`
	Reasoning string `json:"reasoning"`
}
