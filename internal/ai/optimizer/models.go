// internal/ai/optimizer/models.go
package optimizer

import "swipeshop-backend/internal/models"

type Input struct {
	RawQuery     string                         `json:"rawQuery"`
	CategoryName string                         `json:"categoryName"`
	Profile      *models.PersonalizationProfile `json:"profile,omitempty"`
}

// Result carries the rewritten query. UsedFallback is the control-flow signal
// for the orchestrator's re-optimization branch; reasoning text is display
// material only and never inspected.
type Result struct {
	Optimized    string `json:"optimized_search"`
	Reasoning    string `json:"reasoning"`
	UsedFallback bool   `json:"-"`
}
