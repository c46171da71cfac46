// internal/ai/ranker/models.go
package ranker

import "swipeshop-backend/internal/models"

type Input struct {
	Query    string                         `json:"query"`
	Products []models.Product               `json:"products"`
	Profile  *models.PersonalizationProfile `json:"profile,omitempty"`
}

type Output struct {
	Ranked []models.RankedProduct `json:"ranked"`
}

// rankEntry is one (position, rank, reasoning) assignment, both as parsed
// from the model reply and as stored in the cache. Positions are 1-based
// into the candidate list that was ranked.
type rankEntry struct {
	Position  int    `json:"position"`
	Rank      int    `json:"rank"`
	Reasoning string `json:"reasoning"`
}
