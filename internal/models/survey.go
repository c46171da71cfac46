package models

import "time"

// PersonalizationProfile is the structured result of the onboarding survey.
// Created once on survey completion, replaced wholesale on re-survey, and
// never modified by the search path.
type PersonalizationProfile struct {
	Gender           string   `json:"gender"`
	Categories       []string `json:"categories"`
	Budget           string   `json:"budget"`
	Motivations      []string `json:"motivations"` // rank-ordered, most important first, max 3
	BrandPreference  string   `json:"brandPreference"`
	ShoppingPattern  string   `json:"shoppingPattern"`
	StylePreferences []string `json:"stylePreferences"`
	DealSensitivity  string   `json:"dealSensitivity"`
	OtherCategory    string   `json:"otherCategory"`
}

// SurveyRecord wraps a profile with storage metadata.
type SurveyRecord struct {
	UserID      string                 `json:"userId"`
	Profile     PersonalizationProfile `json:"profile"`
	Version     int                    `json:"version"`
	CompletedAt time.Time              `json:"completedAt"`
}

// Signature returns the coarse profile signature used in AI cache keys.
// Only gender and budget participate so cache hits survive survey edits
// that do not change those two axes.
func (p *PersonalizationProfile) Signature() string {
	if p == nil {
		return "|"
	}
	return p.Gender + "|" + p.Budget
}

// TopMotivation returns the highest-ranked motivation, or "".
func (p *PersonalizationProfile) TopMotivation() string {
	if p == nil || len(p.Motivations) == 0 {
		return ""
	}
	return p.Motivations[0]
}
