package models

import "strings"

// SearchRequest is the transient per-call search input.
type SearchRequest struct {
	Query        string `json:"query"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	UserID       string `json:"userId,omitempty"`
}

// Validate reports whether the request carries all required fields.
func (r *SearchRequest) Validate() []string {
	var missing []string
	if strings.TrimSpace(r.Query) == "" {
		missing = append(missing, "query")
	}
	if r.CategoryID == "" {
		missing = append(missing, "category_id")
	}
	if r.CategoryName == "" {
		missing = append(missing, "category_name")
	}
	return missing
}

// SearchResult is the normalized bundle returned to the client. Products are
// sorted ascending by rank.
type SearchResult struct {
	Query                 string          `json:"query"`
	OptimizedQuery        string          `json:"optimizedQuery"`
	CategoryID            string          `json:"categoryId"`
	CategoryName          string          `json:"categoryName"`
	Products              []RankedProduct `json:"products"`
	TotalResults          int             `json:"totalResults"`
	OptimizationReasoning string          `json:"optimizationReasoning"`
}
