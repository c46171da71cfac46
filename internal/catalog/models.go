// internal/catalog/models.go
package catalog

import "encoding/json"

// Listings arrive with whatever the provider felt like sending that day.
// Price in particular shows up as a number, a formatted string or a nested
// object, so it stays raw until normalizePrice has a look.
type rawProduct struct {
	ID       string          `json:"product_id"`
	Title    string          `json:"product_title"`
	Price    json.RawMessage `json:"price"`
	Currency string          `json:"currency"`
	Image    string          `json:"product_photo"`
	URL      string          `json:"product_url"`
}

type searchResponse struct {
	Status string `json:"status"`
	Data   struct {
		TotalResults int          `json:"total_results"`
		Products     []rawProduct `json:"products"`
	} `json:"data"`
}
