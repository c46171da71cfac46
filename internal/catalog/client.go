// internal/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	swipeerrors "swipeshop-backend/internal/common/errors"
	"swipeshop-backend/internal/common/logger"
	"swipeshop-backend/internal/common/metrics"
	"swipeshop-backend/internal/models"
)

const (
	placeholderTitle = "Untitled product"
	placeholderImage = "https://placehold.co/400x400?text=No+Image"
	defaultCurrency  = "USD"
)

// Client calls the hosted product-search provider. There is no substitute
// data source, so every failure here is a hard CatalogUpstreamError.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		// Timeout is owned by the per-call context.
		httpClient: &http.Client{},
		logger:     log.With(map[string]interface{}{"component": "catalog"}),
	}
}

// Search fetches the first page of listings for the query and returns
// normalized products plus the provider's total match count. Products with
// an unresolvable price come back with Price 0 for the caller to filter.
func (c *Client) Search(ctx context.Context, query, categoryID string) ([]models.Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(query, categoryID), nil)
	if err != nil {
		return nil, 0, swipeerrors.NewCatalogUpstreamError(err.Error())
	}
	req.Header.Set("X-API-Key", c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("catalog", "error").Inc()
		return nil, 0, swipeerrors.NewCatalogUpstreamError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("catalog", "error").Inc()
		return nil, 0, swipeerrors.NewCatalogUpstreamError(err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequests.WithLabelValues("catalog", "error").Inc()
		c.logger.Error("catalog search rejected", map[string]interface{}{
			"status": resp.StatusCode,
			"query":  query,
		})
		return nil, 0, swipeerrors.NewCatalogUpstreamError(fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}
	metrics.UpstreamRequests.WithLabelValues("catalog", "ok").Inc()

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, 0, swipeerrors.NewCatalogUpstreamError("parse response: " + err.Error())
	}

	products := make([]models.Product, 0, len(parsed.Data.Products))
	for _, raw := range parsed.Data.Products {
		products = append(products, c.normalize(raw))
	}

	c.logger.Info("catalog search completed", map[string]interface{}{
		"query":    query,
		"products": len(products),
		"total":    parsed.Data.TotalResults,
	})

	return products, parsed.Data.TotalResults, nil
}

func (c *Client) buildURL(query, categoryID string) string {
	params := url.Values{}
	params.Set("q", query)
	if categoryID != "" {
		params.Set("category_id", categoryID)
	}
	params.Set("country", c.config.Country)
	params.Set("language", c.config.Language)
	params.Set("page", "1")
	params.Set("min_reviews", strconv.Itoa(c.config.MinReviews))
	return c.config.BaseURL + "/search?" + params.Encode()
}

// normalize fills placeholder defaults for missing presentation fields
// instead of dropping the listing.
func (c *Client) normalize(raw rawProduct) models.Product {
	p := models.Product{
		ID:       raw.ID,
		Title:    raw.Title,
		Price:    normalizePrice(raw.Price),
		Currency: raw.Currency,
		Image:    raw.Image,
		URL:      raw.URL,
	}
	if p.Title == "" {
		p.Title = placeholderTitle
	}
	if p.Currency == "" {
		p.Currency = defaultCurrency
	}
	if p.Image == "" {
		p.Image = placeholderImage
	}
	if p.URL == "" && p.ID != "" {
		p.URL = c.config.BaseURL + "/product/" + url.PathEscape(p.ID)
	}
	return p
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
