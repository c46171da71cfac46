// Package client is a Go SDK for the swipeshop API plus the client-side
// pieces of the search contract: request coordination with in-flight
// cancellation, a result TTL cache, the cart and search history.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"swipeshop-backend/internal/models"
)

// Client calls the HTTP API. The zero timeout leaves deadline control to
// the caller's context, matching the server's per-stage budgets.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Search posts a search request and decodes the result bundle.
func (c *Client) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	var result models.SearchResult
	if err := c.do(ctx, http.MethodPost, "/api/search", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateUser registers a user, claiming the username.
func (c *Client) CreateUser(ctx context.Context, name, username string) (*models.UserProfile, error) {
	var resp struct {
		User *models.UserProfile `json:"user"`
	}
	payload := map[string]string{"name": name, "username": username}
	if err := c.do(ctx, http.MethodPost, "/api/users", payload, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login resolves a username to its user record and survey, if any.
func (c *Client) Login(ctx context.Context, username string) (*models.UserProfile, *models.SurveyRecord, error) {
	var resp struct {
		User   *models.UserProfile  `json:"user"`
		Survey *models.SurveyRecord `json:"survey"`
	}
	payload := map[string]string{"username": username}
	if err := c.do(ctx, http.MethodPost, "/api/login", payload, &resp); err != nil {
		return nil, nil, err
	}
	return resp.User, resp.Survey, nil
}

// CheckUsername reports whether a username is free.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	var resp struct {
		Available bool `json:"available"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/check-username/"+username, nil, &resp); err != nil {
		return false, err
	}
	return resp.Available, nil
}

// SaveSurvey submits a completed survey for the user.
func (c *Client) SaveSurvey(ctx context.Context, userID string, profile *models.PersonalizationProfile) (*models.SurveyRecord, error) {
	var resp struct {
		Survey *models.SurveyRecord `json:"survey"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/"+userID+"/survey", profile, &resp); err != nil {
		return nil, err
	}
	return resp.Survey, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("api: %s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("api: status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
