// internal/httpapi/handlers_test.go
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"swipeshop-backend/internal/common/database"
	swipeerrors "swipeshop-backend/internal/common/errors"
	"swipeshop-backend/internal/common/logger"
	"swipeshop-backend/internal/models"
	"swipeshop-backend/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

// stubSearcher validates like the orchestrator and returns a canned result.
type stubSearcher struct {
	result *models.SearchResult
	err    error
}

func (s *stubSearcher) Search(_ context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	if missing := req.Validate(); len(missing) > 0 {
		return nil, swipeerrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(t *testing.T, searcher Searcher) *Server {
	t.Helper()
	mr := miniredis.RunT(t)
	db := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { db.Close() })

	st, err := store.New(db, logger.NewTestLogger(t))
	require.NoError(t, err)

	return NewServer(searcher, st, logger.NewTestLogger(t), nil)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func createUser(t *testing.T, router http.Handler, name, username string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/users", userPayload{Name: name, Username: username})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]interface{})
	return user["id"].(string)
}

func testProfile() models.PersonalizationProfile {
	return models.PersonalizationProfile{
		Gender:      "female",
		Budget:      "moderate",
		Motivations: []string{"quality"},
	}
}

// ==========================
// Search Endpoint Tests
// ==========================

func TestHandleSearch_Success(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{result: &models.SearchResult{
		Query:          "mug",
		OptimizedQuery: "ceramic coffee mug",
		Products: []models.RankedProduct{
			{Product: models.Product{ID: "a", Price: 9.99}, Rank: 1, Reasoning: "AI ranked"},
		},
		TotalResults: 1,
	}})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/search", models.SearchRequest{
		Query: "mug", CategoryID: "home", CategoryName: "Home",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ceramic coffee mug", body["optimizedQuery"])
}

func TestHandleSearch_MissingFields(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/search", models.SearchRequest{Query: "mug"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearch_CatalogFailureIs500(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{err: swipeerrors.NewCatalogUpstreamError("boom")})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/search", models.SearchRequest{
		Query: "mug", CategoryID: "home", CategoryName: "Home",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["error"])
}

// ==========================
// User Endpoint Tests
// ==========================

func TestHandleCreateUser(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/users", userPayload{Name: "Ada", Username: "ada_l"})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "ada_l", user["username"])
	assert.NotEmpty(t, user["id"])

	// Same username again conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/users", userPayload{Name: "Adele", Username: "ada_l"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleCreateUser_MissingFields(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/users", map[string]string{"name": "Ada"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetUser(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	router := srv.Router()
	id := createUser(t, router, "Ada", "ada_l")

	rec := doJSON(t, router, http.MethodGet, "/api/users/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/users/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleUpdateUser(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	router := srv.Router()
	id := createUser(t, router, "Ada", "ada_l")
	createUser(t, router, "Grace", "grace_h")

	rec := doJSON(t, router, http.MethodPut, "/api/users/"+id, userPayload{Name: "Ada L", Username: "countess"})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "countess", user["username"])

	// Somebody else's username is off limits.
	rec = doJSON(t, router, http.MethodPut, "/api/users/"+id, userPayload{Name: "Ada L", Username: "grace_h"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/users/nope", userPayload{Name: "X", Username: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCheckUsername(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	router := srv.Router()
	createUser(t, router, "Ada", "ada_l")

	rec := doJSON(t, router, http.MethodGet, "/api/check-username/ada_l", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, "ada_l", body["username"])

	rec = doJSON(t, router, http.MethodGet, "/api/check-username/fresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["available"])
}

// ==========================
// Survey Endpoint Tests
// ==========================

func TestHandleSurveyRoundTrip(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	router := srv.Router()
	id := createUser(t, router, "Ada", "ada_l")

	rec := doJSON(t, router, http.MethodPost, "/api/users/"+id+"/survey", testProfile())
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	rec = doJSON(t, router, http.MethodGet, "/api/users/"+id+"/survey", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	survey := decodeBody(t, rec)["survey"].(map[string]interface{})
	profile := survey["profile"].(map[string]interface{})
	assert.Equal(t, "moderate", profile["budget"])
}

func TestHandleSaveSurvey_UserMissing(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/users/nope/survey", testProfile())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetSurvey_NotFound(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	router := srv.Router()
	id := createUser(t, router, "Ada", "ada_l")

	rec := doJSON(t, router, http.MethodGet, "/api/users/"+id+"/survey", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ==========================
// Login & Health Tests
// ==========================

func TestHandleLogin(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	router := srv.Router()
	id := createUser(t, router, "Ada", "ada_l")

	// Before any survey, the survey field is an explicit null.
	rec := doJSON(t, router, http.MethodPost, "/api/login", loginPayload{Username: "ada_l"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Nil(t, body["survey"])
	assert.Equal(t, id, body["user"].(map[string]interface{})["id"])

	doJSON(t, router, http.MethodPost, "/api/users/"+id+"/survey", testProfile())

	rec = doJSON(t, router, http.MethodPost, "/api/login", loginPayload{Username: "ada_l"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decodeBody(t, rec)["survey"])
}

func TestHandleLogin_UnknownUsername(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/login", loginPayload{Username: "nobody"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleLogin_EmptyUsername(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/login", loginPayload{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &stubSearcher{})
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}
