// Package httpapi exposes the search and user operations as a JSON HTTP
// API under the /api prefix.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swipeshop-backend/internal/common/logger"
	"swipeshop-backend/internal/common/observability"
	"swipeshop-backend/internal/models"
)

// validator/v10 checks request payload struct tags before any store call.
var validate = validator.New()

// UserStore is the persistence surface the API needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, username string) (*models.UserProfile, error)
	GetUser(ctx context.Context, id string) (*models.UserProfile, error)
	UpdateUser(ctx context.Context, id, name, username string) (*models.UserProfile, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
	LookupByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	SaveSurvey(ctx context.Context, userID string, profile *models.PersonalizationProfile) (*models.SurveyRecord, error)
	GetSurvey(ctx context.Context, userID string) (*models.SurveyRecord, error)
}

type Searcher interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error)
}

type Server struct {
	searcher Searcher
	store    UserStore
	logger   logger.Logger
	obs      *observability.Observability
}

func NewServer(searcher Searcher, store UserStore, log logger.Logger, obs *observability.Observability) *Server {
	return &Server{
		searcher: searcher,
		store:    store,
		logger:   log.With(map[string]interface{}{"component": "httpapi"}),
		obs:      obs,
	}
}

// Router builds the full route table. Prometheus scraping stays at the
// root, everything client-facing lives under /api.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requestMiddleware)

	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodPost)
	api.HandleFunc("/check-username/{username}", s.handleCheckUsername).Methods(http.MethodGet)
	api.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{userId}", s.handleGetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}", s.handleUpdateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{userId}/survey", s.handleSaveSurvey).Methods(http.MethodPost)
	api.HandleFunc("/users/{userId}/survey", s.handleGetSurvey).Methods(http.MethodGet)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	return r
}

// requestMiddleware records per-route request metrics.
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		if s.obs != nil {
			s.obs.RecordRequest(r.Context(), route, strconv.Itoa(rec.status))
			s.obs.RecordRequestDuration(r.Context(), route, time.Since(start))
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
