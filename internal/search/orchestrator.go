// Package search composes the optimizer, catalog adapter and ranker into a
// single request/response cycle and owns the fallback policy between them.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"swipeshop-backend/internal/ai/optimizer"
	"swipeshop-backend/internal/ai/ranker"
	swipeerrors "swipeshop-backend/internal/common/errors"
	"swipeshop-backend/internal/common/logger"
	"swipeshop-backend/internal/common/metrics"
	"swipeshop-backend/internal/models"
)

type Config struct {
	// MaxCandidates caps the price-filtered set handed to the ranker.
	MaxCandidates int
}

func LoadConfig() *Config {
	return &Config{MaxCandidates: 25}
}

type QueryOptimizer interface {
	Execute(ctx context.Context, input *optimizer.Input) (*optimizer.Result, error)
}

type ProductRanker interface {
	Execute(ctx context.Context, input *ranker.Input) (*ranker.Output, error)
}

type CatalogSearcher interface {
	Search(ctx context.Context, query, categoryID string) ([]models.Product, int, error)
}

type ProfileSource interface {
	GetSurvey(ctx context.Context, userID string) (*models.SurveyRecord, error)
}

type Orchestrator struct {
	config    *Config
	optimizer QueryOptimizer
	catalog   CatalogSearcher
	ranker    ProductRanker
	profiles  ProfileSource
	logger    logger.Logger
}

func NewOrchestrator(config *Config, opt QueryOptimizer, cat CatalogSearcher, rank ProductRanker, profiles ProfileSource, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		config:    config,
		optimizer: opt,
		catalog:   cat,
		ranker:    rank,
		profiles:  profiles,
		logger:    log.With(map[string]interface{}{"component": "orchestrator"}),
	}
}

// Search runs the full pipeline: profile lookup and a speculative
// profile-free optimization run concurrently; the optimization is redone
// with the profile only when the speculative run fell back, since a cached
// or successful profile-free rewrite is good enough to search on. Catalog
// failure fails the request. Ranking never does.
func (o *Orchestrator) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	start := time.Now()

	if missing := req.Validate(); len(missing) > 0 {
		metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		return nil, swipeerrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}

	var (
		wg      sync.WaitGroup
		profile *models.PersonalizationProfile
		specOpt *optimizer.Result
		specErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		specOpt, specErr = o.optimizer.Execute(ctx, &optimizer.Input{
			RawQuery:     req.Query,
			CategoryName: req.CategoryName,
		})
	}()

	if req.UserID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A user without a survey is normal; search proceeds unpersonalized.
			record, err := o.profiles.GetSurvey(ctx, req.UserID)
			if err == nil {
				profile = &record.Profile
			}
		}()
	}
	wg.Wait()

	if specErr != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, specErr
	}

	opt := specOpt
	if profile != nil && opt.UsedFallback {
		// The speculative run degraded; one more attempt with the profile
		// may still produce a personalized rewrite.
		retried, err := o.optimizer.Execute(ctx, &optimizer.Input{
			RawQuery:     req.Query,
			CategoryName: req.CategoryName,
			Profile:      profile,
		})
		if err != nil {
			metrics.SearchesTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		opt = retried
	}

	products, total, err := o.catalog.Search(ctx, opt.Optimized, req.CategoryID)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("catalog_error").Inc()
		return nil, err
	}

	candidates := filterCandidates(products, o.config.MaxCandidates)

	ranked, err := o.ranker.Execute(ctx, &ranker.Input{
		Query:    req.Query,
		Products: candidates,
		Profile:  profile,
	})
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	o.logger.Info("search completed", map[string]interface{}{
		"query":        req.Query,
		"optimized":    opt.Optimized,
		"candidates":   len(candidates),
		"totalResults": total,
		"personalized": profile != nil,
		"durationMs":   time.Since(start).Milliseconds(),
	})

	return &models.SearchResult{
		Query:                 req.Query,
		OptimizedQuery:        opt.Optimized,
		CategoryID:            req.CategoryID,
		CategoryName:          req.CategoryName,
		Products:              ranked.Ranked,
		TotalResults:          total,
		OptimizationReasoning: opt.Reasoning,
	}, nil
}

// filterCandidates drops listings whose price could not be normalized and
// caps the set handed to the ranker.
func filterCandidates(products []models.Product, limit int) []models.Product {
	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Price > 0 {
			kept = append(kept, p)
		}
		if len(kept) == limit {
			break
		}
	}
	return kept
}
