// internal/ai/ranker/handler.go
package ranker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"swipeshop-backend/internal/ai/genai"
	"swipeshop-backend/internal/common/cache"
	"swipeshop-backend/internal/common/logger"
	"swipeshop-backend/internal/common/metrics"
	"swipeshop-backend/internal/models"
)

const (
	Stage = "product-ranker"

	reasoningDefault     = "AI ranked"
	reasoningUnavailable = "Default ranking (AI unavailable)"
	reasoningError       = "Default ranking (error)"
)

var ErrNilInput = errors.New("input cannot be nil")

type Handler struct {
	config *Config
	genai  *genai.Client
	cache  *cache.Cache[[]rankEntry]
	logger logger.Logger
}

// NewCache builds the cache this handler expects; wiring code never touches
// the unexported entry type directly.
func NewCache(ttl time.Duration) *cache.Cache[[]rankEntry] {
	return cache.New[[]rankEntry](ttl)
}

func NewHandler(config *Config, client *genai.Client, aiCache *cache.Cache[[]rankEntry], log logger.Logger) *Handler {
	return &Handler{
		config: config,
		genai:  client,
		cache:  aiCache,
		logger: log.With(map[string]interface{}{"stage": Stage}),
	}
}

// Execute orders the candidates best-first. Ranking degradation is never an
// error: every failure path yields the identity ranking (rank = original
// 1-based position) with the documented reasoning string.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if len(input.Products) == 0 {
		return &Output{Ranked: []models.RankedProduct{}}, nil
	}

	if !h.genai.Configured() {
		return h.defaultRanking(input.Products, reasoningUnavailable), nil
	}

	ids := make([]string, len(input.Products))
	for i, p := range input.Products {
		ids[i] = p.ID
	}
	// The id-sequence hash makes a hit valid only for the identical
	// candidate list, so positional replay cannot mis-assign ranks.
	key := cache.Key("rank", input.Query, strconv.Itoa(len(input.Products)), input.Profile.Signature(), cache.HashIDs(ids))

	if entries, ok := h.cache.Get(key); ok {
		metrics.CacheRequests.WithLabelValues("ai", "hit").Inc()
		return h.applyRanking(input.Products, entries), nil
	}
	metrics.CacheRequests.WithLabelValues("ai", "miss").Inc()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	entries, err := h.rank(ctx, input)
	if err != nil {
		metrics.AIFallbacks.WithLabelValues(Stage).Inc()
		h.logger.Warn("ranking degraded to positional order", map[string]interface{}{
			"query": input.Query,
			"error": err.Error(),
		})
		return h.defaultRanking(input.Products, reasoningError), nil
	}

	h.cache.Set(key, entries)
	return h.applyRanking(input.Products, entries), nil
}

func (h *Handler) rank(ctx context.Context, input *Input) ([]rankEntry, error) {
	candidates := input.Products
	if len(candidates) > h.config.MaxCandidates {
		candidates = candidates[:h.config.MaxCandidates]
	}

	temp := h.config.Temperature
	text, err := h.genai.GenerateText(ctx, h.buildPrompt(input.Query, candidates, input.Profile), &genai.GenerateOptions{
		Temperature:     &temp,
		MaxOutputTokens: h.config.MaxTokens,
	})
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("genai", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequests.WithLabelValues("genai", "ok").Inc()

	raw, ok := genai.ExtractJSONArray(text)
	if !ok {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var entries []rankEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	h.logger.Info("candidates ranked", map[string]interface{}{
		"query":      input.Query,
		"candidates": len(candidates),
		"rankings":   len(entries),
	})

	return entries, nil
}

// applyRanking maps (position, rank, reasoning) entries back onto the full
// product list by original position. Products the model skipped keep their
// 1-based position as rank.
func (h *Handler) applyRanking(products []models.Product, entries []rankEntry) *Output {
	byPosition := make(map[int]rankEntry, len(entries))
	for _, e := range entries {
		if e.Position >= 1 && e.Position <= len(products) && e.Rank >= 1 {
			byPosition[e.Position] = e
		}
	}

	ranked := make([]models.RankedProduct, len(products))
	for i, p := range products {
		rp := models.RankedProduct{Product: p, Rank: i + 1, Reasoning: reasoningDefault}
		if e, ok := byPosition[i+1]; ok {
			rp.Rank = e.Rank
			if e.Reasoning != "" {
				rp.Reasoning = e.Reasoning
			}
		}
		ranked[i] = rp
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})

	return &Output{Ranked: ranked}
}

func (h *Handler) defaultRanking(products []models.Product, reasoning string) *Output {
	ranked := make([]models.RankedProduct, len(products))
	for i, p := range products {
		ranked[i] = models.RankedProduct{Product: p, Rank: i + 1, Reasoning: reasoning}
	}
	return &Output{Ranked: ranked}
}

func (h *Handler) buildPrompt(query string, candidates []models.Product, profile *models.PersonalizationProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rank these products for the search %q, best match first.\n", query)

	if profile != nil {
		b.WriteString("Shopper:")
		if m := profile.TopMotivation(); m != "" {
			fmt.Fprintf(&b, " cares most about %s;", m)
		}
		if profile.Budget != "" {
			fmt.Fprintf(&b, " budget %s;", profile.Budget)
		}
		if profile.Gender != "" {
			fmt.Fprintf(&b, " gender %s;", profile.Gender)
		}
		b.WriteString("\n")
	}

	b.WriteString("Products:\n")
	for i, p := range candidates {
		fmt.Fprintf(&b, "%d. %s — %.2f %s\n", i+1, p.Title, p.Price, p.Currency)
	}

	b.WriteString(`Respond with a strict JSON array only: [{"position": <1-based input position>, "rank": <1=best>, "reasoning": "..."}] covering every product.`)
	return b.String()
}
