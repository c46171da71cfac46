// internal/ai/optimizer/handler.go
package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"swipeshop-backend/internal/ai/genai"
	"swipeshop-backend/internal/common/cache"
	"swipeshop-backend/internal/common/logger"
	"swipeshop-backend/internal/common/metrics"
)

const (
	Stage = "query-optimizer"

	// FallbackReasoning is the documented reasoning string for the
	// deterministic fallback path.
	FallbackReasoning = "Direct search (AI optimization unavailable)"
)

var ErrNilInput = errors.New("input cannot be nil")

type Handler struct {
	config *Config
	genai  *genai.Client
	cache  *cache.Cache[Result]
	logger logger.Logger
}

func NewHandler(config *Config, client *genai.Client, aiCache *cache.Cache[Result], log logger.Logger) *Handler {
	return &Handler{
		config: config,
		genai:  client,
		cache:  aiCache,
		logger: log.With(map[string]interface{}{"stage": Stage}),
	}
}

// Execute rewrites a raw search phrase for catalog search semantics. Upstream
// degradation is never an error to callers: any failure yields the
// deterministic fallback (optimized = raw query) with UsedFallback set.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Result, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	key := cache.Key("opt", input.RawQuery, input.CategoryName, input.Profile.Signature())
	if cached, ok := h.cache.Get(key); ok {
		metrics.CacheRequests.WithLabelValues("ai", "hit").Inc()
		return &cached, nil
	}
	metrics.CacheRequests.WithLabelValues("ai", "miss").Inc()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	result, err := h.optimize(ctx, input)
	if err != nil {
		metrics.AIFallbacks.WithLabelValues(Stage).Inc()
		h.logger.Warn("optimization degraded to direct search", map[string]interface{}{
			"query": input.RawQuery,
			"error": err.Error(),
		})
		return &Result{
			Optimized:    input.RawQuery,
			Reasoning:    FallbackReasoning,
			UsedFallback: true,
		}, nil
	}

	// Only successful optimizations are cached; fallbacks must stay
	// retryable on the next request.
	h.cache.Set(key, *result)
	return result, nil
}

func (h *Handler) optimize(ctx context.Context, input *Input) (*Result, error) {
	text, err := h.genai.GenerateText(ctx, h.buildPrompt(input), nil)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("genai", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequests.WithLabelValues("genai", "ok").Inc()

	raw, ok := genai.ExtractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var parsed struct {
		OptimizedSearch string `json:"optimized_search"`
		Reasoning       string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if strings.TrimSpace(parsed.OptimizedSearch) == "" {
		return nil, fmt.Errorf("empty optimized_search in response")
	}

	h.logger.Info("query optimized", map[string]interface{}{
		"query":     input.RawQuery,
		"optimized": parsed.OptimizedSearch,
	})

	return &Result{
		Optimized: parsed.OptimizedSearch,
		Reasoning: parsed.Reasoning,
	}, nil
}

func (h *Handler) buildPrompt(input *Input) string {
	var b strings.Builder
	b.WriteString("You optimize e-commerce search queries.\n")
	fmt.Fprintf(&b, "Raw query: %q\nCategory: %q\n", input.RawQuery, input.CategoryName)

	if p := input.Profile; p != nil {
		b.WriteString("Shopper context:")
		if p.Gender != "" {
			fmt.Fprintf(&b, " gender=%s", p.Gender)
		}
		if p.Budget != "" {
			fmt.Fprintf(&b, " budget=%s", p.Budget)
		}
		if len(p.Categories) > 0 {
			n := len(p.Categories)
			if n > 3 {
				n = 3
			}
			fmt.Fprintf(&b, " interests=%s", strings.Join(p.Categories[:n], ","))
		}
		b.WriteString("\n")
	}

	b.WriteString(`Respond with strict JSON only: {"optimized_search": "...", "reasoning": "..."}`)
	return b.String()
}
