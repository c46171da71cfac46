// pkg/client/coordinator.go
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"swipeshop-backend/internal/common/cache"
	"swipeshop-backend/internal/models"
)

const resultCacheTTL = 5 * time.Minute

// ErrSuperseded marks a search that was cancelled because a newer one was
// issued for the same surface. Callers drop it without touching UI state.
var ErrSuperseded = errors.New("search superseded by a newer request")

// SearchBackend is anything that can execute a search, usually *Client.
type SearchBackend interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error)
}

// Coordinator serializes searches per UI surface: a new search cancels the
// surface's in-flight one, and fresh results are served from a 5-minute
// cache keyed by query, category and user.
type Coordinator struct {
	backend SearchBackend
	cache   *cache.Cache[*models.SearchResult]

	mu       sync.Mutex
	inflight map[string]context.CancelFunc
	seq      map[string]uint64
}

func NewCoordinator(backend SearchBackend) *Coordinator {
	return &Coordinator{
		backend:  backend,
		cache:    cache.New[*models.SearchResult](resultCacheTTL),
		inflight: make(map[string]context.CancelFunc),
		seq:      make(map[string]uint64),
	}
}

// Search runs a search for the given surface. A cached result short-circuits
// without cancelling anything; otherwise the surface's previous in-flight
// search is cancelled and its eventual outcome discarded.
func (c *Coordinator) Search(ctx context.Context, surface string, req *models.SearchRequest) (*models.SearchResult, error) {
	key := cache.Key(req.Query, req.CategoryID, req.UserID)
	if result, ok := c.cache.Get(key); ok {
		return result, nil
	}

	callCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if prev, ok := c.inflight[surface]; ok {
		prev()
	}
	c.inflight[surface] = cancel
	c.seq[surface]++
	ticket := c.seq[surface]
	c.mu.Unlock()

	result, err := c.backend.Search(callCtx, req)

	c.mu.Lock()
	current := c.seq[surface] == ticket
	if current {
		delete(c.inflight, surface)
	}
	c.mu.Unlock()
	cancel()

	if !current {
		return nil, ErrSuperseded
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	c.cache.Set(key, result)
	return result, nil
}

// Cancel aborts the surface's in-flight search, if any.
func (c *Coordinator) Cancel(surface string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cancel, ok := c.inflight[surface]; ok {
		cancel()
		delete(c.inflight, surface)
	}
}
