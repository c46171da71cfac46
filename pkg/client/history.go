// pkg/client/history.go
package client

import (
	"strings"
	"sync"
)

const historyLimit = 6

// History keeps per-category recent search queries, most recent first,
// de-duplicated case-insensitively and bounded to the six newest.
type History struct {
	mu      sync.Mutex
	entries map[string][]string
}

func NewHistory() *History {
	return &History{entries: make(map[string][]string)}
}

// Add records a query for the category, moving a repeated query to the
// front instead of duplicating it.
func (h *History) Add(category, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	current := h.entries[category]
	next := make([]string, 0, len(current)+1)
	next = append(next, query)
	for _, q := range current {
		if !strings.EqualFold(q, query) {
			next = append(next, q)
		}
	}
	if len(next) > historyLimit {
		next = next[:historyLimit]
	}
	h.entries[category] = next
}

// Get returns the category's queries, most recent first.
func (h *History) Get(category string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	current := h.entries[category]
	out := make([]string, len(current))
	copy(out, current)
	return out
}

// Clear forgets one category's history.
func (h *History) Clear(category string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.entries, category)
}
