// pkg/client/cart.go
package client

import (
	"sync"

	"swipeshop-backend/internal/models"
)

// Cart is the ordered, duplicate-free-by-id shortlist built from "like"
// swipes. It lives on the client and is never synced server-side.
type Cart struct {
	mu    sync.Mutex
	items []models.Product
	seen  map[string]bool
}

func NewCart() *Cart {
	return &Cart{seen: make(map[string]bool)}
}

// Add appends the product unless one with the same id is already present.
// Reports whether the cart changed.
func (c *Cart) Add(p models.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen[p.ID] {
		return false
	}
	c.seen[p.ID] = true
	c.items = append(c.items, p)
	return true
}

// Remove drops the product with the given id, preserving order of the rest.
func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.seen[id] {
		return false
	}
	delete(c.seen, id)
	for i, p := range c.items {
		if p.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	return true
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.seen = make(map[string]bool)
}

// Items returns a copy in insertion order.
func (c *Cart) Items() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Product, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
