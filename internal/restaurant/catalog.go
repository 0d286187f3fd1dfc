package restaurant

import (
	"strings"
	"sync"
)

// Filter returns the entries whose name, description or city contains term,
// ignoring case. Input order is kept. An empty term returns list itself.
func Filter(list []Restaurant, term string) []Restaurant {
	q := strings.ToLower(term)
	if q == "" {
		return list
	}
	out := make([]Restaurant, 0, len(list))
	for _, r := range list {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Restaurant, q string) bool {
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Description), q) ||
		strings.Contains(strings.ToLower(r.City), q)
}

// Catalog holds the fetched list and the view derived from the last search.
type Catalog struct {
	mu       sync.RWMutex
	all      []Restaurant
	filtered []Restaurant
	term     string
	loaded   bool
}

// Replace swaps in a freshly fetched list and reapplies the current term.
func (c *Catalog) Replace(list []Restaurant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = list
	c.filtered = Filter(list, c.term)
	c.loaded = true
}

// Search recomputes the filtered view for term and returns it.
func (c *Catalog) Search(term string) []Restaurant {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.term = term
	c.filtered = Filter(c.all, term)
	return clone(c.filtered)
}

func (c *Catalog) All() []Restaurant {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.all)
}

func (c *Catalog) Filtered() []Restaurant {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.filtered)
}

func (c *Catalog) Term() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.term
}

// Loaded reports whether Replace has been called at least once.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Catalog) Find(id string) (Restaurant, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.all {
		if r.ID == id {
			return r, true
		}
	}
	return Restaurant{}, false
}

func clone(in []Restaurant) []Restaurant {
	if in == nil {
		return nil
	}
	out := make([]Restaurant, len(in))
	copy(out, in)
	return out
}
