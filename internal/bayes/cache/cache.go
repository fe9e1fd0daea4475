package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"decisionnet/internal/bayes"
)

// InMemory caches learned networks keyed by their structure document, so a
// repeated structure does not trigger CPT relearning. Concurrent callers for
// the same key compute at most once; errors are not cached.
type InMemory struct {
	mu    sync.RWMutex
	max   int
	items map[string]*bayes.Network
}

func NewInMemory(max int) *InMemory {
	return &InMemory{
		max:   max,
		items: make(map[string]*bayes.Network, max),
	}
}

func (c *InMemory) GetOrCompute(dot string, fn func() (*bayes.Network, error)) (*bayes.Network, error) {
	key := hash(dot)

	c.mu.RLock()
	if v, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.items[key]; ok {
		return v, nil
	}

	n, err := fn()
	if err != nil {
		return nil, err
	}

	if len(c.items) < c.max {
		c.items[key] = n
	}

	return n, nil
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
