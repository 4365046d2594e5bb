package app

import (
	"context"
	"sync"
	"time"

	"place_sentiment/internal/adapters/observability"
)

// MemoryGuard is the single-process domain.Guard. Entries expire after their
// ttl so a caller that never releases cannot wedge a key forever.
type MemoryGuard struct {
	mu    sync.Mutex
	held  map[string]uint64
	until map[string]time.Time
	seq   uint64
	now   func() time.Time
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		held:  make(map[string]uint64),
		until: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if exp, ok := g.until[key]; ok && now.Before(exp) {
		observability.ObserveGuard("memory", "busy")
		return func() {}, false, nil
	}
	g.seq++
	token := g.seq
	g.held[key] = token
	g.until[key] = now.Add(ttl)
	observability.ObserveGuard("memory", "acquired")

	var once sync.Once
	release := func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			// a later holder may own the key after our ttl lapsed
			if g.held[key] == token {
				delete(g.held, key)
				delete(g.until, key)
				observability.ObserveGuard("memory", "release")
			}
		})
	}
	return release, true, nil
}
