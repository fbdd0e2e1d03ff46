package chesscom

import (
	"context"
	"sync"
)

// Cache stores fetched monthly archives keyed by their URL. A hit must be
// safe for the caller to keep, so both implementations hand out copies.
type Cache interface {
	Get(ctx context.Context, url string) ([]Game, bool)
	Put(ctx context.Context, url string, games []Game)
}

// MemoryCache keeps archives for the life of the process.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]Game
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]Game)}
}

func (m *MemoryCache) Get(_ context.Context, url string) ([]Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	games, ok := m.entries[url]
	if !ok {
		return nil, false
	}
	out := make([]Game, len(games))
	copy(out, games)
	return out, true
}

func (m *MemoryCache) Put(_ context.Context, url string, games []Game) {
	stored := make([]Game, len(games))
	copy(stored, games)
	m.mu.Lock()
	m.entries[url] = stored
	m.mu.Unlock()
}
