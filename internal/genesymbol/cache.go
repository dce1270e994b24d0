package genesymbol

import (
	"context"
	"log/slog"
	"sync"
)

// Store persists resolved symbols between lookups. Negative results (empty
// symbol) are stored too so the service is asked about each id only once.
type Store interface {
	Get(ctx context.Context, id string) (symbol string, ok bool, err error)
	Put(ctx context.Context, id, symbol string) error
	Close() error
}

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	mu      sync.RWMutex
	symbols map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{symbols: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	symbol, ok := s.symbols[id]
	return symbol, ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, id, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols[id] = symbol
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Cached wraps a Searcher with a Store so repeated lookups skip the service.
// Store failures degrade to an in-memory fallback with a logged warning, so
// a broken cache never fails a load.
type Cached struct {
	searcher Searcher
	store    Store
	fallback *MemoryStore
}

// NewCached creates a caching searcher on top of store.
func NewCached(searcher Searcher, store Store) *Cached {
	return &Cached{
		searcher: searcher,
		store:    store,
		fallback: NewMemoryStore(),
	}
}

func (c *Cached) Symbol(ctx context.Context, id string) (string, error) {
	if symbol, ok, err := c.store.Get(ctx, id); err != nil {
		slog.Warn("Gene symbol cache read failed", "id", id, "error", err)
	} else if ok {
		return symbol, nil
	}
	if symbol, ok, _ := c.fallback.Get(ctx, id); ok {
		return symbol, nil
	}

	symbol, err := c.searcher.Symbol(ctx, id)
	if err != nil {
		return "", err
	}

	if err := c.store.Put(ctx, id, symbol); err != nil {
		slog.Warn("Gene symbol cache write failed", "id", id, "error", err)
		_ = c.fallback.Put(ctx, id, symbol)
	}
	return symbol, nil
}
