// Package cache is the read-through cache behind every resource view.
//
// Entries are keyed by (resource kind, canonical parameter hash). A
// mutation never patches a cached value; it invalidates the affected
// kinds and the next read fetches fresh data. The store keeps
// generation counters per store, kind and key so a fetch that was
// superseded by an invalidation while in flight cannot overwrite newer
// state, even when it was the first fetch for its key.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/commercehq/shopctl/internal/errors"
	"github.com/commercehq/shopctl/internal/log"
)

// Kind identifies a cached resource collection or detail
type Kind string

// Resource kinds
const (
	KindProducts Kind = "products"
	KindProduct  Kind = "product"
	KindCart     Kind = "cart"
	KindOrders   Kind = "orders"
	KindOrder    Kind = "order"
	KindUsers    Kind = "users"
)

// Key identifies one cache entry
type Key struct {
	Kind   Kind
	Params string
}

// NewKey builds a key from a kind and its query parameters.
// Params are canonicalized through JSON so logically equal parameter
// sets produce the same key; nil params hash to the empty string.
func NewKey(kind Kind, params any) (Key, error) {
	if params == nil {
		return Key{Kind: kind}, nil
	}

	canonical, err := json.Marshal(params)
	if err != nil {
		return Key{}, errors.Wrap(errors.ErrCodeCacheFetchFailed,
			fmt.Sprintf("failed to canonicalize cache params for %s", kind), err)
	}

	hash := blake3.Sum256(canonical)
	return Key{Kind: kind, Params: fmt.Sprintf("%x", hash[:8])}, nil
}

type entry struct {
	value     any
	stale     bool
	fetchedAt time.Time
}

// generation snapshots the invalidation counters covering one key.
// Counters live outside the entries, so an invalidation still lands
// while the first fetch for a key is in flight and no entry exists yet.
type generation struct {
	store uint64
	kind  uint64
	key   uint64
}

// Store holds cached resource reads
type Store struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	storeGen uint64
	kindGens map[Kind]uint64
	keyGens  map[Key]uint64
	logger   *log.Logger
}

// NewStore creates an empty cache store
func NewStore(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{
		entries:  make(map[Key]*entry),
		kindGens: make(map[Kind]uint64),
		keyGens:  make(map[Key]uint64),
		logger:   logger,
	}
}

func (s *Store) generationLocked(key Key) generation {
	return generation{
		store: s.storeGen,
		kind:  s.kindGens[key.Kind],
		key:   s.keyGens[key],
	}
}

// GetOrFetch returns the cached value for (kind, params) when fresh,
// otherwise runs fetch and caches the result.
//
// If the entry is invalidated while fetch is in flight, the fetched
// value is still returned to the caller but not cached, so a stale
// response can never overwrite newer state.
func (s *Store) GetOrFetch(ctx context.Context, kind Kind, params any, fetch func(context.Context) (any, error)) (any, error) {
	key, err := NewKey(kind, params)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	e := s.entries[key]
	if e != nil && !e.stale {
		s.mu.Unlock()
		return e.value, nil
	}
	gen := s.generationLocked(key)
	s.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generationLocked(key) != gen {
		s.logger.Debug("discarding superseded fetch", "kind", string(kind), "params", key.Params)
		return value, nil
	}
	s.entries[key] = &entry{
		value:     value,
		fetchedAt: time.Now(),
	}
	return value, nil
}

// Peek returns the cached value if present and fresh, without fetching
func (s *Store) Peek(kind Kind, params any) (any, bool) {
	key, err := NewKey(kind, params)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil || e.stale {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks every entry of the kind stale, across all parameter
// sets, and bumps the kind's generation so in-flight fetches are
// discarded, including the first fetch for a key that has no entry yet.
func (s *Store) Invalidate(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kindGens[kind]++
	for key, e := range s.entries {
		if key.Kind == kind {
			e.stale = true
		}
	}
}

// InvalidateParams marks the single entry for (kind, params) stale
func (s *Store) InvalidateParams(kind Kind, params any) {
	key, err := NewKey(kind, params)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyGens[key]++
	if e := s.entries[key]; e != nil {
		e.stale = true
	}
}

// Clear drops every entry and supersedes all in-flight fetches. Used
// on logout so the next session never sees another user's data.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeGen++
	s.entries = make(map[Key]*entry)
	s.kindGens = make(map[Kind]uint64)
	s.keyGens = make(map[Key]uint64)
}

// Fetch is a typed wrapper around Store.GetOrFetch
func Fetch[T any](ctx context.Context, s *Store, kind Kind, params any, fetch func(context.Context) (T, error)) (T, error) {
	value, err := s.GetOrFetch(ctx, kind, params, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, errors.New(errors.ErrCodeCacheFetchFailed,
			fmt.Sprintf("cache entry for %s holds %T, not the requested type", kind, value))
	}
	return typed, nil
}
