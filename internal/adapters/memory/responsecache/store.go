package responsecache

import (
	"container/list"
	"context"
	"sync"
	"time"

	clockport "github.com/recipeasy/recipeasy-api/internal/ports/out/clock"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/responsecache"
)

type entry struct {
	key      string
	value    []byte
	storedAt time.Time
	// elem is this entry's position in insertion order.
	elem *list.Element
}

// Store is an in-memory implementation of responsecache.Store with FIFO eviction.
//
// Eviction follows first-insertion order: overwriting an existing key refreshes its
// value and age but keeps its place in line. Reads never affect eviction order.
// It is safe for concurrent use.
type Store struct {
	mu sync.Mutex

	items map[string]*entry
	order *list.List // of string keys, oldest at Front

	ttl        time.Duration
	maxEntries int
	clk        clockport.Clock
}

// Options tunes a Store. Zero values select the package defaults.
type Options struct {
	TTL        time.Duration
	MaxEntries int
}

func NewStore(clk clockport.Clock, opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = responsecache.DefaultTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = responsecache.DefaultMaxEntries
	}
	return &Store{
		items:      make(map[string]*entry, opts.MaxEntries),
		order:      list.New(),
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		clk:        clk,
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok {
		return nil, false
	}
	if s.clk.Now().Sub(e.storedAt) > s.ttl {
		s.remove(e)
		return nil, false
	}
	return cloneBytes(e.value), true
}

func (s *Store) Set(ctx context.Context, key string, value []byte) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	if e, ok := s.items[key]; ok {
		e.value = cloneBytes(value)
		e.storedAt = now
		return
	}

	if len(s.items) >= s.maxEntries {
		s.evictOldest()
	}

	e := &entry{key: key, value: cloneBytes(value), storedAt: now}
	e.elem = s.order.PushBack(key)
	s.items[key] = e
}

// Len returns the number of stored entries, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) evictOldest() {
	front := s.order.Front()
	if front == nil {
		return
	}
	s.remove(s.items[front.Value.(string)])
}

func (s *Store) remove(e *entry) {
	s.order.Remove(e.elem)
	delete(s.items, e.key)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
