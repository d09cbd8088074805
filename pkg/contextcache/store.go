package contextcache

import (
	"sync"

	"github.com/ctxflow/dataflow/pkg/types"
)

// Store owns every Context created during an analysis run, keyed by method.
// Lookup by boundary value is a linear scan per spec: clients' lattice values
// are not assumed hashable, only comparable via Lattice.Equal.
//
// Grounded on this codebase's mutex-guarded state manager (RWMutex, copy-on-read
// accessors); the engine is single-threaded per node-processing step, but the
// lock lets diagnostics and the MVP projection read consistently mid-run.
type Store[M comparable, N comparable, A any] struct {
	mu       sync.RWMutex
	lattice  types.Lattice[A]
	contexts map[M][]*Context[M, N, A]
	nextID   int64
}

// NewStore creates an empty context store over the given lattice.
func NewStore[M comparable, N comparable, A any](lattice types.Lattice[A]) *Store[M, N, A] {
	return &Store[M, N, A]{
		lattice:  lattice,
		contexts: make(map[M][]*Context[M, N, A]),
	}
}

// Lookup scans contexts[method] for one whose boundary key (EntryValue for
// forward, ExitValue for backward) equals value, per the client's Lattice.Equal.
// Returns (nil, false) on a miss.
func (s *Store[M, N, A]) Lookup(method M, value A, dir types.Direction) (*Context[M, N, A], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.contexts[method] {
		key := c.EntryValue
		if dir == types.Backward {
			key = c.ExitValue
		}
		if s.lattice.Equal(key, value) {
			return c, true
		}
	}
	return nil, false
}

// Create allocates, registers, and returns a new Context for (method, value).
// It does not check for an existing context; callers must Lookup first (the
// two-step shape mirrors getContext's specified miss-then-create sequence).
func (s *Store[M, N, A]) Create(method M, cfg types.CFG[N], dir types.Direction, value A) *Context[M, N, A] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := newContext[M, N, A](s.nextID, method, cfg, dir, s.lattice, value)
	s.contexts[method] = append(s.contexts[method], c)
	return c
}

// ContextsFor returns a copy of the context list for method (empty if none).
func (s *Store[M, N, A]) ContextsFor(method M) []*Context[M, N, A] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Context[M, N, A], len(s.contexts[method]))
	copy(result, s.contexts[method])
	return result
}

// Methods returns every method that has at least one context.
func (s *Store[M, N, A]) Methods() []M {
	s.mu.RLock()
	defer s.mu.RUnlock()
	methods := make([]M, 0, len(s.contexts))
	for m := range s.contexts {
		methods = append(methods, m)
	}
	return methods
}

// All returns every context of every method, for diagnostics and the MVP
// solution projection.
func (s *Store[M, N, A]) All() []*Context[M, N, A] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []*Context[M, N, A]
	for _, cs := range s.contexts {
		all = append(all, cs...)
	}
	return all
}
