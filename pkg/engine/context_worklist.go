package engine

import "github.com/ctxflow/dataflow/pkg/contextcache"

// contextWorklist is the engine's global worklist of active contexts,
// ordered by id: the "newest" (highest id) context is picked first, which
// finishes recursive call chains before returning attention to older
// callers and improves convergence (spec §9).
type contextWorklist[M comparable, N comparable, A any] struct {
	items map[int64]*contextcache.Context[M, N, A]
}

func newContextWorklist[M comparable, N comparable, A any]() *contextWorklist[M, N, A] {
	return &contextWorklist[M, N, A]{items: make(map[int64]*contextcache.Context[M, N, A])}
}

func (w *contextWorklist[M, N, A]) add(c *contextcache.Context[M, N, A]) {
	w.items[c.ID] = c
}

func (w *contextWorklist[M, N, A]) remove(c *contextcache.Context[M, N, A]) {
	delete(w.items, c.ID)
}

func (w *contextWorklist[M, N, A]) contains(c *contextcache.Context[M, N, A]) bool {
	_, ok := w.items[c.ID]
	return ok
}

func (w *contextWorklist[M, N, A]) empty() bool {
	return len(w.items) == 0
}

// pickNewest returns the context with the largest id, or nil if empty.
func (w *contextWorklist[M, N, A]) pickNewest() *contextcache.Context[M, N, A] {
	var best *contextcache.Context[M, N, A]
	for _, c := range w.items {
		if best == nil || c.ID > best.ID {
			best = c
		}
	}
	return best
}
