// Package contextcache holds the per-(method, boundary-value) analysis state
// the engine's driver manipulates: the Context itself, the Store that creates
// and reuses contexts by their boundary value, and the TransitionTable that
// records which call-sites reach which callee contexts.
//
// This is the generalisation of this codebase's mutex-guarded state manager
// from workflow variables/cache/accumulator to the engine's two keyed
// collections: contexts per method, and transitions per call-site.
package contextcache

import (
	"github.com/ctxflow/dataflow/pkg/graph"
	"github.com/ctxflow/dataflow/pkg/types"
)

// Context represents one analysis of one method under a specific boundary
// value. Its identity (for cache lookup and reuse) is entryValue (forward) or
// exitValue (backward); that value never changes after creation.
type Context[M comparable, N comparable, A any] struct {
	// ID is globally unique and monotonically increasing. The context
	// worklist picks the largest-ID active context first.
	ID int64

	Method    M
	CFG       types.CFG[N]
	Direction types.Direction

	EntryValue A
	ExitValue  A

	valueBefore map[N]A
	valueAfter  map[N]A
	worklist    *nodeWorklist[N]

	Analysed bool
	Freed    bool
}

// newContext allocates a fresh Context seeded per spec §4.2: every per-node
// table starts at lattice Top, the boundary value is planted at the heads
// (forward) or tails (backward), and every node is queued for processing.
func newContext[M comparable, N comparable, A any](
	id int64,
	method M,
	cfg types.CFG[N],
	dir types.Direction,
	lattice types.Lattice[A],
	boundaryValue A,
) *Context[M, N, A] {
	c := &Context[M, N, A]{
		ID:          id,
		Method:      method,
		CFG:         cfg,
		Direction:   dir,
		valueBefore: make(map[N]A, cfg.Size()),
		valueAfter:  make(map[N]A, cfg.Size()),
	}

	rpo := graph.ReversePostorder[N](cfg, dir)
	c.worklist = newNodeWorklist[N](graph.Priority[N](rpo))

	top := lattice.Top()
	for _, n := range cfg.Nodes() {
		c.valueBefore[n] = top
		c.valueAfter[n] = top
	}

	if dir == types.Forward {
		c.EntryValue = lattice.Copy(boundaryValue)
		c.ExitValue = top
		for _, h := range cfg.Heads() {
			c.valueBefore[h] = lattice.Copy(boundaryValue)
		}
	} else {
		c.ExitValue = lattice.Copy(boundaryValue)
		c.EntryValue = top
		for _, t := range cfg.Tails() {
			c.valueAfter[t] = lattice.Copy(boundaryValue)
		}
	}

	c.worklist.addAll(cfg.Nodes())
	return c
}

// ValueBefore returns the value on entry to n. Panics if the context has been
// freed — callers must check Freed first.
func (c *Context[M, N, A]) ValueBefore(n N) A {
	c.requireNotFreed()
	return c.valueBefore[n]
}

// ValueAfter returns the value on exit from n. Panics if the context has been
// freed — callers must check Freed first.
func (c *Context[M, N, A]) ValueAfter(n N) A {
	c.requireNotFreed()
	return c.valueAfter[n]
}

// SetValueBefore records the value on entry to n.
func (c *Context[M, N, A]) SetValueBefore(n N, v A) {
	c.requireNotFreed()
	c.valueBefore[n] = v
}

// SetValueAfter records the value on exit from n.
func (c *Context[M, N, A]) SetValueAfter(n N, v A) {
	c.requireNotFreed()
	c.valueAfter[n] = v
}

// Nodes returns every node with a recorded before/after value; empty once the
// context has been freed.
func (c *Context[M, N, A]) Nodes() []N {
	if c.Freed {
		return nil
	}
	return c.CFG.Nodes()
}

func (c *Context[M, N, A]) requireNotFreed() {
	if c.Freed {
		panic("contextcache: per-node value accessed on a freed context")
	}
}

// EnqueueNode adds n to the node worklist.
func (c *Context[M, N, A]) EnqueueNode(n N) { c.worklist.addNode(n) }

// EnqueueBoundary adds the boundary-recompute sentinel to the node worklist.
func (c *Context[M, N, A]) EnqueueBoundary() { c.worklist.addBoundary() }

// WorklistEmpty reports whether the node worklist has nothing pending.
func (c *Context[M, N, A]) WorklistEmpty() bool { return c.worklist.empty() }

// PopNode removes and returns the next node to process, or reports that the
// boundary-recompute sentinel was popped instead.
func (c *Context[M, N, A]) PopNode() (n N, isBoundary bool) { return c.worklist.popItem() }

// Free drops the per-node tables and the node worklist, keeping only the
// fields needed to remain discoverable by id and by boundary value: EntryValue,
// ExitValue, ID, Method, Analysed. See the engine's reclamation pass.
func (c *Context[M, N, A]) Free() {
	c.valueBefore = nil
	c.valueAfter = nil
	c.worklist = nil
	c.CFG = nil
	c.Freed = true
}
