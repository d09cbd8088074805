// Package graph provides control-flow-graph support for the data-flow engine:
// reverse-postorder computation for node-worklist ordering, and a concrete,
// generic CFG implementation clients can use instead of writing their own.
package graph

import (
	"github.com/ctxflow/dataflow/pkg/types"
)

// ReversePostorder returns the nodes of cfg ordered by reverse postorder in
// the given direction, starting from Heads() (Forward) or Tails() (Backward).
// Nodes unreachable from the starting set are appended afterward in a stable,
// deterministic order so every node still receives a worklist priority.
//
// RPO schedules a node before its out-edges whenever the graph is acyclic,
// which is what lets a single forward sweep converge in one pass on
// straight-line code; cycles just mean a node may be revisited, which the
// context's node worklist already tolerates.
func ReversePostorder[N comparable](cfg types.CFG[N], dir types.Direction) []N {
	starts := cfg.Heads()
	succs := cfg.Succs
	if dir == types.Backward {
		starts = cfg.Tails()
		succs = cfg.Preds
	}

	visited := make(map[N]bool, cfg.Size())
	postorder := make([]N, 0, cfg.Size())

	var visit func(n N)
	visit = func(n N) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, s := range succs(n) {
			visit(s)
		}
		postorder = append(postorder, n)
	}

	for _, h := range starts {
		visit(h)
	}

	// Any node not reachable from the starting set (disconnected code,
	// malformed CFGs) still needs a slot; append deterministically.
	var rest []N
	for _, n := range cfg.Nodes() {
		if !visited[n] {
			rest = append(rest, n)
		}
	}

	rpo := make([]N, 0, len(postorder)+len(rest))
	for i := len(postorder) - 1; i >= 0; i-- {
		rpo = append(rpo, postorder[i])
	}
	rpo = append(rpo, rest...)
	return rpo
}

// Priority assigns each node of rpo an ascending integer, lowest first. It is
// the lookup a Context's node worklist uses to order pending nodes: smaller
// priority numbers are processed first. The boundary-recompute sentinel takes
// no number here; the worklist tracks it separately and pops it after every
// pending node.
func Priority[N comparable](rpo []N) map[N]int {
	priority := make(map[N]int, len(rpo))
	for i, n := range rpo {
		priority[n] = i
	}
	return priority
}

// SimpleCFG is a ready-made types.CFG[N] backed by an explicit edge list, for
// clients that would rather hand the engine a node/edge description than
// implement the interface themselves.
type SimpleCFG[N comparable] struct {
	nodes []N
	preds map[N][]N
	succs map[N][]N
}

// NewSimpleCFG builds a SimpleCFG from an explicit node list and a set of
// directed edges. Nodes not mentioned by any edge are still included if they
// appear in nodes.
func NewSimpleCFG[N comparable](nodes []N, edges [][2]N) *SimpleCFG[N] {
	g := &SimpleCFG[N]{
		nodes: append([]N(nil), nodes...),
		preds: make(map[N][]N, len(nodes)),
		succs: make(map[N][]N, len(nodes)),
	}
	for _, n := range nodes {
		g.preds[n] = nil
		g.succs[n] = nil
	}
	for _, e := range edges {
		from, to := e[0], e[1]
		g.succs[from] = append(g.succs[from], to)
		g.preds[to] = append(g.preds[to], from)
	}
	return g
}

// Nodes implements types.CFG.
func (g *SimpleCFG[N]) Nodes() []N { return g.nodes }

// Preds implements types.CFG.
func (g *SimpleCFG[N]) Preds(n N) []N { return g.preds[n] }

// Succs implements types.CFG.
func (g *SimpleCFG[N]) Succs(n N) []N { return g.succs[n] }

// Heads implements types.CFG, returning nodes with no predecessors.
func (g *SimpleCFG[N]) Heads() []N {
	var heads []N
	for _, n := range g.nodes {
		if len(g.preds[n]) == 0 {
			heads = append(heads, n)
		}
	}
	return heads
}

// Tails implements types.CFG, returning nodes with no successors.
func (g *SimpleCFG[N]) Tails() []N {
	var tails []N
	for _, n := range g.nodes {
		if len(g.succs[n]) == 0 {
			tails = append(tails, n)
		}
	}
	return tails
}

// Size implements types.CFG.
func (g *SimpleCFG[N]) Size() int { return len(g.nodes) }

// StableNodeOrder sorts a slice of string-keyed node ids in place using
// insertion sort, for deterministic tie-breaking in diagnostic output where
// the candidate set is small (a method's nodes, a context's callers).
func StableNodeOrder(ids []string) {
	for i := 1; i < len(ids); i++ {
		key := ids[i]
		j := i - 1
		for j >= 0 && ids[j] > key {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = key
	}
}
