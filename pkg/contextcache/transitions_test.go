package contextcache

import (
	"testing"

	"github.com/ctxflow/dataflow/pkg/types"
)

func TestTransitionTableRecordAndTargets(t *testing.T) {
	store := NewStore[string, string, int](intLattice{})
	cfg := straightLineCFG()
	caller := store.Create("caller", cfg, types.Forward, 0)
	callee := store.Create("callee", cfg, types.Forward, 1)

	tt := NewTransitionTable[string, string, int]()
	site := CallSite[string, string, int]{Caller: caller, Node: "n1"}
	tt.Record(site, "callee", callee)

	targets := tt.Targets(site)
	if targets["callee"] != callee {
		t.Fatalf("expected site to target callee context")
	}
	if tt.IsDefault(site) {
		t.Fatalf("expected site not to be marked default after a resolved record")
	}
}

func TestTransitionTableRecordDefaultClearsPriorEdges(t *testing.T) {
	store := NewStore[string, string, int](intLattice{})
	cfg := straightLineCFG()
	caller := store.Create("caller", cfg, types.Forward, 0)
	callee := store.Create("callee", cfg, types.Forward, 1)

	tt := NewTransitionTable[string, string, int]()
	site := CallSite[string, string, int]{Caller: caller, Node: "n1"}
	tt.Record(site, "callee", callee)
	tt.Record(site, "callee", nil)

	if !tt.IsDefault(site) {
		t.Fatalf("expected site to be marked default after a nil record")
	}
	if len(tt.Targets(site)) != 0 {
		t.Fatalf("expected no targets for a site recorded as default")
	}
}

func TestTransitionTableCallersAndOutgoingCallSites(t *testing.T) {
	store := NewStore[string, string, int](intLattice{})
	cfg := straightLineCFG()
	caller := store.Create("caller", cfg, types.Forward, 0)
	callee := store.Create("callee", cfg, types.Forward, 1)

	tt := NewTransitionTable[string, string, int]()
	site := CallSite[string, string, int]{Caller: caller, Node: "n1"}
	tt.Record(site, "callee", callee)

	callers := tt.Callers(callee)
	if len(callers) != 1 || callers[0] != site {
		t.Fatalf("expected callee's caller list to contain exactly site, got %v", callers)
	}

	outgoing := tt.OutgoingCallSites(caller)
	if len(outgoing) != 1 || outgoing[0] != site {
		t.Fatalf("expected caller's outgoing call sites to contain exactly site, got %v", outgoing)
	}
}

func TestTransitionTableRecordIsIdempotentForRepeatedSite(t *testing.T) {
	store := NewStore[string, string, int](intLattice{})
	cfg := straightLineCFG()
	caller := store.Create("caller", cfg, types.Forward, 0)
	callee := store.Create("callee", cfg, types.Forward, 1)

	tt := NewTransitionTable[string, string, int]()
	site := CallSite[string, string, int]{Caller: caller, Node: "n1"}
	tt.Record(site, "callee", callee)
	tt.Record(site, "callee", callee)

	if len(tt.Callers(callee)) != 1 {
		t.Fatalf("expected a repeated Record not to duplicate the caller edge")
	}
	if len(tt.OutgoingCallSites(caller)) != 1 {
		t.Fatalf("expected a repeated Record not to duplicate the outgoing edge")
	}
}

func TestTransitionTableReachableFollowsCallChain(t *testing.T) {
	store := NewStore[string, string, int](intLattice{})
	cfg := straightLineCFG()
	a := store.Create("a", cfg, types.Forward, 0)
	b := store.Create("b", cfg, types.Forward, 1)
	c := store.Create("c", cfg, types.Forward, 2)

	tt := NewTransitionTable[string, string, int]()
	tt.Record(CallSite[string, string, int]{Caller: a, Node: "n1"}, "b", b)
	tt.Record(CallSite[string, string, int]{Caller: b, Node: "n1"}, "c", c)

	reached := tt.Reachable(a)
	if !reached[a] || !reached[b] || !reached[c] {
		t.Fatalf("expected a, b, c all reachable from a, got %v", reached)
	}
}

func TestTransitionTableReachableSkipsFreedContexts(t *testing.T) {
	store := NewStore[string, string, int](intLattice{})
	cfg := straightLineCFG()
	a := store.Create("a", cfg, types.Forward, 0)
	b := store.Create("b", cfg, types.Forward, 1)

	tt := NewTransitionTable[string, string, int]()
	tt.Record(CallSite[string, string, int]{Caller: a, Node: "n1"}, "b", b)
	b.Free()

	reached := tt.Reachable(a)
	if reached[b] {
		t.Fatalf("expected a freed context not to be counted as reachable")
	}
}
