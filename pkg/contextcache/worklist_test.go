package contextcache

import "testing"

func TestNodeWorklistEmptyInitially(t *testing.T) {
	w := newNodeWorklist[string](map[string]int{"a": 0, "b": 1})
	if !w.empty() {
		t.Fatalf("expected a fresh worklist to be empty")
	}
}

func TestNodeWorklistPopsLowestPriorityFirst(t *testing.T) {
	w := newNodeWorklist[string](map[string]int{"a": 2, "b": 0, "c": 1})
	w.addAll([]string{"a", "b", "c"})

	n, isBoundary := w.popItem()
	if isBoundary || n != "b" {
		t.Fatalf("expected b (priority 0) first, got %v isBoundary=%v", n, isBoundary)
	}
	n, isBoundary = w.popItem()
	if isBoundary || n != "c" {
		t.Fatalf("expected c (priority 1) second, got %v isBoundary=%v", n, isBoundary)
	}
	n, isBoundary = w.popItem()
	if isBoundary || n != "a" {
		t.Fatalf("expected a (priority 2) third, got %v isBoundary=%v", n, isBoundary)
	}
}

func TestNodeWorklistBoundarySortsAfterNodes(t *testing.T) {
	w := newNodeWorklist[string](map[string]int{"a": 0})
	w.addBoundary()
	w.addNode("a")

	_, isBoundary := w.popItem()
	if isBoundary {
		t.Fatalf("expected the pending node to pop before the boundary sentinel")
	}
	_, isBoundary = w.popItem()
	if !isBoundary {
		t.Fatalf("expected the boundary sentinel to pop once nodes are drained")
	}
}

func TestNodeWorklistAddNodeIsIdempotent(t *testing.T) {
	w := newNodeWorklist[string](map[string]int{"a": 0})
	w.addNode("a")
	w.addNode("a")

	w.popItem()
	if !w.empty() {
		t.Fatalf("expected a single pending entry despite two addNode calls")
	}
}

func TestNodeWorklistPopItemPanicsWhenEmpty(t *testing.T) {
	w := newNodeWorklist[string](map[string]int{})

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected popItem to panic on an empty worklist")
		}
	}()
	w.popItem()
}
