// Package graph provides control-flow-graph algorithms for the data-flow
// analysis engine.
//
// # Overview
//
// The graph package computes the reverse-postorder node sequence a Context
// uses to prioritise its node worklist, and ships SimpleCFG, a ready-to-use
// types.CFG implementation for clients that would rather describe a method as
// an edge list than implement the interface by hand.
//
// # Reverse Postorder
//
//   - Forward analyses walk from Heads() along Succs() edges.
//   - Backward analyses walk from Tails() along Preds() edges.
//   - Nodes unreachable from the starting set still get a (stable, trailing)
//     priority so the worklist never drops a node.
//
// # SimpleCFG
//
//	nodes := []string{"entry", "n1", "n2", "exit"}
//	edges := [][2]string{{"entry", "n1"}, {"n1", "n2"}, {"n2", "exit"}}
//	cfg := graph.NewSimpleCFG(nodes, edges)
//
// # Thread Safety
//
// ReversePostorder and Priority are pure functions over their arguments.
// SimpleCFG is immutable after construction and safe for concurrent reads.
package graph
