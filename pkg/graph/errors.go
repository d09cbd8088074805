package graph

import "errors"

// Sentinel errors for graph construction and traversal.
var (
	ErrEmptyGraph       = errors.New("graph has no nodes")
	ErrNoHeads          = errors.New("graph has no head nodes for a forward analysis")
	ErrNoTails          = errors.New("graph has no tail nodes for a backward analysis")
	ErrDisconnectedNode = errors.New("node is unreachable from any head or tail")
)
