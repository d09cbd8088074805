package engine

import (
	"github.com/ctxflow/dataflow/pkg/contextcache"
	"github.com/ctxflow/dataflow/pkg/types"
)

// FlowFunctions is the client analysis contract (spec §4.1): the lattice
// algebra plus the five callbacks the driver invokes while walking a
// method's control-flow graph. Implementations must be monotone with
// respect to Meet for the fixpoint to be sound; the driver applies a
// defensive Meet(new, prev) after every transfer so a mildly non-monotone
// client still terminates, at the cost of precision.
type FlowFunctions[M comparable, N comparable, A any] interface {
	types.Lattice[A]

	// BoundaryValue returns the initial value at the boundary (entry for a
	// forward analysis, exit for a backward one) of the given entry point.
	BoundaryValue(entryPoint M) A

	// NormalFlow transfers a non-call node: given the value on the near side
	// of the transfer (in for forward, out for backward), returns the value
	// on the far side.
	NormalFlow(ctx *contextcache.Context[M, N, A], node N, in A) A

	// CallEntry maps a caller-side value at a call to the callee's boundary
	// value, e.g. binding actuals to formals.
	CallEntry(ctx *contextcache.Context[M, N, A], target M, node N, in A) A

	// CallExit maps a callee-side boundary value back onto the caller,
	// e.g. extracting a return value into the caller's lattice.
	CallExit(ctx *contextcache.Context[M, N, A], target M, node N, calleeBoundaryValue A) A

	// CallLocal preserves the caller's local state across a call: the part of
	// the value not affected by whatever the callee does.
	CallLocal(ctx *contextcache.Context[M, N, A], node N, in A) A
}
