// Package engine provides the core inter-procedural data-flow analysis engine.
//
// # Overview
//
// The engine package implements a context-sensitive, whole-program fixpoint
// driver. Given a client's Program representation and FlowFunctions, it seeds
// a Context per entry point and iterates: pick the newest active context,
// drain its node worklist in reverse-postorder, propagate values across call
// edges by creating or reusing callee contexts keyed by boundary value, and
// wake callers when a callee stabilises. The fixpoint is reached when every
// context's node worklist, including every context transitively reached
// through a call, has drained.
//
// # Key Features
//
//   - Context-sensitivity: distinct boundary values get distinct contexts, so
//     recursion and repeated calls with different inputs do not collapse
//     together
//   - Generic over method, node, and lattice-value types: the engine never
//     inspects the client's intermediate representation
//   - On-the-fly memory reclamation: optionally drop a context's per-node
//     tables once nothing live can still reach it
//   - Observer pattern: extensible event system for monitoring a run
//   - Structured logging and run IDs for diagnosing a stuck or slow analysis
//
// # Architecture
//
// One DoAnalysis call runs a single phase to completion:
//
//  1. Seed: create a context for every entry point from its boundary value.
//  2. Drive: repeatedly pick the newest active context; if its node worklist
//     is empty, mark it analysed and drop it from the context worklist;
//     otherwise pop its next node (or the boundary-recompute sentinel) and
//     process it.
//  3. Converge: a context reaching the boundary sentinel folds its tails into
//     a new exit (or entry, for backward analyses) value and wakes every
//     caller recorded against it in the transition table.
//  4. Reclaim (optional): once a stabilised context's transitive callees are
//     no longer reachable from anything still active, free their per-node
//     tables.
//
// # Basic Usage
//
//	eng := engine.New[Method, Node, SignValue](program, flowFns, types.Forward, engine.Default())
//	if err := eng.DoAnalysis(context.Background()); err != nil {
//	    log.Fatalf("analysis failed: %v", err)
//	}
//	solution := eng.GetMeetOverValidPathsSolution()
//
// # Advanced Usage
//
//	eng := engine.New[Method, Node, SignValue](program, flowFns, types.Forward, engine.Config{
//	    Verbose:             true,
//	    FreeResultsOnTheFly: true,
//	})
//	eng.RegisterObserver(observer.NewConsoleObserver())
//	err := eng.DoAnalysis(ctx)
//
// # Error Handling
//
// DoAnalysis itself does not fail on recoverable conditions: a context left
// unanalysed when the worklist drains is a client bug, not a driver error, so
// it is surfaced as a warning-level log entry and an EventUnanalysedContext
// observer notification rather than a returned error. DoAnalysis's error
// return is reserved for conditions the driver cannot recover from at all.
//
// # Concurrency
//
// The driver is single-threaded by design: DoAnalysis runs the entire
// fixpoint on the calling goroutine, with no internal goroutines, channels,
// or suspension points. Client flow functions and registered observers are
// invoked synchronously and must not block or spawn work the driver depends
// on. This mirrors the cooperative scheduling model the analysis problem
// requires — there is no meaningful way to parallelize a single context's
// worklist without breaking the monotonicity argument the fixpoint relies on.
//
// # Performance Considerations
//
//   - FreeResultsOnTheFly trades the ability to call
//     GetMeetOverValidPathsSolution afterward for materially lower peak memory
//     on deep call graphs
//   - Verbose logging allocates a field-bound logger per context event;
//     leave it off outside of diagnosis
//
// # Extensibility
//
//   - FlowFunctions: implement the lattice and the five flow functions for a
//     new client analysis
//   - Program: implement entry points, CFG access, call resolution, and
//     phantom-method detection for a new intermediate representation
//   - Observer: implement a custom sink for analysis and context lifecycle events
//
// # Thread Safety
//
// An Engine value is not safe for concurrent DoAnalysis calls: the driver
// owns and mutates its context worklist and each context's per-node tables
// without synchronization, by design (see Concurrency above); only the
// context store and transition table are lock-guarded. The read-only exposed
// accessors (GetContexts, GetContext, GetMethods, and friends) may safely be
// called from another goroutine once DoAnalysis has returned.
package engine
