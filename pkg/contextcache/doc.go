// Package contextcache provides the per-method context store and the
// context-transition table the inter-procedural driver reads and writes.
//
// # Overview
//
// A Context is one analysis of one method under a specific boundary value.
// Store creates and caches contexts by method, scanning existing contexts
// with the client's Lattice.Equal rather than hashing — client values are not
// assumed hashable. TransitionTable records which call-sites reach which
// callee contexts, in both directions, so the driver can wake callers when a
// callee stabilises and so reclamation can test reachability.
//
// # Context Lifecycle
//
//	store.Lookup(method, value, dir)   // hit: reuse; miss: fall through
//	store.Create(method, cfg, dir, value)
//	...driver processes context.worklist...
//	context.Free()                     // drops per-node tables, keeps the key
//
// # Thread Safety
//
// Store and TransitionTable are guarded by an RWMutex, following this
// codebase's established state-manager pattern, even though the engine's
// driver itself is single-threaded: the lock lets read-only accessors
// (diagnostics, the exposed Get* methods) be called safely at any point,
// including from a goroutine other than the driver's, without requiring the
// caller to know the driver has quiesced.
package contextcache
