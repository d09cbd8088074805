// Package types provides shared type definitions for the data-flow analysis
// engine.
//
// # Overview
//
// This package contains the contracts other packages are built against: the
// Lattice a client's data-flow values must support, the CFG and Program
// interfaces a client's intermediate representation must implement, and the
// Direction tag that distinguishes forward from backward analyses. It has no
// dependency on any other engine package, which keeps it safe to import from
// both pkg/engine and pkg/contextcache without a cycle.
//
// # Design Principles
//
//   - Minimal dependencies: this package depends on nothing but the standard
//     library.
//   - Opaque handles: method and node types are generic type parameters
//     (M, N comparable) supplied by the client, never concrete types here.
//   - Client owns the IR: CFG construction, entry-point discovery, and call
//     resolution are all implemented outside this module.
//
// # Thread Safety
//
// The types in this package carry no mutable state of their own; thread
// safety is the responsibility of whatever implements Lattice, CFG, or
// Program.
package types
