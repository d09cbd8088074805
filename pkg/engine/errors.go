package engine

import "errors"

// Sentinel errors for engine operations not already covered by
// pkg/types.ErrMissingEntryPoints / ErrNilControlFlowGraph, which DoAnalysis
// returns directly for those two preconditions.
var (
	// ErrInvalidDirection is returned for a Direction value other than
	// types.Forward or types.Backward.
	ErrInvalidDirection = errors.New("invalid analysis direction")
	// ErrSolutionAfterReclamation is returned by callers who choose to treat
	// GetMeetOverValidPathsSolution after reclamation as fatal rather than
	// silently incomplete; the engine itself does not return this, since
	// spec compliance requires the projection to keep working over whatever
	// contexts remain.
	ErrSolutionAfterReclamation = errors.New("meet-over-valid-paths solution requested after on-the-fly reclamation")
)
