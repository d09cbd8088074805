package contextcache

import "errors"

// Sentinel errors for context-cache operations.
var (
	ErrContextNotFound  = errors.New("no context found for the given method and boundary value")
	ErrContextFreed     = errors.New("context has been reclaimed and its per-node tables dropped")
	ErrMethodNotTracked = errors.New("method has no recorded contexts")
)
