package types

import "fmt"

// ErrMissingEntryPoints creates an error for a program with no entry points.
func ErrMissingEntryPoints() error {
	return fmt.Errorf("program representation declares no entry points")
}

// ErrNilControlFlowGraph creates an error for a method with no CFG.
func ErrNilControlFlowGraph(method interface{}) error {
	return fmt.Errorf("method has no control-flow graph: %v", method)
}
