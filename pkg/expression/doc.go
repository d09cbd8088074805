// Package expression provides a small scripted-expression evaluator for
// lattice clients that want to define flow functions as text rather than Go
// code, backed by expr-lang/expr.
//
// # Overview
//
// A scripted lattice value is a set of named variable bindings; a flow
// function is an expression string evaluated against those bindings.
// Compiled programs are cached by source text so a script used across many
// contexts and nodes only compiles once.
//
// # Expression Syntax
//
// Anything expr-lang/expr supports: arithmetic, comparison, boolean logic,
// ternaries, and its builtin functions (abs, min, max, floor, ceil, round,
// among others). Every key in the bindings map is available as a bare
// identifier.
//
//	a + 1
//	a < b
//	a < b ? a : b
//
// # Usage
//
//	ok, err := expression.Evaluate("a < b", map[string]interface{}{"a": 1, "b": 2})
//	v, err := expression.EvaluateValue("a + 1", map[string]interface{}{"a": 1})
//
// # Thread Safety
//
// ExprEngine is not safe for concurrent compilation of the same uncached
// expression from multiple goroutines; the package-level Evaluate/EvaluateValue
// helpers share one engine and should be called from a single analysis's
// driver goroutine, consistent with the engine's single-threaded model.
package expression
