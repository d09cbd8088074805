// Package expression lets a lattice client express its normalFlow, meet, and
// guard logic as small scripted expressions instead of compiled Go functions,
// for interactive exploration and examples/scriptlattice. It is not part of
// the engine's core: the engine never evaluates an expression itself, it only
// calls whatever FlowFunctions a client supplies.
package expression

import "sync"

// Context provides the variable bindings visible to a scripted expression —
// the lattice value being transferred, under whatever names the client's
// script expects.
type Context struct {
	Bindings map[string]interface{}
}

var (
	globalEngine *ExprEngine
	engineOnce   sync.Once
)

// getEngine returns the process-wide expression engine, compiled once and
// shared so its program cache benefits every call site.
func getEngine() *ExprEngine {
	engineOnce.Do(func() {
		globalEngine = NewExprEngine()
	})
	return globalEngine
}

// Evaluate evaluates expression against bindings and returns a boolean
// result, e.g. for a scripted guard such as "a < b".
func Evaluate(expression string, bindings map[string]interface{}) (bool, error) {
	return getEngine().EvaluateBoolean(expression, &Context{Bindings: bindings})
}

// EvaluateValue evaluates expression against bindings and returns its raw
// result, e.g. for a scripted transfer function such as "a + 1".
func EvaluateValue(expression string, bindings map[string]interface{}) (interface{}, error) {
	return getEngine().EvaluateValue(expression, &Context{Bindings: bindings})
}
