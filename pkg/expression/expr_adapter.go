package expression

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprEngine wraps expr-lang/expr for evaluating small scripted lattice
// expressions, caching each compiled program by its source text.
type ExprEngine struct {
	programCache map[string]*vm.Program
}

// NewExprEngine creates a new expression engine using expr-lang/expr
func NewExprEngine() *ExprEngine {
	return &ExprEngine{
		programCache: make(map[string]*vm.Program),
	}
}

// EvaluateBoolean compiles (or reuses a cached compile of) expression against
// the bindings in ctx and returns its boolean result.
func (e *ExprEngine) EvaluateBoolean(expression string, ctx *Context) (bool, error) {
	if ctx == nil {
		ctx = &Context{Bindings: make(map[string]interface{})}
	}
	env := e.buildEnvironment(ctx)

	program, exists := e.programCache[expression]
	if !exists {
		var err error
		program, err = expr.Compile(expression, expr.Env(env), expr.AsBool())
		if err != nil {
			return false, fmt.Errorf("expression compilation failed: %w", err)
		}
		e.programCache[expression] = program
	}

	output, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("expression execution failed: %w", err)
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("expression did not return boolean, got %T", output)
	}
	return result, nil
}

// EvaluateValue compiles (or reuses a cached compile of) expression against
// the bindings in ctx and returns its raw result.
func (e *ExprEngine) EvaluateValue(expression string, ctx *Context) (interface{}, error) {
	if ctx == nil {
		ctx = &Context{Bindings: make(map[string]interface{})}
	}
	env := e.buildEnvironment(ctx)

	program, exists := e.programCache[expression]
	if !exists {
		var err error
		program, err = expr.Compile(expression, expr.Env(env))
		if err != nil {
			return nil, fmt.Errorf("expression compilation failed: %w", err)
		}
		e.programCache[expression] = program
	}

	output, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("expression execution failed: %w", err)
	}
	return output, nil
}

// buildEnvironment binds every variable in ctx.Bindings directly into the
// expression environment, plus the handful of helpers a lattice script needs
// that expr-lang does not already provide as builtins.
func (e *ExprEngine) buildEnvironment(ctx *Context) map[string]interface{} {
	env := make(map[string]interface{}, len(ctx.Bindings)+2)
	for k, v := range ctx.Bindings {
		env[k] = v
	}
	env["isNull"] = func(v interface{}) bool { return v == nil }
	env["coalesce"] = func(args ...interface{}) interface{} {
		for _, arg := range args {
			if arg != nil {
				return arg
			}
		}
		return nil
	}
	return env
}
